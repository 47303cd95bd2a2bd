package vizlog

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrNoSink is returned when entries would be logged with no sink
// attached. Emitting into a void is the one fatal condition; it is
// never swallowed.
var ErrNoSink = errors.New("no active recording sink")

// Sink consumes log entries. Implementations are not required to be
// safe for concurrent use; the Recording serializes writes.
type Sink interface {
	Write(entry Entry) error
	Close() error
}

// Recording is one logging session over a sink. It owns the current
// timeline state and stamps it onto every non-static entry.
type Recording struct {
	applicationID string
	sink          Sink
	time          *TimePoint
}

// NewRecording opens a session on sink. The application id gets a
// random numeric suffix so parallel sessions do not collide.
func NewRecording(applicationID string, sink Sink) (*Recording, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	if applicationID == "" {
		applicationID = "usd_rerun_logger"
	}
	return &Recording{
		applicationID: fmt.Sprintf("%s_%d", applicationID, rand.Intn(10000)),
		sink:          sink,
	}, nil
}

// ApplicationID returns the suffixed session id.
func (r *Recording) ApplicationID() string { return r.applicationID }

// SetTimeSequence sets the timeline to a frame-style integer index.
func (r *Recording) SetTimeSequence(timeline string, sequence int64) {
	r.time = &TimePoint{Timeline: timeline, Sequence: &sequence}
}

// SetTimeDuration sets the timeline to a relative time.
func (r *Recording) SetTimeDuration(timeline string, d time.Duration) {
	seconds := d.Seconds()
	r.time = &TimePoint{Timeline: timeline, Duration: &seconds}
}

// SetTimeTimestamp sets the timeline to an absolute time.
func (r *Recording) SetTimeTimestamp(timeline string, ts time.Time) {
	seconds := float64(ts.UnixNano()) / float64(time.Second)
	r.time = &TimePoint{Timeline: timeline, Timestamp: &seconds}
}

// ResetTime clears the timeline state; subsequent entries are
// timeless until the next SetTime call.
func (r *Recording) ResetTime() {
	r.time = nil
}

// Log writes a timed entry for path.
func (r *Recording) Log(path string, payload Payload) error {
	return r.write(path, payload, false)
}

// LogStatic writes a session-static entry for path. Static entries
// carry no timeline state.
func (r *Recording) LogStatic(path string, payload Payload) error {
	return r.write(path, payload, true)
}

func (r *Recording) write(path string, payload Payload, static bool) error {
	if r == nil || r.sink == nil {
		return ErrNoSink
	}
	entry := Entry{
		Path:    path,
		Static:  static,
		Kind:    payload.Kind(),
		Payload: payload,
	}
	if !static && r.time != nil {
		t := *r.time
		entry.Time = &t
	}
	if err := r.sink.Write(entry); err != nil {
		return fmt.Errorf("writing %s entry for %s: %w", entry.Kind, path, err)
	}
	return nil
}

// Close flushes and closes the underlying sink. The recording is
// unusable afterwards.
func (r *Recording) Close() error {
	if r.sink == nil {
		return nil
	}
	err := r.sink.Close()
	r.sink = nil
	return err
}
