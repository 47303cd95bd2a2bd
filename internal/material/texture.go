package material

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/transform"

	"github.com/art-e-fact/usd-rerun-logger/pkg/vizlog"
)

// TextureLoader loads texture files into RGB8 buffers. Remote URLs
// are downloaded once into a temp-dir cache keyed by URL hash.
type TextureLoader struct {
	cacheDir string
	client   *http.Client
}

// NewTextureLoader returns a loader caching downloads under the
// system temp directory.
func NewTextureLoader() *TextureLoader {
	return &TextureLoader{
		cacheDir: filepath.Join(os.TempDir(), "usd_rerun_logger"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Load reads the texture at path. Relative paths resolve against
// baseDir (the scene file's directory). The image comes back
// vertically mirrored, matching viewer texture-coordinate
// conventions.
func (l *TextureLoader) Load(path, baseDir string) (*vizlog.Image, error) {
	if IsURL(path) {
		local, err := l.download(path)
		if err != nil {
			return nil, err
		}
		path = local
	} else if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	return toRGB8(transform.FlipV(img)), nil
}

// download fetches a URL into the cache and returns the local path.
// A previously cached file is reused without touching the network.
func (l *TextureLoader) download(rawURL string) (string, error) {
	if err := os.MkdirAll(l.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating texture cache: %w", err)
	}

	sum := md5.Sum([]byte(rawURL))
	cached := filepath.Join(l.cacheDir, hex.EncodeToString(sum[:])+urlExt(rawURL))
	if _, err := os.Stat(cached); err == nil {
		return cached, nil
	}

	resp, err := l.client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("downloading texture %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading texture %s: status %s", rawURL, resp.Status)
	}

	tmp := cached + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("writing texture cache: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("writing texture cache: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, cached); err != nil {
		return "", err
	}
	return cached, nil
}

// IsURL reports whether path is an http(s) URL.
func IsURL(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func urlExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if i := strings.LastIndex(u.Path, "."); i >= 0 {
		return u.Path[i:]
	}
	return ""
}

func toRGB8(img image.Image) *vizlog.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	return &vizlog.Image{Width: w, Height: h, Pixels: pixels}
}
