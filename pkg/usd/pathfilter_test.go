package usd

import "testing"

func TestNilFilterMatchesEverything(t *testing.T) {
	var f *PathFilter
	if !f.Match("/World/Anything") {
		t.Error("nil filter should match all paths")
	}
}

func TestEmptyPatternsGiveNilFilter(t *testing.T) {
	f, err := NewPathFilter(nil)
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Error("no patterns should produce a nil (match-all) filter")
	}
}

func TestPathFilterGlobCrossesSeparators(t *testing.T) {
	f, err := NewPathFilter([]string{"/World/Robot/*"})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{"/World/Robot/Arm", true},
		{"/World/Robot/Arm/Hand", true}, // * spans path separators
		{"/World/Robot", false},
		{"/World/Terrain", false},
	}
	for _, c := range cases {
		if got := f.Match(c.path); got != c.want {
			t.Errorf("Match(%q): got %v, want %v", c.path, got, c.want)
		}
	}
}

func TestPathFilterMultiplePatterns(t *testing.T) {
	f, err := NewPathFilter([]string{"/World/Robot/*", "/World/Terrain"})
	if err != nil {
		t.Fatal(err)
	}
	if !f.Match("/World/Terrain") {
		t.Error("exact pattern should match")
	}
	if f.Match("/World/Terrain/Rock") {
		t.Error("exact pattern should not match children")
	}
}

func TestPathFilterQuestionMark(t *testing.T) {
	f, err := NewPathFilter([]string{"/env_?"})
	if err != nil {
		t.Fatal(err)
	}
	if !f.Match("/env_0") || !f.Match("/env_7") {
		t.Error("? should match one character")
	}
	if f.Match("/env_10") {
		t.Error("? should not match two characters")
	}
}
