package material

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	// 1x2 image: red on top, blue on the bottom.
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFlipsVertically(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "tex.png"))

	loader := NewTextureLoader()
	img, err := loader.Load("tex.png", dir)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 1 || img.Height != 2 {
		t.Fatalf("size: got %dx%d", img.Width, img.Height)
	}
	if len(img.Pixels) != 6 {
		t.Fatalf("pixel buffer: got %d bytes, want 6", len(img.Pixels))
	}
	// After the vertical flip, blue is the first row.
	if img.Pixels[2] != 255 {
		t.Errorf("first row should be blue after flip, got RGB %v", img.Pixels[0:3])
	}
	if img.Pixels[3] != 255 {
		t.Errorf("second row should be red after flip, got RGB %v", img.Pixels[3:6])
	}
}

func TestLoadAbsolutePathIgnoresBaseDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	writeTestPNG(t, path)

	loader := NewTextureLoader()
	if _, err := loader.Load(path, "/nonexistent"); err != nil {
		t.Errorf("absolute path should not resolve against baseDir: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewTextureLoader()
	if _, err := loader.Load("nope.png", t.TempDir()); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoadNotAnImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := NewTextureLoader()
	if _, err := loader.Load(path, ""); err == nil {
		t.Error("junk data should fail to decode")
	}
}

func TestIsURL(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"http://example.com/tex.png", true},
		{"https://example.com/tex.png", true},
		{"/abs/path/tex.png", false},
		{"relative/tex.png", false},
		{"ftp://example.com/tex.png", false},
	}
	for _, c := range cases {
		if got := IsURL(c.path); got != c.want {
			t.Errorf("IsURL(%q): got %v, want %v", c.path, got, c.want)
		}
	}
}

func TestURLExt(t *testing.T) {
	if got := urlExt("https://example.com/a/b/texture.png?v=2"); got != ".png" {
		t.Errorf("urlExt: got %q, want .png", got)
	}
	if got := urlExt("https://example.com/no-extension"); got != "" {
		t.Errorf("urlExt: got %q, want empty", got)
	}
}
