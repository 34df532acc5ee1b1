package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	studio "github.com/gogpu/gg-studio"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		studio.SetLogger(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("ggstudio %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestModelsCommand(t *testing.T) {
	out := run(t, "models")
	if !strings.Contains(out, "Specialized") || !strings.Contains(out, "* gemini-2.5-flash-image") {
		t.Errorf("output = %s", out)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()

	base := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := range base.Pix {
		base.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, base); err != nil {
		t.Fatal(err)
	}
	basePath := filepath.Join(dir, "base.png")
	if err := os.WriteFile(basePath, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	red := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		red.Set(i%2, i/2, color.RGBA{R: 255, A: 255})
	}
	src, err := studio.EncodeDataURI(red)
	if err != nil {
		t.Fatal(err)
	}
	design := `{"elements":[{"type":"image","id":"img-1","x":50,"y":50,"width":50,"height":50,"zIndex":100,"isVisible":true,"src":"` + src + `"}]}`
	designPath := filepath.Join(dir, "design.json")
	if err := os.WriteFile(designPath, []byte(design), 0o600); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "out.tiff")
	out := run(t, "render", designPath, "--image", basePath, "--format", "tiff", "-o", outPath)
	if !strings.Contains(out, "1 elements") {
		t.Errorf("output = %s", out)
	}

	img, err := studio.ReadImageFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 64x48", b)
	}
	if c := color.RGBAModel.Convert(img.At(32, 24)).(color.RGBA); c.R < 200 || c.G > 50 {
		t.Errorf("center = %v, want red", c)
	}
}
