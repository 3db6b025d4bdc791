package debug

import (
	"image/png"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/suncycle/internal/engine/shadow"
	"github.com/Faultbox/suncycle/pkg/math"
)

func TestFrustumWireframeOrtho(t *testing.T) {
	cam := shadow.OrthoCamera{Extent: 5, Near: 0.5, Far: 500}
	vp := shadow.CalculateLightMatrix(math.Vec3{Y: 100}, math.Vec3{}, cam)

	v := FrustumWireframe(vp)
	if len(v) != FrustumWireframeVertexCount*3 {
		t.Fatalf("got %d floats, want %d", len(v), FrustumWireframeVertexCount*3)
	}

	// Looking straight down from y=100: near plane at y=99.5, far at y=-400.
	corners := FrustumCorners(vp)
	for i := 0; i < 4; i++ {
		if gomath.Abs(float64(corners[i][1])-99.5) > 1e-2 {
			t.Errorf("near corner %d at y=%v, want 99.5", i, corners[i][1])
		}
		if gomath.Abs(float64(corners[i+4][1])+400) > 1e-1 {
			t.Errorf("far corner %d at y=%v, want -400", i, corners[i+4][1])
		}
		if gomath.Abs(float64(corners[i][0])) > 5.01 || gomath.Abs(float64(corners[i][2])) > 5.01 {
			t.Errorf("corner %d outside the extent: %v", i, corners[i])
		}
	}
}

func TestFrustumWireframePerspective(t *testing.T) {
	proj := math.Perspective(float32(gomath.Pi/2), 1, 1, 10)
	view := math.LookAt(math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{Y: 1})
	corners := FrustumCorners(proj.Mul(view))

	// 90 degree fov: the far face is twice the far distance wide.
	far := corners[6]
	if gomath.Abs(float64(far[0])-10) > 1e-2 || gomath.Abs(float64(far[1])-10) > 1e-2 || gomath.Abs(float64(far[2])+10) > 1e-2 {
		t.Errorf("far top-right corner = %v, want (10, 10, -10)", far)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "suncycle")
	sc.now = func() time.Time { return time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(name), "suncycle_2024-06-21_12-00-00") {
		t.Errorf("unexpected filename %q", name)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if b == 0 || r != 0 {
		t.Errorf("top pixel should be blue after flip, got r=%d b=%d", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red after flip, got r=%d b=%d", r, b)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}
