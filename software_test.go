package okfield

import (
	"errors"
	"testing"
)

func testField() *Field {
	return &Field{
		Width: 64, Height: 48,
		Palette: Palette{
			{L: 0.7, A: -0.2, B: 0.3},
			{L: 0.3, A: 0.1, B: -0.1},
			{L: 0.5, A: 0.0, B: 0.2},
		},
		Progress: 0.6,
		Variant:  VariantWallpaper,
	}
}

func TestSoftwareRenderer_MatchesDirectEvaluation(t *testing.T) {
	r := NewSoftwareRenderer(4)
	defer r.Close()

	f := testField()
	pm := NewPixmap(64, 48)
	if err := r.RenderField(pm, f); err != nil {
		t.Fatalf("RenderField: %v", err)
	}

	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			want := f.At(float32(x), float32(y))
			if got := pm.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

// TestSoftwareRenderer_ParallelMatchesSequential checks that worker count
// does not change output.
func TestSoftwareRenderer_ParallelMatchesSequential(t *testing.T) {
	f := testField()

	single := NewSoftwareRenderer(1)
	defer single.Close()
	many := NewSoftwareRenderer(8)
	defer many.Close()

	pmA := NewPixmap(64, 48)
	if err := single.RenderField(pmA, f); err != nil {
		t.Fatalf("RenderField(1 worker): %v", err)
	}
	pmB := NewPixmap(64, 48)
	if err := many.RenderField(pmB, f); err != nil {
		t.Fatalf("RenderField(8 workers): %v", err)
	}

	a, b := pmA.Data(), pmB.Data()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("component %d: 1 worker = %v, 8 workers = %v", i, a[i], b[i])
		}
	}
}

func TestSoftwareRenderer_NilArguments(t *testing.T) {
	r := NewSoftwareRenderer(1)
	defer r.Close()

	if err := r.RenderField(nil, testField()); !errors.Is(err, ErrNilTarget) {
		t.Errorf("RenderField(nil, f) = %v, want ErrNilTarget", err)
	}
	if err := r.RenderField(NewPixmap(1, 1), nil); !errors.Is(err, ErrNilField) {
		t.Errorf("RenderField(pm, nil) = %v, want ErrNilField", err)
	}
}

func TestSoftwareRenderer_ZeroSizePixmap(t *testing.T) {
	r := NewSoftwareRenderer(2)
	defer r.Close()

	if err := r.RenderField(NewPixmap(0, 0), testField()); err != nil {
		t.Errorf("RenderField on empty pixmap = %v, want nil", err)
	}
}

func TestSoftwareRenderer_SinglePixel(t *testing.T) {
	r := NewSoftwareRenderer(4)
	defer r.Close()

	f := &Field{Width: 1, Height: 1, Variant: VariantWallpaper}
	pm := NewPixmap(1, 1)
	if err := r.RenderField(pm, f); err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if got, want := pm.GetPixel(0, 0), f.At(0, 0); got != want {
		t.Errorf("pixel = %+v, want %+v", got, want)
	}
}

func TestSoftwareRenderer_Workers(t *testing.T) {
	r := NewSoftwareRenderer(3)
	defer r.Close()
	if r.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", r.Workers())
	}
}

func BenchmarkSoftwareRenderer(b *testing.B) {
	r := NewSoftwareRenderer(0)
	defer r.Close()

	f := &Field{
		Width: 1920, Height: 1080,
		Palette:  Palette{{L: 0.7, A: -0.2, B: 0.3}, {L: 0.3, A: 0.1, B: -0.1}},
		Progress: 1.0,
		Variant:  VariantWallpaper,
	}
	pm := NewPixmap(1920, 1080)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := r.RenderField(pm, f); err != nil {
			b.Fatal(err)
		}
	}
}
