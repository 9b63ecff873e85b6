package hythergraph

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/lox/koppen/internal/koppen"
)

var (
	testPrecip = []float64{30, 40, 20, 60, 80, 100, 150, 140, 90, 70, 50, 40}
	testTemp   = []float64{10, 12, 15, 18, 20, 25, 30, 28, 22, 15, 12, 8}
)

func TestRender(t *testing.T) {
	img, err := Render(testPrecip, testTemp, "Test Climograph")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != Width || bounds.Dy() != Height {
		t.Errorf("bounds = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), Width, Height)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testPrecip, testTemp, "Test")
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("RenderPNG returned no data")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered PNG: %v", err)
	}
	if img.Bounds().Dx() != Width {
		t.Errorf("decoded width = %d, want %d", img.Bounds().Dx(), Width)
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := RenderPNG(testPrecip, testTemp, "Same")
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	second, err := RenderPNG(testPrecip, testTemp, "Same")
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different PNG bytes")
	}
}

func TestRenderInvalidInput(t *testing.T) {
	if _, err := Render(testPrecip[:11], testTemp, ""); !errors.Is(err, koppen.ErrInvalidInput) {
		t.Errorf("Render error = %v, want ErrInvalidInput", err)
	}
	if _, err := RenderPNG(testPrecip, nil, ""); !errors.Is(err, koppen.ErrInvalidInput) {
		t.Errorf("RenderPNG error = %v, want ErrInvalidInput", err)
	}
}

func TestRenderHandlesFlatSeries(t *testing.T) {
	flatPrecip := make([]float64, koppen.MonthsPerYear)
	flatTemp := make([]float64, koppen.MonthsPerYear)
	for i := range flatTemp {
		flatTemp[i] = 15
	}

	if _, err := Render(flatPrecip, flatTemp, "Flat"); err != nil {
		t.Fatalf("Render flat series: %v", err)
	}
}
