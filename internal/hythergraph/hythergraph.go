// Package hythergraph renders a monthly climate chart: precipitation bars
// against a right-hand axis and a temperature line against a left-hand axis,
// the classic companion plot to a Köppen classification. Rendering is
// deterministic; the same record always produces identical PNG bytes.
package hythergraph

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lox/koppen/internal/koppen"
)

// Canvas dimensions in pixels.
const (
	Width  = 800
	Height = 500
)

// Plot area margins.
const (
	marginLeft   = 64
	marginRight  = 72
	marginTop    = 48
	marginBottom = 56
)

var (
	background = color.RGBA{255, 255, 255, 255}
	axisGray   = color.RGBA{90, 90, 90, 255}
	gridGray   = color.RGBA{225, 225, 225, 255}
	tempRed    = color.RGBA{139, 0, 0, 255}     // dark red temperature line
	precipBar  = color.RGBA{190, 225, 190, 255} // soft green bars
	precipText = color.RGBA{0, 110, 0, 255}
)

// Render draws the hythergraph for twelve months of precipitation (mm) and
// temperature (°C). It applies the same twelve-element shape check as the
// classifier and returns koppen.ErrInvalidInput on violation.
func Render(precip, temp []float64, title string) (*image.RGBA, error) {
	if _, err := koppen.NewMonthlyRecord(precip, temp, false); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fill(img, img.Bounds(), background)

	tempLo, tempHi := axisBounds(floatsMin(temp), floatsMax(temp), 5)
	precipHi := barCeiling(floatsMax(precip))

	plot := image.Rect(marginLeft, marginTop, Width-marginRight, Height-marginBottom)
	drawGrid(img, plot, tempLo, tempHi)
	drawBars(img, plot, precip, precipHi)
	drawTempLine(img, plot, temp, tempLo, tempHi)
	drawFrame(img, plot)
	drawLabels(img, plot, title, tempLo, tempHi, precipHi)

	return img, nil
}

// RenderPNG renders the chart and encodes it as PNG bytes.
func RenderPNG(precip, temp []float64, title string) ([]byte, error) {
	img, err := Render(precip, temp, title)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode hythergraph: %w", err)
	}
	return buf.Bytes(), nil
}

// axisBounds expands a value range outward to multiples of step so the axis
// ticks land on round numbers. Degenerate ranges get one step of headroom.
func axisBounds(lo, hi, step float64) (float64, float64) {
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	if lo == hi {
		hi += step
	}
	return lo, hi
}

// barCeiling picks the precipitation axis top: the next multiple of 50 above
// the wettest month, and never below 50.
func barCeiling(max float64) float64 {
	top := math.Ceil(max/50) * 50
	if top < 50 {
		top = 50
	}
	return top
}

// monthSlot returns the horizontal pixel span of one month's column.
func monthSlot(plot image.Rectangle, month int) (x0, x1 int) {
	w := float64(plot.Dx()) / koppen.MonthsPerYear
	x0 = plot.Min.X + int(float64(month)*w)
	x1 = plot.Min.X + int(float64(month+1)*w)
	return x0, x1
}

func drawGrid(img *image.RGBA, plot image.Rectangle, tempLo, tempHi float64) {
	for v := tempLo; v <= tempHi; v += 5 {
		y := tempToY(plot, v, tempLo, tempHi)
		for x := plot.Min.X; x < plot.Max.X; x++ {
			img.SetRGBA(x, y, gridGray)
		}
	}
}

func drawBars(img *image.RGBA, plot image.Rectangle, precip []float64, precipHi float64) {
	for m, p := range precip {
		x0, x1 := monthSlot(plot, m)
		h := int(p / precipHi * float64(plot.Dy()))
		bar := image.Rect(x0+3, plot.Max.Y-h, x1-3, plot.Max.Y)
		fill(img, bar.Intersect(plot), precipBar)
	}
}

func drawTempLine(img *image.RGBA, plot image.Rectangle, temp []float64, tempLo, tempHi float64) {
	var prevX, prevY int
	for m, t := range temp {
		x0, x1 := monthSlot(plot, m)
		x := (x0 + x1) / 2
		y := tempToY(plot, t, tempLo, tempHi)
		if m > 0 {
			drawSegment(img, prevX, prevY, x, y, tempRed)
		}
		drawMarker(img, x, y, tempRed)
		prevX, prevY = x, y
	}
}

func tempToY(plot image.Rectangle, v, lo, hi float64) int {
	frac := (v - lo) / (hi - lo)
	return plot.Max.Y - int(frac*float64(plot.Dy()))
}

func drawFrame(img *image.RGBA, plot image.Rectangle) {
	for x := plot.Min.X; x <= plot.Max.X; x++ {
		img.SetRGBA(x, plot.Min.Y, axisGray)
		img.SetRGBA(x, plot.Max.Y, axisGray)
	}
	for y := plot.Min.Y; y <= plot.Max.Y; y++ {
		img.SetRGBA(plot.Min.X, y, axisGray)
		img.SetRGBA(plot.Max.X, y, axisGray)
	}
}

func drawLabels(img *image.RGBA, plot image.Rectangle, title string, tempLo, tempHi, precipHi float64) {
	face := basicfont.Face7x13

	// Title, centered above the plot.
	if title != "" {
		w := font.MeasureString(face, title).Ceil()
		drawText(img, title, (Width-w)/2, marginTop-16, axisGray, face)
	}

	// Month labels under each column.
	for m, label := range koppen.MonthLabels {
		x0, x1 := monthSlot(plot, m)
		w := font.MeasureString(face, label).Ceil()
		drawText(img, label, (x0+x1-w)/2, plot.Max.Y+18, axisGray, face)
	}

	// Left axis: temperature ticks every 5°C.
	for v := tempLo; v <= tempHi; v += 5 {
		label := fmt.Sprintf("%.0f", v)
		w := font.MeasureString(face, label).Ceil()
		drawText(img, label, plot.Min.X-w-6, tempToY(plot, v, tempLo, tempHi)+4, tempRed, face)
	}
	// basicfont covers ASCII only, so the unit label skips the degree sign.
	drawText(img, "C", 10, marginTop-16, tempRed, face)

	// Right axis: precipitation ticks at 0, half, and full scale.
	for _, v := range []float64{0, precipHi / 2, precipHi} {
		label := fmt.Sprintf("%.0f", v)
		y := plot.Max.Y - int(v/precipHi*float64(plot.Dy()))
		drawText(img, label, plot.Max.X+6, y+4, precipText, face)
	}
	drawText(img, "mm", Width-34, marginTop-16, precipText, face)
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawSegment draws a straight line by stepping the longer axis one pixel at
// a time.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		img.SetRGBA(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		img.SetRGBA(x, y, c)
	}
}

func drawMarker(img *image.RGBA, x, y int, c color.RGBA) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dy*dy <= 4 {
				img.SetRGBA(x+dx, y+dy, c)
			}
		}
	}
}

func drawText(img *image.RGBA, text string, x, y int, col color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func floatsMin(s []float64) float64 {
	min := s[0]
	for _, v := range s[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func floatsMax(s []float64) float64 {
	max := s[0]
	for _, v := range s[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
