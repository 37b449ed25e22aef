// Package icon draws the Progress app icon: a rounded card, a progress ring
// that is three quarters complete, and a checkmark. Everything is computed
// from the edge length so one function serves every asset-catalog slot.
package icon

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Proportions of the edge length.
const (
	marginRatio       = 0.10
	cornerRatio       = 0.22
	circleMarginRatio = 0.25
	checkRatio        = 0.15
)

// Stroke widths are size/divisor, clamped to a minimum.
const (
	outlineDivisor = 40
	arcDivisor     = 20
	checkDivisor   = 30

	minOutlineWidth = 1
	minArcWidth     = 2
	minCheckWidth   = 2
)

// arcStart is the top of the circle. Angles grow clockwise because y points down.
const arcStart = -math.Pi / 2

// Geometry holds every measurement used to draw an icon of one edge length.
type Geometry struct {
	Size         int
	Margin       float64
	CornerRadius float64
	CircleMargin float64
	CircleSize   float64
	CheckSize    float64
	OutlineWidth int
	ArcWidth     int
	CheckWidth   int
}

// Measure returns the geometry for a size×size icon.
func Measure(size int) Geometry {
	s := float64(size)
	cm := s * circleMarginRatio
	return Geometry{
		Size:         size,
		Margin:       s * marginRatio,
		CornerRadius: s * cornerRatio,
		CircleMargin: cm,
		CircleSize:   s - 2*cm,
		CheckSize:    s * checkRatio,
		OutlineWidth: max(minOutlineWidth, size/outlineDivisor),
		ArcWidth:     max(minArcWidth, size/arcDivisor),
		CheckWidth:   max(minCheckWidth, size/checkDivisor),
	}
}

// Style holds the colours and the fraction of the ring drawn as progress.
type Style struct {
	Canvas     color.RGBA
	Background color.RGBA
	Ring       color.RGBA
	Progress   color.RGBA
	Check      color.RGBA
	Fraction   float64
}

// DefaultStyle is the shipped look: blue card, green progress arc, white marks.
func DefaultStyle() Style {
	return Style{
		Canvas:     color.RGBA{255, 255, 255, 255},
		Background: color.RGBA{52, 152, 219, 255},
		Ring:       color.RGBA{255, 255, 255, 255},
		Progress:   color.RGBA{46, 204, 113, 255},
		Check:      color.RGBA{255, 255, 255, 255},
		Fraction:   0.75,
	}
}

// Draw renders a size×size icon with the default style.
func Draw(size int) *image.RGBA {
	return DrawStyle(size, DefaultStyle())
}

// DrawStyle renders a size×size icon. Output depends only on size and st.
func DrawStyle(size int, st Style) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(st.Canvas), image.Point{}, xdraw.Src)

	g := Measure(size)
	s := float64(size)

	fill(img, st.Background, func(z *vector.Rasterizer) {
		roundedRect(z, g.Margin, g.Margin, s-g.Margin, s-g.Margin, g.CornerRadius)
	})

	// Strokes sit inside the circle box, like an inset border.
	cx := g.CircleMargin + g.CircleSize/2
	cy := cx
	r := g.CircleSize / 2

	fill(img, st.Ring, func(z *vector.Rasterizer) {
		band(z, cx, cy, r, r-float64(g.OutlineWidth), 0, 2*math.Pi)
	})

	if st.Fraction > 0 {
		sweep := 2 * math.Pi * math.Min(st.Fraction, 1)
		fill(img, st.Progress, func(z *vector.Rasterizer) {
			band(z, cx, cy, r, r-float64(g.ArcWidth), arcStart, arcStart+sweep)
		})
	}

	pts := checkPoints(size, g.CheckSize)
	hw := float64(g.CheckWidth) / 2
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		fill(img, st.Check, func(z *vector.Rasterizer) {
			segment(z, a, b, hw)
		})
	}
	// Round joint so the two strokes meet without a notch.
	fill(img, st.Check, func(z *vector.Rasterizer) {
		disc(z, pts[1].x, pts[1].y, hw)
	})

	return img
}

type point struct{ x, y float64 }

// checkPoints returns the three vertices of the checkmark, centred on the
// integer middle of the canvas.
func checkPoints(size int, c float64) []point {
	cx := float64(size / 2)
	cy := float64(size / 2)
	return []point{
		{cx - c*0.6, cy},
		{cx - c*0.1, cy + c*0.5},
		{cx + c*0.6, cy - c*0.3},
	}
}

// fill rasterises one closed shape and composites it over dst.
// Each shape gets its own rasterizer so overlapping contours never cancel.
func fill(dst *image.RGBA, c color.RGBA, path func(z *vector.Rasterizer)) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	path(z)
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
