package icon

import (
	"math"

	"golang.org/x/image/vector"
)

func f32(v float64) float32 { return float32(v) }

// arcTo appends a circular arc around (cx, cy) from angle a0 to a1 as cubic
// Béziers of at most 90° each. The pen must already be at the start point.
func arcTo(z *vector.Rasterizer, cx, cy, r, a0, a1 float64) {
	n := int(math.Ceil(math.Abs(a1-a0) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := (a1 - a0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		s := a0 + float64(i)*step
		e := s + step
		x0, y0 := cx+r*math.Cos(s), cy+r*math.Sin(s)
		x3, y3 := cx+r*math.Cos(e), cy+r*math.Sin(e)
		x1, y1 := x0-k*r*math.Sin(s), y0+k*r*math.Cos(s)
		x2, y2 := x3+k*r*math.Sin(e), y3-k*r*math.Cos(e)
		z.CubeTo(f32(x1), f32(y1), f32(x2), f32(y2), f32(x3), f32(y3))
	}
}

// roundedRect adds the rectangle (x0,y0)-(x1,y1) with corner radius r.
func roundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float64) {
	r = math.Min(r, math.Min(x1-x0, y1-y0)/2)
	z.MoveTo(f32(x0+r), f32(y0))
	z.LineTo(f32(x1-r), f32(y0))
	arcTo(z, x1-r, y0+r, r, -math.Pi/2, 0)
	z.LineTo(f32(x1), f32(y1-r))
	arcTo(z, x1-r, y1-r, r, 0, math.Pi/2)
	z.LineTo(f32(x0+r), f32(y1))
	arcTo(z, x0+r, y1-r, r, math.Pi/2, math.Pi)
	z.LineTo(f32(x0), f32(y0+r))
	arcTo(z, x0+r, y0+r, r, math.Pi, 3*math.Pi/2)
	z.ClosePath()
}

// band adds the region between radii inner and outer swept from a0 to a1.
// A full turn yields a ring; inner <= 0 yields a pie slice.
func band(z *vector.Rasterizer, cx, cy, outer, inner, a0, a1 float64) {
	full := math.Abs(a1-a0) >= 2*math.Pi
	if full {
		z.MoveTo(f32(cx+outer*math.Cos(a0)), f32(cy+outer*math.Sin(a0)))
		arcTo(z, cx, cy, outer, a0, a1)
		z.ClosePath()
		if inner > 0 {
			// Opposite winding punches the hole.
			z.MoveTo(f32(cx+inner*math.Cos(a1)), f32(cy+inner*math.Sin(a1)))
			arcTo(z, cx, cy, inner, a1, a0)
			z.ClosePath()
		}
		return
	}

	z.MoveTo(f32(cx+outer*math.Cos(a0)), f32(cy+outer*math.Sin(a0)))
	arcTo(z, cx, cy, outer, a0, a1)
	if inner > 0 {
		z.LineTo(f32(cx+inner*math.Cos(a1)), f32(cy+inner*math.Sin(a1)))
		arcTo(z, cx, cy, inner, a1, a0)
	} else {
		z.LineTo(f32(cx), f32(cy))
	}
	z.ClosePath()
}

// disc adds a filled circle.
func disc(z *vector.Rasterizer, cx, cy, r float64) {
	band(z, cx, cy, r, 0, 0, 2*math.Pi)
}

// segment adds the quad covering a stroke of half-width hw from a to b.
func segment(z *vector.Rasterizer, a, b point, hw float64) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(f32(a.x+nx), f32(a.y+ny))
	z.LineTo(f32(b.x+nx), f32(b.y+ny))
	z.LineTo(f32(b.x-nx), f32(b.y-ny))
	z.LineTo(f32(a.x-nx), f32(a.y-ny))
	z.ClosePath()
}
