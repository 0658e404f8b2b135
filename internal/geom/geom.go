package geom

import "math"

// Vec2 is a position or direction in world units. The simulation runs in
// plain float64 space; determinism across platforms is not a requirement for
// this runtime.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalized returns a unit vector. A zero-length input falls back to the
// downward default so callers never propagate a degenerate direction.
func (v Vec2) Normalized() Vec2 {
	length := v.Len()
	if length == 0 {
		return Vec2{X: 0, Y: 1}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Perp returns the counter-clockwise perpendicular.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotated returns the vector rotated by the given angle in radians.
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Rect is an axis-aligned rectangle anchored at its minimum corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CircleRectOverlap reports whether a circle intersects the rectangle.
func CircleRectOverlap(center Vec2, radius float64, rect Rect) bool {
	closestX := clamp(center.X, rect.X, rect.X+rect.Width)
	closestY := clamp(center.Y, rect.Y, rect.Y+rect.Height)
	dx := center.X - closestX
	dy := center.Y - closestY
	return dx*dx+dy*dy < radius*radius
}

// CirclesOverlap reports whether two circles intersect. Touching edges count
// as a hit.
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	rr := ra + rb
	return dx*dx+dy*dy <= rr*rr
}

// ArcContains reports whether a circle at target overlaps a wedge anchored at
// origin, facing dir, spanning spanDegrees centered on dir, with the given
// radius. The target's own radius widens both the reach and the angular test
// so grazing contact still registers.
func ArcContains(origin, dir Vec2, radius, spanDegrees float64, target Vec2, targetRadius float64) bool {
	offset := target.Sub(origin)
	dist := offset.Len()
	if dist > radius+targetRadius {
		return false
	}
	if dist <= targetRadius {
		return true
	}
	halfSpan := spanDegrees * math.Pi / 360
	angle := math.Acos(clamp(offset.Normalized().Dot(dir.Normalized()), -1, 1))
	slack := math.Asin(clamp(targetRadius/dist, 0, 1))
	return angle <= halfSpan+slack
}

// OrientedRectContains reports whether a circle overlaps a box extending
// length units forward from origin along dir, width units across it.
func OrientedRectContains(origin, dir Vec2, length, width float64, target Vec2, targetRadius float64) bool {
	forward := dir.Normalized()
	offset := target.Sub(origin)
	along := offset.Dot(forward)
	across := offset.Dot(forward.Perp())
	return along >= -targetRadius && along <= length+targetRadius &&
		math.Abs(across) <= width/2+targetRadius
}

// RayCircleIntersection returns the distance along a ray at which it first
// enters a circle, and whether it hits at all. Rays that start inside the
// circle report a hit at distance zero.
func RayCircleIntersection(origin, dir Vec2, center Vec2, radius float64) (float64, bool) {
	forward := dir.Normalized()
	offset := center.Sub(origin)
	along := offset.Dot(forward)
	acrossSq := offset.Dot(offset) - along*along
	rSq := radius * radius
	if acrossSq > rSq {
		return 0, false
	}
	reach := math.Sqrt(rSq - acrossSq)
	entry := along - reach
	if entry < 0 {
		if along+reach < 0 {
			return 0, false
		}
		return 0, true
	}
	return entry, true
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
