package domain

// Point is a position in board-local units.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from o to p.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Size is a width/height pair in board-local units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	Origin Point
	Size   Size
}

// Contains reports whether p lies inside the rectangle. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X &&
		p.Y >= r.Origin.Y &&
		p.X < r.Origin.X+r.Size.Width &&
		p.Y < r.Origin.Y+r.Size.Height
}

// ClampAxis limits v to [0, limit-extent]. When the extent does not fit inside limit the range
// collapses and the result is 0.
func ClampAxis(v, extent, limit float64) float64 {
	maxV := limit - extent
	if maxV < 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > maxV {
		return maxV
	}
	return v
}

// ClampToBoard keeps a note of the given size fully inside the board on both axes.
func ClampToBoard(p Point, note Size, board Size) Point {
	return Point{
		X: ClampAxis(p.X, note.Width, board.Width),
		Y: ClampAxis(p.Y, note.Height, board.Height),
	}
}
