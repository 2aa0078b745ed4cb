package pvr

import "math"

// Vertex is a position in screen space. X and Y are pixels, Z is 1/w, larger
// values being closer to the viewer.
type Vertex struct {
	X, Y, Z float32
}

func (v Vertex) words() (x, y, z uint32) {
	return math.Float32bits(v.X), math.Float32bits(v.Y), math.Float32bits(v.Z)
}
