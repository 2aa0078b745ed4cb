package pvr

import (
	"image/color"

	"github.com/anzen-go/anzen/debug"
)

// List streams vertices into one display list of a pass. Polygon lists take
// triangle strips: every vertex extends the current strip, EndStrip finishes
// it. Modifier lists take independent triangles, three vertices each.
//
// A List is consumed by Submit, all later calls fail with ErrListSubmitted.
type List struct {
	pass  *Pass
	typ   ListType
	color uint32
	done  bool

	header  bool
	tri     [2]Vertex
	ntri    int
	triLast bool
}

// Type returns the list type l was opened with.
func (l *List) Type() ListType { return l.typ }

// SetColor sets the color of subsequent vertices. It has no effect on
// modifier lists.
func (l *List) SetColor(c color.Color) {
	r, g, b, a := c.RGBA()
	l.color = a>>8<<24 | r>>8<<16 | g>>8<<8 | b>>8
}

// DrawVertex adds v to the current strip or triangle.
func (l *List) DrawVertex(v Vertex) error {
	return l.draw(v, false)
}

// EndStrip adds v as the last vertex of the current strip. On modifier lists
// it marks the end of the volume, even if v isn't the last vertex of its
// triangle: the triangle is flagged once it's complete.
func (l *List) EndStrip(v Vertex) error {
	return l.draw(v, true)
}

func (l *List) check() error {
	if l.pass == nil {
		return ErrInvalidPass
	}
	if !l.pass.ctx.Valid() {
		return ErrInvalidContext
	}
	if l.done {
		return ErrListSubmitted
	}
	return nil
}

func (l *List) draw(v Vertex, last bool) error {
	if err := l.check(); err != nil {
		return err
	}
	transfer := l.pass.ctx.transfer
	if !l.header {
		var hdr Block
		if l.typ.modifier() {
			hdr = modifierHeader(l.typ, volumeNormal)
		} else {
			hdr = polygonHeader(l.typ)
		}
		if err := transfer.Queue(hdr); err != nil {
			return err
		}
		l.header = true
	}

	if !l.typ.modifier() {
		return transfer.Queue(polygonVertex(v, l.color, last))
	}

	l.triLast = l.triLast || last
	if l.ntri < len(l.tri) {
		l.tri[l.ntri] = v
		l.ntri++
		return nil
	}
	tri := modifierTriangle(l.tri[0], l.tri[1], v, l.triLast)
	l.ntri, l.triLast = 0, false
	return transfer.Queue(tri[:]...)
}

// Submit terminates the list. Vertices of an unfinished modifier triangle are
// dropped.
func (l *List) Submit() error {
	if err := l.check(); err != nil {
		return err
	}
	debug.Assert(l.pass.open.has(l.typ), "submitting list that was never opened")
	if l.header {
		if err := l.pass.ctx.transfer.Queue(endOfList()); err != nil {
			return err
		}
	}
	l.done = true
	l.pass.close(l.typ)
	return nil
}
