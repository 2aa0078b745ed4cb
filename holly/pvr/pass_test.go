package pvr_test

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/anzen-go/anzen/holly/pvr"
)

var listTypes = []pvr.ListType{
	pvr.ListOpaque,
	pvr.ListOpaqueModifier,
	pvr.ListTranslucent,
	pvr.ListTranslucentModifier,
	pvr.ListPunchThrough,
}

func TestListStateMachine(t *testing.T) {
	for _, typ := range listTypes {
		t.Run(typ.String(), func(t *testing.T) {
			ctx, _ := newContext(t)
			pass, err := ctx.CreatePass()
			if err != nil {
				t.Fatal(err)
			}
			if s := pass.State(typ); s != pvr.ListClosed {
				t.Fatalf("new pass: %v", s)
			}

			list, err := pass.List(typ)
			if err != nil {
				t.Fatal(err)
			}
			if s := pass.State(typ); s != pvr.ListOpen {
				t.Fatalf("after open: %v", s)
			}
			if _, err := pass.List(typ); !errors.Is(err, pvr.ErrAlreadyOpenedOrSubmitted) {
				t.Fatalf("reopen open list: got %v", err)
			}

			if err := list.Submit(); err != nil {
				t.Fatal(err)
			}
			if !pass.Submitted(typ) || !pass.Opened(typ) {
				t.Fatal("list not marked submitted")
			}
			if s := pass.State(typ); s != pvr.ListSubmitted {
				t.Fatalf("after submit: %v", s)
			}
			if _, err := pass.List(typ); !errors.Is(err, pvr.ErrAlreadyOpenedOrSubmitted) {
				t.Fatalf("reopen submitted list: got %v", err)
			}

			for _, other := range listTypes {
				if other != typ && pass.State(other) != pvr.ListClosed {
					t.Fatalf("%v changed state of %v", typ, other)
				}
			}
		})
	}
}

func TestListTypesIndependent(t *testing.T) {
	ctx, _ := newContext(t)
	pass, err := ctx.CreatePass()
	if err != nil {
		t.Fatal(err)
	}

	lists := make([]*pvr.List, 0, len(listTypes))
	for _, typ := range listTypes {
		l, err := pass.List(typ)
		if err != nil {
			t.Fatalf("%v: %v", typ, err)
		}
		lists = append(lists, l)
	}
	for _, l := range lists {
		if err := l.Submit(); err != nil {
			t.Fatalf("%v: %v", l.Type(), err)
		}
	}
	if err := pass.Submit(); err != nil {
		t.Fatal(err)
	}
}

func TestInvalidListType(t *testing.T) {
	ctx, _ := newContext(t)
	pass, _ := ctx.CreatePass()
	if _, err := pass.List(pvr.ListType(5)); !errors.Is(err, pvr.ErrInvalidListType) {
		t.Fatalf("got %v", err)
	}
}

func TestListSubmitOnce(t *testing.T) {
	ctx, _ := newContext(t)
	pass, _ := ctx.CreatePass()
	list, err := pass.List(pvr.ListTranslucent)
	if err != nil {
		t.Fatal(err)
	}

	if err := list.Submit(); err != nil {
		t.Fatal(err)
	}
	if err := list.Submit(); !errors.Is(err, pvr.ErrListSubmitted) {
		t.Fatalf("second submit: got %v", err)
	}
	if err := list.DrawVertex(pvr.Vertex{}); !errors.Is(err, pvr.ErrListSubmitted) {
		t.Fatalf("draw after submit: got %v", err)
	}
}

func TestPassSubmit(t *testing.T) {
	ctx, rec := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListOpaque)

	if err := pass.Submit(); !errors.Is(err, pvr.ErrListOpen) {
		t.Fatalf("submit with open list: got %v", err)
	}
	if err := list.Submit(); err != nil {
		t.Fatal(err)
	}
	if err := pass.Submit(); err != nil {
		t.Fatal(err)
	}
	if rec.sends != 1 {
		t.Fatalf("%d sends, expected 1", rec.sends)
	}

	if err := pass.Submit(); !errors.Is(err, pvr.ErrInvalidPass) {
		t.Fatalf("second submit: got %v", err)
	}
	if _, err := pass.List(pvr.ListPunchThrough); !errors.Is(err, pvr.ErrInvalidPass) {
		t.Fatalf("list on submitted pass: got %v", err)
	}

	// Passes are independent of each other.
	next, err := ctx.CreatePass()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := next.List(pvr.ListOpaque); err != nil {
		t.Fatal(err)
	}
}

func TestTransferError(t *testing.T) {
	ctx, rec := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListOpaque)

	errBus := errors.New("bus error")
	rec.err = errBus
	if err := list.DrawVertex(pvr.Vertex{}); !errors.Is(err, errBus) {
		t.Fatalf("draw: got %v", err)
	}

	rec.err = nil
	if err := list.DrawVertex(pvr.Vertex{}); err != nil {
		t.Fatal(err)
	}
	rec.err = errBus
	if err := list.Submit(); !errors.Is(err, errBus) {
		t.Fatalf("submit: got %v", err)
	}
	if pass.Submitted(pvr.ListOpaque) {
		t.Fatal("failed submit consumed the list")
	}
	rec.err = nil
	if err := list.Submit(); err != nil {
		t.Fatal("retry submit:", err)
	}
}

func TestDrawStrip(t *testing.T) {
	ctx, rec := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListTranslucent)
	list.SetColor(color.NRGBA{0x11, 0x22, 0x33, 0xff})

	strip := []pvr.Vertex{{X: 1, Y: 2, Z: 1}, {X: 3, Y: 4, Z: 1}, {X: 5, Y: 6, Z: 1}}
	for _, v := range strip[:2] {
		if err := list.DrawVertex(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := list.EndStrip(strip[2]); err != nil {
		t.Fatal(err)
	}
	if err := list.Submit(); err != nil {
		t.Fatal(err)
	}

	if len(rec.queued) != 5 {
		t.Fatalf("queued %d blocks, expected header, 3 vertices and end of list", len(rec.queued))
	}
	hdr := rec.queued[0]
	if hdr[0]>>29 != 4 || hdr[0]>>24&0x7 != uint32(pvr.ListTranslucent) {
		t.Errorf("header control word %#08x", hdr[0])
	}
	for i, v := range strip {
		blk := rec.queued[i+1]
		if blk[0]>>29 != 7 {
			t.Errorf("vertex %d: control word %#08x", i, blk[0])
		}
		eos := blk[0]&(1<<28) != 0
		if eos != (i == len(strip)-1) {
			t.Errorf("vertex %d: end of strip %v", i, eos)
		}
		if blk[1] != math.Float32bits(v.X) || blk[2] != math.Float32bits(v.Y) || blk[3] != math.Float32bits(v.Z) {
			t.Errorf("vertex %d: position %#x", i, blk[1:4])
		}
		if blk[6] != 0xff11_2233 {
			t.Errorf("vertex %d: color %#08x", i, blk[6])
		}
	}
	if eol := rec.queued[4]; eol != (pvr.Block{}) {
		t.Errorf("end of list %#x", eol)
	}
}

func TestModifierTriangles(t *testing.T) {
	ctx, rec := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListOpaqueModifier)

	list.DrawVertex(pvr.Vertex{X: 1})
	list.DrawVertex(pvr.Vertex{X: 2})
	if len(rec.queued) != 1 {
		t.Fatalf("incomplete triangle queued %d blocks", len(rec.queued))
	}
	list.EndStrip(pvr.Vertex{X: 3})
	list.DrawVertex(pvr.Vertex{X: 4}) // dropped by submit
	list.Submit()

	// header, two blocks of triangle, end of list
	if len(rec.queued) != 4 {
		t.Fatalf("queued %d blocks", len(rec.queued))
	}
	tri := rec.queued[1]
	if tri[0]>>29 != 7 || tri[0]&(1<<28) == 0 {
		t.Errorf("triangle control word %#08x", tri[0])
	}
	if tri[1] != math.Float32bits(1) || tri[4] != math.Float32bits(2) || tri[7] != math.Float32bits(3) {
		t.Errorf("triangle vertices %#x", tri)
	}
}

func TestModifierVolumeEndMidTriangle(t *testing.T) {
	ctx, rec := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListTranslucentModifier)

	for _, err := range []error{
		list.DrawVertex(pvr.Vertex{X: 1}),
		list.EndStrip(pvr.Vertex{X: 2}),
		list.DrawVertex(pvr.Vertex{X: 3}),
		list.DrawVertex(pvr.Vertex{X: 4}),
		list.DrawVertex(pvr.Vertex{X: 5}),
		list.DrawVertex(pvr.Vertex{X: 6}),
		list.Submit(),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	// header, two triangles of two blocks each, end of list
	if len(rec.queued) != 6 {
		t.Fatalf("queued %d blocks", len(rec.queued))
	}
	if pcw := rec.queued[1][0]; pcw&(1<<28) == 0 {
		t.Errorf("first triangle doesn't end the volume: %#08x", pcw)
	}
	if pcw := rec.queued[3][0]; pcw&(1<<28) != 0 {
		t.Errorf("second triangle ends the volume: %#08x", pcw)
	}
}

func TestZeroList(t *testing.T) {
	var list pvr.List
	if err := list.DrawVertex(pvr.Vertex{}); !errors.Is(err, pvr.ErrInvalidPass) {
		t.Errorf("DrawVertex: %v", err)
	}
	if err := list.Submit(); !errors.Is(err, pvr.ErrInvalidPass) {
		t.Errorf("Submit: %v", err)
	}
}

func TestEmptyList(t *testing.T) {
	ctx, rec := newContext(t)
	pass, _ := ctx.CreatePass()
	list, _ := pass.List(pvr.ListPunchThrough)
	list.Submit()
	if len(rec.queued) != 0 {
		t.Fatalf("empty list queued %d blocks", len(rec.queued))
	}
}
