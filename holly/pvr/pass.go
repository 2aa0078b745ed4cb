package pvr

import (
	"fmt"

	"github.com/anzen-go/anzen/debug"
)

// ListType selects one of the TA's display lists. The values match the list
// type field of the parameter control word.
type ListType uint8

const (
	ListOpaque              ListType = iota // OP
	ListOpaqueModifier                      // OP_MOD
	ListTranslucent                         // TR
	ListTranslucentModifier                 // TR_MOD
	ListPunchThrough                        // PT

	listTypeCount
)

var listTypeNames = [listTypeCount]string{"OP", "OP_MOD", "TR", "TR_MOD", "PT"}

func (t ListType) String() string {
	if t < listTypeCount {
		return listTypeNames[t]
	}
	return fmt.Sprintf("ListType(%d)", uint8(t))
}

func (t ListType) modifier() bool {
	return t == ListOpaqueModifier || t == ListTranslucentModifier
}

// ListState is the state of one list type within a pass.
type ListState uint8

const (
	ListClosed ListState = iota
	ListOpen
	ListSubmitted
)

func (s ListState) String() string {
	switch s {
	case ListClosed:
		return "closed"
	case ListOpen:
		return "open"
	case ListSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("ListState(%d)", uint8(s))
}

type listSet uint8

func (s listSet) has(t ListType) bool { return s&(1<<t) != 0 }
func (s *listSet) add(t ListType)     { *s |= 1 << t }

// Pass is a sequence of display list submissions. Each list type can be opened
// once per pass. Lists may be open at the same time, but must all be
// submitted before the pass is.
type Pass struct {
	ctx       *Context
	open      listSet
	submitted listSet
	done      bool
}

// List opens the display list of type t. It fails with
// ErrAlreadyOpenedOrSubmitted if this pass already opened a list of that type.
func (p *Pass) List(t ListType) (*List, error) {
	if !p.ctx.Valid() {
		return nil, ErrInvalidContext
	}
	if p.done {
		return nil, ErrInvalidPass
	}
	if t >= listTypeCount {
		return nil, ErrInvalidListType
	}
	if p.open.has(t) || p.submitted.has(t) {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyOpenedOrSubmitted, t)
	}
	p.open.add(t)
	return &List{pass: p, typ: t, color: 0xffff_ffff}, nil
}

// close marks t as submitted. Only List.Submit calls it, once per list.
func (p *Pass) close(t ListType) {
	debug.Assertf(!p.submitted.has(t), "pvr: %v list submitted twice", t)
	p.submitted.add(t)
}

// State returns the state of list type t in this pass.
func (p *Pass) State(t ListType) ListState {
	switch {
	case p.submitted.has(t):
		return ListSubmitted
	case p.open.has(t):
		return ListOpen
	}
	return ListClosed
}

// Opened reports whether a list of type t was opened in this pass, regardless
// of it being submitted since.
func (p *Pass) Opened(t ListType) bool { return p.open.has(t) }

// Submitted reports whether the list of type t was submitted.
func (p *Pass) Submitted(t ListType) bool { return p.submitted.has(t) }

// Submit finishes the pass and sends its parameters to the TA. A pass can't be
// used afterwards. If the context was destroyed it does nothing and returns
// ErrInvalidContext.
func (p *Pass) Submit() error {
	if !p.ctx.Valid() {
		return ErrInvalidContext
	}
	if p.done {
		return ErrInvalidPass
	}
	if debug.Enabled {
		for t := range listTypeCount {
			debug.Assertf(p.open.has(t) || !p.submitted.has(t), "pvr: %v list submitted without being opened", t)
		}
	}
	if p.open != p.submitted {
		return ErrListOpen
	}
	if err := p.ctx.transfer.Send(); err != nil {
		return err
	}
	p.done = true
	logger().Debug("pvr: pass submitted", "lists", p.submitted)
	return nil
}

func (s listSet) String() string {
	var b []byte
	for t := range listTypeCount {
		if s.has(t) {
			if len(b) > 0 {
				b = append(b, '|')
			}
			b = append(b, t.String()...)
		}
	}
	return string(b)
}
