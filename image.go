package scalarfl

import (
	"encoding/binary"
	"fmt"
	"math"
)

// nodeHeaderSize is sizeof(PortableNode's fixed header): a type tag
// followed by the payload union (widest member is the 8-byte Scalar), per
// spec.md §3.
const (
	nodeHeaderSize = 4 + 8
	offsetSize     = 4
)

// Image is an owned, contiguous, position-independent byte buffer. The
// root node lives at offset 0; every params[i] on a non-leaf node is the
// byte offset of its child within the same buffer.
type Image []byte

// AddressTable holds the two parallel vectors described in spec.md §3:
// actual host pointers (or, for closures, context values) and the name
// each was interned under. An index is assigned the first time an address
// is encountered during lowering; addresses compare by identity.
type AddressTable struct {
	Addresses []any
	Names     []string
}

func (t *AddressTable) find(addr any) (int, bool) {
	for i, a := range t.Addresses {
		if a == addr {
			return i, true
		}
	}
	return 0, false
}

func (t *AddressTable) intern(addr any, name string) int {
	if idx, ok := t.find(addr); ok {
		return idx
	}
	idx := len(t.Addresses)
	t.Addresses = append(t.Addresses, addr)
	t.Names = append(t.Names, name)
	return idx
}

// internContext interns a closure's context value under a name unique to
// its assigned index. original_source names every context of a given
// callable "<fn>_closure", so two closures sharing a callable but differing
// in context collide in the name table (DESIGN NOTES §9); suffixing the
// index keeps names unique without changing how addresses are deduped.
func (t *AddressTable) internContext(ctx any, fnName string) int {
	if idx, ok := t.find(ctx); ok {
		return idx
	}
	idx := len(t.Addresses)
	t.Addresses = append(t.Addresses, ctx)
	t.Names = append(t.Names, fmt.Sprintf("%s_closure#%d", fnName, idx))
	return idx
}

// lower runs the two-pass lowering of spec.md §4.5 over root, interning
// every referenced host address into table (shared across every embedded
// expression of a program, so addresses referenced from multiple
// statements collapse to one table entry).
func lower(root *astNode, table *AddressTable) (Image, error) {
	size := sizeNode(root, table)
	buf := make([]byte, size)
	w := 0
	if err := writeNode(root, buf, &w, table); err != nil {
		return nil, err
	}
	return Image(buf), nil
}

// sizeNode is pass 1: sizing and address interning. It does not write
// bytes; it only accumulates the byte count pass 2 will need and populates
// table so every node's address/context already has an index by the time
// writeNode runs.
func sizeNode(n *astNode, table *AddressTable) int {
	size := nodeHeaderSize

	switch {
	case n.kind == KindVariable:
		table.intern(n.varAddr, n.varName)
	case n.kind.IsCallable():
		table.intern(n.fn, n.fn.Name)
		slots := n.kind.Arity()
		if n.kind.IsClosure() {
			slots++
			table.internContext(n.ctx, n.fn.Name)
		}
		size += slots * offsetSize
	}

	for _, a := range n.args {
		size += sizeNode(a, table)
	}
	return size
}

// writeNode is pass 2: it writes n's header and payload at *w, reserves
// and fills its offset slots, and recurses into children immediately
// after reserving their slot - so a child's own header lands exactly at
// the offset its parent just recorded.
func writeNode(n *astNode, buf []byte, w *int, table *AddressTable) error {
	self := *w
	*w += nodeHeaderSize
	binary.LittleEndian.PutUint32(buf[self:], uint32(n.kind))

	switch {
	case n.kind == KindConstant:
		binary.LittleEndian.PutUint64(buf[self+4:], math.Float64bits(n.value))
		return nil

	case n.kind == KindVariable:
		idx, _ := table.find(n.varAddr)
		binary.LittleEndian.PutUint32(buf[self+4:], uint32(idx))
		return nil

	case n.kind.IsCallable():
		fnIdx, _ := table.find(n.fn)
		binary.LittleEndian.PutUint32(buf[self+4:], uint32(fnIdx))

		arity := n.kind.Arity()
		slots := arity
		closure := n.kind.IsClosure()
		if closure {
			slots++
		}
		paramsAt := *w
		*w += slots * offsetSize

		for i, child := range n.args {
			binary.LittleEndian.PutUint32(buf[paramsAt+i*offsetSize:], uint32(*w))
			if err := writeNode(child, buf, w, table); err != nil {
				return err
			}
		}
		if closure {
			ctxIdx, _ := table.find(n.ctx)
			binary.LittleEndian.PutUint32(buf[paramsAt+arity*offsetSize:], uint32(ctxIdx))
		}
		return nil

	default:
		return fmt.Errorf("scalarfl: lowering hit an unrecognized node kind %d", n.kind)
	}
}
