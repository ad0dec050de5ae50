package scalarfl

import (
	"encoding/binary"
	"math"
)

// Evaluate interprets image starting at offset 0 against table, per
// spec.md §4.6: a tail-recursive walk of the byte image that only ever
// touches host memory by reading through table - it never casts a byte
// offset back into a Go pointer on its own.
func Evaluate(image Image, table *AddressTable) Scalar {
	evaluatedCount.Inc()
	if table == nil {
		evalLogger.Debugw("evaluate called with a nil address table", "bytes", len(image))
		return NaN()
	}
	return evalAt(image, table, 0)
}

func addressAt(table *AddressTable, idx int) (any, bool) {
	if idx < 0 || idx >= len(table.Addresses) {
		return nil, false
	}
	return table.Addresses[idx], true
}

func evalAt(image Image, table *AddressTable, offset int) Scalar {
	kind := Kind(int32(binary.LittleEndian.Uint32(image[offset:])))

	switch {
	case kind == KindConstant:
		return math.Float64frombits(binary.LittleEndian.Uint64(image[offset+4:]))

	case kind == KindVariable:
		idx := int(binary.LittleEndian.Uint32(image[offset+4:]))
		addr, ok := addressAt(table, idx)
		if !ok {
			return NaN()
		}
		v, ok := addr.(*Scalar)
		if !ok || v == nil {
			return NaN()
		}
		return *v

	case kind.IsCallable():
		fnIdx := int(binary.LittleEndian.Uint32(image[offset+4:]))
		addr, ok := addressAt(table, fnIdx)
		if !ok {
			return NaN()
		}
		fn, ok := addr.(*Function)
		if !ok {
			return NaN()
		}

		arity := kind.Arity()
		paramsAt := offset + nodeHeaderSize
		args := make([]Scalar, arity)
		for i := 0; i < arity; i++ {
			childOffset := int(binary.LittleEndian.Uint32(image[paramsAt+i*offsetSize:]))
			args[i] = evalAt(image, table, childOffset)
		}

		var ctx any
		if kind.IsClosure() {
			ctxIdx := int(binary.LittleEndian.Uint32(image[paramsAt+arity*offsetSize:]))
			ctxAddr, ok := addressAt(table, ctxIdx)
			if !ok {
				return NaN()
			}
			ctx = ctxAddr
		}
		return fn.call(args, ctx)

	default:
		return NaN()
	}
}
