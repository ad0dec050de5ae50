package scalarfl

// optimize performs the post-order constant fold described in spec.md §4.4:
// children are optimized first, and a node collapses to a Constant only if
// it is itself Pure and every argument already collapsed to a Constant.
// Variables, and any Closure (never Pure), are left untouched.
func optimize(n *astNode) *astNode {
	if n == nil || n.kind == KindConstant || n.kind == KindVariable {
		return n
	}

	allConstant := true
	for i, a := range n.args {
		n.args[i] = optimize(a)
		if n.args[i].kind != KindConstant {
			allConstant = false
		}
	}

	if !allConstant || !n.kind.IsPure() {
		return n
	}

	values := make([]Scalar, len(n.args))
	for i, a := range n.args {
		values[i] = a.value
	}
	return newConstant(n.fn.call(values, n.ctx))
}
