package scalarfl

// astNode is the transient, pointer-based tree the parser builds. It exists
// only during compile() and is discarded (left for the garbage collector)
// once lowering has produced a portable image - spec.md §3's "Lifecycle".
type astNode struct {
	kind Kind

	value   Scalar  // Constant
	varAddr *Scalar // Variable
	varName string  // Variable: host name, carried so lowering needs no reverse lookup

	fn  *Function // Call/Closure: callable address
	ctx any        // Closure: context value

	args []*astNode
}

func newConstant(v Scalar) *astNode {
	return &astNode{kind: KindConstant, value: v}
}

func newVariable(addr *Scalar, name string) *astNode {
	return &astNode{kind: KindVariable, varAddr: addr, varName: name}
}

func newCall(fn *Function, ctx any, args []*astNode) *astNode {
	return &astNode{kind: fn.Kind, fn: fn, ctx: ctx, args: args}
}

// newUnary builds a Function1|Pure wrapper node, used by power() to apply
// negate/logical_not/logical_notnot/negate_logical_not/negate_logical_notnot.
func newUnary(fn *Function, arg *astNode) *astNode {
	return &astNode{kind: KindFunction1.WithPure(), fn: fn, args: []*astNode{arg}}
}

// newBinary builds a Function2|Pure wrapper node for an infix operator.
func newBinary(fn *Function, left, right *astNode) *astNode {
	return &astNode{kind: KindFunction2.WithPure(), fn: fn, args: []*astNode{left, right}}
}
