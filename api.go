package scalarfl

// CompiledExpression is the opaque handle returned by CompileExpression.
// It owns its image and address table; in Go there is nothing to
// explicitly free - both are released once the handle is unreachable.
type CompiledExpression struct {
	image Image
	table *AddressTable
}

// Image returns the handle's position-independent byte buffer.
func (c *CompiledExpression) Image() Image { return c.image }

// AddressTable returns the handle's address table.
func (c *CompiledExpression) AddressTable() *AddressTable { return c.table }

// NameTable returns the host name recorded for each address-table entry.
func (c *CompiledExpression) NameTable() []string { return c.table.Names }

// Evaluate runs the portable evaluator over c's own image and table.
func (c *CompiledExpression) Evaluate() Scalar {
	return Evaluate(c.image, c.table)
}

// EvaluateExpression is the free-function form of (*CompiledExpression).Evaluate.
func EvaluateExpression(c *CompiledExpression) Scalar {
	return c.Evaluate()
}
