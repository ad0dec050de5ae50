package scalarfl

// EvaluateProgram runs the sequential interpreter of spec.md §4.8:
// statements execute in order unless a Jump/JumpIf redirects i. Falling
// off the end without hitting Return yields NaN. Each embedded expression
// was lowered on its own, so its child offsets count from its own start:
// it is evaluated over image[exprOffset:].
func EvaluateProgram(statements []statement, image Image, table *AddressTable) Scalar {
	evaluatedCount.Inc()
	for i := 0; i < len(statements); i++ {
		s := statements[i]
		switch s.kind {
		case stmtJump:
			i = s.target - 1

		case stmtJumpIf:
			if evalAt(image[s.exprOffset:], table, 0) != 0 {
				i = s.target - 1
			}

		case stmtReturn:
			return evalAt(image[s.exprOffset:], table, 0)

		case stmtAssign:
			v := evalAt(image[s.exprOffset:], table, 0)
			addr, ok := addressAt(table, s.destIndex)
			if !ok {
				return NaN()
			}
			ptr, ok := addr.(*Scalar)
			if !ok || ptr == nil {
				return NaN()
			}
			*ptr = v

		case stmtCall:
			evalAt(image[s.exprOffset:], table, 0)
		}
	}
	evalLogger.Debugw("program fell off the end without a return", "statements", len(statements))
	return NaN()
}

// EvaluateProgramHandle is the free-function form of (*CompiledProgram).Evaluate.
func EvaluateProgramHandle(p *CompiledProgram) Scalar {
	return p.Evaluate()
}
