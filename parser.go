package scalarfl

// parser is a recursive-descent, operator-precedence parser over the fixed
// ladder in spec.md §4.3: list > expr > test > sum > term > factor > power
// > base.
type parser struct {
	lx   *lexer
	tok  token
	cfg  EngineConfig
	errAt int // 0 == no error yet
}

func newParser(src string, lookup lookupTable, cfg EngineConfig) *parser {
	p := &parser{lx: newLexer(src, lookup, cfg.NaturalLog), cfg: cfg}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lx.next()
	if p.tok.kind == tokError {
		p.fail()
	}
}

// fail records the first syntax error's byte offset (1-based, floor 1) and
// forces the token stream into the Error state so every caller up the
// recursion unwinds without producing more output.
func (p *parser) fail() {
	if p.errAt == 0 {
		off := p.lx.pos
		if off == 0 {
			off = 1
		}
		p.errAt = off
	}
	p.tok.kind = tokError
}

// parseExpression parses a full list-expression and requires the token
// stream to end at TOK_END; on success it returns the (unoptimized) AST
// root. Matches compile_native's top-level shape in original_source.
func parseExpression(src string, lookup lookupTable, cfg EngineConfig) (*astNode, error) {
	p := newParser(src, lookup, cfg)
	root := p.list()
	if p.errAt != 0 {
		return nil, syntaxErrorf(p.errAt, "unexpected token")
	}
	if p.tok.kind != tokEnd {
		return nil, syntaxErrorf(p.lx.pos, "trailing input")
	}
	return root, nil
}

// list = expr { "," expr }
func (p *parser) list() *astNode {
	ret := p.expr()
	for p.tok.kind == tokSep {
		p.advance()
		ret = newBinary(opComma, ret, p.expr())
	}
	return ret
}

// expr = test { ("&&" | "||") test }
func (p *parser) expr() *astNode {
	ret := p.test()
	for p.tok.kind == tokInfix && (p.tok.fn == opLogicalAnd || p.tok.fn == opLogicalOr) {
		fn := p.tok.fn
		p.advance()
		ret = newBinary(fn, ret, p.test())
	}
	return ret
}

// test = sum { (">"|">="|"<"|"<="|"=="|"!=") sum }
func (p *parser) test() *astNode {
	ret := p.sum()
	for p.tok.kind == tokInfix && isCompare(p.tok.fn) {
		fn := p.tok.fn
		p.advance()
		ret = newBinary(fn, ret, p.sum())
	}
	return ret
}

func isCompare(fn *Function) bool {
	return fn == opGreater || fn == opGreaterEq || fn == opLower || fn == opLowerEq || fn == opEqual || fn == opNotEqual
}

// sum = term { ("+"|"-") term }
func (p *parser) sum() *astNode {
	ret := p.term()
	for p.tok.kind == tokInfix && (p.tok.fn == opAdd || p.tok.fn == opSub) {
		fn := p.tok.fn
		p.advance()
		ret = newBinary(fn, ret, p.term())
	}
	return ret
}

// term = factor { ("*"|"/"|"%") factor }
func (p *parser) term() *astNode {
	ret := p.factor()
	for p.tok.kind == tokInfix && (p.tok.fn == opMul || p.tok.fn == opDivide || p.tok.fn == opFmod) {
		fn := p.tok.fn
		p.advance()
		ret = newBinary(fn, ret, p.factor())
	}
	return ret
}

// factor = power { "^" power }, left-assoc by default; right-assoc is a
// build option per spec.md §4.3 (here: EngineConfig.PowRightAssociative).
func (p *parser) factor() *astNode {
	if p.cfg.PowRightAssociative {
		return p.factorRightAssoc()
	}
	ret := p.power()
	for p.tok.kind == tokInfix && p.tok.fn == opPow {
		p.advance()
		ret = newBinary(opPow, ret, p.power())
	}
	return ret
}

// factorRightAssoc peels a leading unary wrapper off power()'s result,
// parses the "^" chain right-to-left, then reapplies the wrapper - so
// "-2^2" parses as "-(2^2)" rather than "(-2)^2".
func (p *parser) factorRightAssoc() *astNode {
	ret := p.power()

	var wrapper *Function
	if ret.kind == KindFunction1.WithPure() && isUnaryWrapper(ret.fn) {
		wrapper = ret.fn
		ret = ret.args[0]
	}

	var insertion *astNode
	for p.tok.kind == tokInfix && p.tok.fn == opPow {
		p.advance()
		if insertion != nil {
			insert := newBinary(opPow, insertion.args[1], p.power())
			insertion.args[1] = insert
			insertion = insert
		} else {
			ret = newBinary(opPow, ret, p.power())
			insertion = ret
		}
	}

	if wrapper != nil {
		ret = newUnary(wrapper, ret)
	}
	return ret
}

func isUnaryWrapper(fn *Function) bool {
	return fn == opNegate || fn == opLogicalNot || fn == opLogicalNotnot || fn == opNegateLogicalNot || fn == opNegateLogicalNotnot
}

// power = { "+" | "-" | "!" } base
func (p *parser) power() *astNode {
	sign := 1
	for p.tok.kind == tokInfix && (p.tok.fn == opAdd || p.tok.fn == opSub) {
		if p.tok.fn == opSub {
			sign = -sign
		}
		p.advance()
	}

	logical := 0
	for p.tok.kind == tokInfix && p.tok.fn == opLogicalNot {
		if logical == 0 {
			logical = -1
		} else {
			logical = -logical
		}
		p.advance()
	}

	base := p.base()
	switch {
	case sign == 1 && logical == 0:
		return base
	case sign == 1 && logical == -1:
		return newUnary(opLogicalNot, base)
	case sign == 1 && logical == 1:
		return newUnary(opLogicalNotnot, base)
	case sign == -1 && logical == 0:
		return newUnary(opNegate, base)
	case sign == -1 && logical == -1:
		return newUnary(opNegateLogicalNot, base)
	default: // sign == -1, logical == 1
		return newUnary(opNegateLogicalNotnot, base)
	}
}

// base = NUMBER | VARIABLE | FUNC0 ["(" ")"] | FUNC1 power
//      | FUNCn "(" expr {"," expr} ")" | CLOSUREn ... | "(" list ")"
func (p *parser) base() *astNode {
	switch p.tok.kind {
	case tokNumber:
		ret := newConstant(p.tok.value)
		p.advance()
		return ret

	case tokVariable:
		ret := newVariable(p.tok.varAddr, p.tok.varName)
		p.advance()
		return ret

	case tokCallable:
		fn, ctx := p.tok.fn, p.tok.ctx
		arity := fn.Kind.Arity()
		switch arity {
		case 0:
			p.advance()
			if p.tok.kind == tokOpen {
				p.advance()
				if p.tok.kind != tokClose {
					p.fail()
					return newCall(fn, ctx, nil)
				}
				p.advance()
			}
			return newCall(fn, ctx, nil)
		case 1:
			p.advance()
			arg := p.power()
			return newCall(fn, ctx, []*astNode{arg})
		default:
			p.advance()
			if p.tok.kind != tokOpen {
				p.fail()
				return newCall(fn, ctx, make([]*astNode, arity))
			}
			args := make([]*astNode, 0, arity)
			for i := 0; i < arity; i++ {
				p.advance()
				args = append(args, p.expr())
				if i < arity-1 && p.tok.kind != tokSep {
					p.fail()
					break
				}
			}
			if p.tok.kind != tokClose || len(args) != arity {
				p.fail()
				return newCall(fn, ctx, args)
			}
			p.advance()
			return newCall(fn, ctx, args)
		}

	case tokOpen:
		p.advance()
		ret := p.list()
		if p.tok.kind != tokClose {
			p.fail()
			return ret
		}
		p.advance()
		return ret

	default:
		p.fail()
		return newConstant(NaN())
	}
}
