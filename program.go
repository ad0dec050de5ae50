package scalarfl

import (
	"strings"

	"go.uber.org/multierr"
)

type statementKind int

const (
	stmtJump statementKind = iota
	stmtJumpIf
	stmtReturn
	stmtAssign
	stmtCall
)

// statement is the runtime-resolved form of one program line, per
// spec.md §3. targetName is only used between parsing and resolveLabels;
// by the time CompileProgram returns, target already holds the resolved
// statement index.
type statement struct {
	kind       statementKind
	target     int
	targetName string
	exprOffset int
	destIndex  int
}

// CompiledProgram is the opaque handle returned by CompileProgram. Like
// CompiledExpression it owns its statements, image, and address table.
type CompiledProgram struct {
	statements []statement
	image      Image
	table      *AddressTable
}

func (p *CompiledProgram) StatementCount() int         { return len(p.statements) }
func (p *CompiledProgram) Image() Image                { return p.image }
func (p *CompiledProgram) AddressTable() *AddressTable { return p.table }
func (p *CompiledProgram) NameTable() []string         { return p.table.Names }

// Evaluate runs the program interpreter over p's own statements, image,
// and address table.
func (p *CompiledProgram) Evaluate() Scalar {
	return EvaluateProgram(p.statements, p.image, p.table)
}

// splitAtChar splits s at the first occurrence of sep, trimming ASCII
// whitespace off both halves. ok is false when sep does not occur in s,
// in which case head is simply trimmed(s).
func splitAtChar(s string, sep byte) (head, tail string, ok bool) {
	idx := strings.IndexByte(s, sep)
	if idx < 0 {
		return trimmed(s), "", false
	}
	return trimmed(s[:idx]), trimmed(s[idx+1:]), true
}

// CompileProgram parses text's ";"-separated statements into a typed
// statement list, compiling every embedded expression through one shared
// address table so an address referenced from multiple statements
// collapses to a single table entry, per spec.md §4.7.
func CompileProgram(text string, bindings []Binding, cfg EngineConfig) (*CompiledProgram, error) {
	lookup := lookupTable(bindings)
	table := &AddressTable{}

	labels := map[string]int{}
	var statements []statement
	var image Image
	var errs error

	for _, raw := range strings.Split(text, ";") {
		line := trimmed(raw)
		if line == "" {
			continue
		}

		head, tail, hasColon := splitAtChar(line, ':')
		if !hasColon {
			stmt, err := compileCallStatement(line, lookup, cfg, table, &image)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			statements = append(statements, stmt)
			continue
		}

		switch head {
		case "label":
			if _, dup := labels[tail]; dup {
				// DESIGN NOTES §9: the statement this replaces silently
				// overwrote the placeholder on redefinition. Reported here
				// as a hard error instead.
				errs = multierr.Append(errs, semanticErrorf("duplicate label %q", tail))
				continue
			}
			labels[tail] = len(statements)

		case "jump":
			target, cond, hasCond := splitAtChar(tail, '?')
			if hasCond {
				stmt, err := compileJumpIfStatement(target, cond, lookup, cfg, table, &image)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				statements = append(statements, stmt)
			} else {
				statements = append(statements, statement{kind: stmtJump, targetName: tail})
			}

		case "return":
			stmt, err := compileReturnStatement(tail, lookup, cfg, table, &image)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			statements = append(statements, stmt)

		default:
			stmt, err := compileAssignStatement(head, tail, lookup, cfg, table, &image)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			statements = append(statements, stmt)
		}
	}

	if err := resolveLabels(statements, labels); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		compileLogger.Debugw("program compile failed", "err", errs)
		return nil, errs
	}

	compiledCount.Inc()
	compileLogger.Debugw("program compiled", "statements", len(statements), "bytes", len(image))
	return &CompiledProgram{statements: statements, image: image, table: table}, nil
}

// compileEmbeddedExpr compiles one statement's embedded expression text.
// Per tinyprog.h's program_details::compile, any failure here - syntax or
// semantic - collapses to the program compiler's single semantic error
// (error = -1), not the expression compiler's own positive syntax offset.
func compileEmbeddedExpr(text string, lookup lookupTable, cfg EngineConfig, table *AddressTable, image *Image) (int, error) {
	root, err := parseExpression(text, lookup, cfg)
	if err != nil {
		return 0, semanticErrorf("%s", err)
	}
	root = optimize(root)
	bytes, err := lower(root, table)
	if err != nil {
		return 0, semanticErrorf("%s", err)
	}
	offset := len(*image)
	*image = append(*image, bytes...)
	return offset, nil
}

func compileCallStatement(expr string, lookup lookupTable, cfg EngineConfig, table *AddressTable, image *Image) (statement, error) {
	off, err := compileEmbeddedExpr(expr, lookup, cfg, table, image)
	if err != nil {
		return statement{}, err
	}
	return statement{kind: stmtCall, exprOffset: off}, nil
}

func compileReturnStatement(expr string, lookup lookupTable, cfg EngineConfig, table *AddressTable, image *Image) (statement, error) {
	off, err := compileEmbeddedExpr(expr, lookup, cfg, table, image)
	if err != nil {
		return statement{}, err
	}
	return statement{kind: stmtReturn, exprOffset: off}, nil
}

func compileJumpIfStatement(target, cond string, lookup lookupTable, cfg EngineConfig, table *AddressTable, image *Image) (statement, error) {
	off, err := compileEmbeddedExpr(cond, lookup, cfg, table, image)
	if err != nil {
		return statement{}, err
	}
	return statement{kind: stmtJumpIf, targetName: target, exprOffset: off}, nil
}

func compileAssignStatement(name, expr string, lookup lookupTable, cfg EngineConfig, table *AddressTable, image *Image) (statement, error) {
	b, ok := lookup.find(name)
	if !ok || b.Kind() != KindVariable {
		return statement{}, semanticErrorf("assignment to unresolved variable %q", name)
	}
	off, err := compileEmbeddedExpr(expr, lookup, cfg, table, image)
	if err != nil {
		return statement{}, err
	}
	destIndex := table.intern(b.varAddr, b.Name)
	return statement{kind: stmtAssign, exprOffset: off, destIndex: destIndex}, nil
}

// resolveLabels is pass B of spec.md §4.7's two-pass resolution: every
// Jump/JumpIf's targetName is looked up against the now-complete label
// table and replaced with a concrete statement index.
func resolveLabels(statements []statement, labels map[string]int) error {
	var errs error
	for i := range statements {
		if statements[i].kind != stmtJump && statements[i].kind != stmtJumpIf {
			continue
		}
		idx, ok := labels[statements[i].targetName]
		if !ok {
			errs = multierr.Append(errs, semanticErrorf("jump to undefined label %q", statements[i].targetName))
			continue
		}
		statements[i].target = idx
	}
	return errs
}
