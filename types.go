// Package scalarfl compiles and evaluates a small shader-like scalar
// expression and program language over a host-supplied table of named
// bindings: scalar variables, pure functions of 0-7 arguments, and
// closures carrying an opaque context value.
package scalarfl

import "math"

// Scalar is the single numeric type the language operates on. NaN doubles
// as the sentinel returned from any failed evaluation.
type Scalar = float64

// NaN returns the scalar NaN sentinel.
func NaN() Scalar { return Scalar(math.NaN()) }

// IsNaN reports whether v is the NaN sentinel.
func IsNaN(v Scalar) bool { return math.IsNaN(v) }

// Kind tags a node (AST or portable) and a host binding with its category
// and, for callables, arity. Layout mirrors the C original bit for bit so
// the category/arity/pure decomposition below stays mechanical:
//
//	low 5 bits  = category (Variable, Constant, Function0..7, Closure0..7)
//	bit 5       = Pure flag
//	low 3 bits of category (when category >= Function0) = arity
type Kind int32

const (
	KindVariable Kind = 0
	KindConstant Kind = 1

	KindFunction0 Kind = 8
	KindFunction1 Kind = 9
	KindFunction2 Kind = 10
	KindFunction3 Kind = 11
	KindFunction4 Kind = 12
	KindFunction5 Kind = 13
	KindFunction6 Kind = 14
	KindFunction7 Kind = 15

	KindClosure0 Kind = 16
	KindClosure1 Kind = 17
	KindClosure2 Kind = 18
	KindClosure3 Kind = 19
	KindClosure4 Kind = 20
	KindClosure5 Kind = 21
	KindClosure6 Kind = 22
	KindClosure7 Kind = 23

	KindFlagPure Kind = 32

	kindCategoryMask = 0x1F
	kindArityMask    = 0x07
)

// WithPure sets the Pure flag on a category.
func (k Kind) WithPure() Kind { return k | KindFlagPure }

// Category strips the Pure flag, leaving the bare category tag.
func (k Kind) Category() Kind { return k & kindCategoryMask }

// IsPure reports whether k carries the Pure flag.
func (k Kind) IsPure() bool { return k&KindFlagPure != 0 }

// IsFunction reports whether k is Function0..Function7 (Pure flag ignored).
func (k Kind) IsFunction() bool {
	c := k.Category()
	return c >= KindFunction0 && c <= KindFunction7
}

// IsClosure reports whether k is Closure0..Closure7 (Pure flag ignored).
func (k Kind) IsClosure() bool {
	c := k.Category()
	return c >= KindClosure0 && c <= KindClosure7
}

// IsCallable reports whether k is any function or closure category.
func (k Kind) IsCallable() bool { return k.IsFunction() || k.IsClosure() }

// Arity returns 0 for Variable/Constant, and 0-7 for Function/Closure
// categories.
func (k Kind) Arity() int {
	if k.IsCallable() {
		return int(k.Category() & kindArityMask)
	}
	return 0
}

// FunctionKind returns the Function<N> kind for arity n (0-7).
func FunctionKind(n int) Kind { return Kind(int(KindFunction0) + n) }

// ClosureKind returns the Closure<N> kind for arity n (0-7).
func ClosureKind(n int) Kind { return Kind(int(KindClosure0) + n) }

// Func0..Func7 are the shapes a host function binding may take. The engine
// dispatches to exactly one of these by arity; there is no general
// variadic call.
type (
	Func0 func() Scalar
	Func1 func(Scalar) Scalar
	Func2 func(Scalar, Scalar) Scalar
	Func3 func(Scalar, Scalar, Scalar) Scalar
	Func4 func(Scalar, Scalar, Scalar, Scalar) Scalar
	Func5 func(Scalar, Scalar, Scalar, Scalar, Scalar) Scalar
	Func6 func(Scalar, Scalar, Scalar, Scalar, Scalar, Scalar) Scalar
	Func7 func(Scalar, Scalar, Scalar, Scalar, Scalar, Scalar, Scalar) Scalar
)

// ClosureFn0..ClosureFn7 are the closure shapes: same as FuncN but with an
// opaque context value prepended.
type (
	ClosureFn0 func(ctx any) Scalar
	ClosureFn1 func(ctx any, a0 Scalar) Scalar
	ClosureFn2 func(ctx any, a0, a1 Scalar) Scalar
	ClosureFn3 func(ctx any, a0, a1, a2 Scalar) Scalar
	ClosureFn4 func(ctx any, a0, a1, a2, a3 Scalar) Scalar
	ClosureFn5 func(ctx any, a0, a1, a2, a3, a4 Scalar) Scalar
	ClosureFn6 func(ctx any, a0, a1, a2, a3, a4, a5 Scalar) Scalar
	ClosureFn7 func(ctx any, a0, a1, a2, a3, a4, a5, a6 Scalar) Scalar
)

// Function is the engine's stand-in for a host "address": a pointer with
// stable identity that wraps one of the FuncN/ClosureN shapes above plus
// its kind. Two Functions are the same binding iff they are the same
// pointer - this is what the address table interns and what the lexer
// compares against when recognizing the infix operators.
type Function struct {
	Name string
	Kind Kind
	Fn   any // one of FuncN / ClosureN
}

func newFunction(name string, kind Kind, fn any) *Function {
	return &Function{Name: name, Kind: kind, Fn: fn}
}

// call invokes f.Fn with args (and ctx for closures), assuming it matches
// the arity/closure-ness implied by f.Kind. Any mismatch (a malformed host binding) yields NaN rather than
// a panic - runtime failures never propagate as errors, per spec.
func (f *Function) call(args []Scalar, ctx any) Scalar {
	a := f.Kind.Arity()
	if f.Kind.IsClosure() {
		switch a {
		case 0:
			if fn, ok := f.Fn.(ClosureFn0); ok {
				return fn(ctx)
			}
		case 1:
			if fn, ok := f.Fn.(ClosureFn1); ok {
				return fn(ctx, args[0])
			}
		case 2:
			if fn, ok := f.Fn.(ClosureFn2); ok {
				return fn(ctx, args[0], args[1])
			}
		case 3:
			if fn, ok := f.Fn.(ClosureFn3); ok {
				return fn(ctx, args[0], args[1], args[2])
			}
		case 4:
			if fn, ok := f.Fn.(ClosureFn4); ok {
				return fn(ctx, args[0], args[1], args[2], args[3])
			}
		case 5:
			if fn, ok := f.Fn.(ClosureFn5); ok {
				return fn(ctx, args[0], args[1], args[2], args[3], args[4])
			}
		case 6:
			if fn, ok := f.Fn.(ClosureFn6); ok {
				return fn(ctx, args[0], args[1], args[2], args[3], args[4], args[5])
			}
		case 7:
			if fn, ok := f.Fn.(ClosureFn7); ok {
				return fn(ctx, args[0], args[1], args[2], args[3], args[4], args[5], args[6])
			}
		}
		return NaN()
	}
	switch a {
	case 0:
		if fn, ok := f.Fn.(Func0); ok {
			return fn()
		}
	case 1:
		if fn, ok := f.Fn.(Func1); ok {
			return fn(args[0])
		}
	case 2:
		if fn, ok := f.Fn.(Func2); ok {
			return fn(args[0], args[1])
		}
	case 3:
		if fn, ok := f.Fn.(Func3); ok {
			return fn(args[0], args[1], args[2])
		}
	case 4:
		if fn, ok := f.Fn.(Func4); ok {
			return fn(args[0], args[1], args[2], args[3])
		}
	case 5:
		if fn, ok := f.Fn.(Func5); ok {
			return fn(args[0], args[1], args[2], args[3], args[4])
		}
	case 6:
		if fn, ok := f.Fn.(Func6); ok {
			return fn(args[0], args[1], args[2], args[3], args[4], args[5])
		}
	case 7:
		if fn, ok := f.Fn.(Func7); ok {
			return fn(args[0], args[1], args[2], args[3], args[4], args[5], args[6])
		}
	}
	return NaN()
}

// Binding is a caller-supplied entry in the host lookup table: a variable,
// a pure function, or a closure. Construct one with Var, FunctionN or
// ClosureN below.
type Binding struct {
	Name    string
	fn      *Function // nil for variables
	varAddr *Scalar   // nil for callables
	ctx     any       // only set for closures
}

// Var declares a host-bound scalar variable. addr must remain valid for the
// lifetime of any compiled handle that references it; the engine reads
// through it at evaluation time and writes through it for Assign
// statements.
func Var(name string, addr *Scalar) Binding {
	return Binding{Name: name, varAddr: addr}
}

// Function0..Function7 declare a pure host function of the given arity.
func Function0(name string, fn Func0) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction0.WithPure(), fn)} }
func Function1(name string, fn Func1) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction1.WithPure(), fn)} }
func Function2(name string, fn Func2) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction2.WithPure(), fn)} }
func Function3(name string, fn Func3) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction3.WithPure(), fn)} }
func Function4(name string, fn Func4) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction4.WithPure(), fn)} }
func Function5(name string, fn Func5) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction5.WithPure(), fn)} }
func Function6(name string, fn Func6) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction6.WithPure(), fn)} }
func Function7(name string, fn Func7) Binding { return Binding{Name: name, fn: newFunction(name, KindFunction7.WithPure(), fn)} }

// Closure0..Closure7 declare a closure of the given arity bound to ctx.
// ctx must be comparable (typically a pointer): it is interned into the
// address table under its own identity, separate from fn.
func Closure0(name string, fn ClosureFn0, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure0, fn), ctx: ctx} }
func Closure1(name string, fn ClosureFn1, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure1, fn), ctx: ctx} }
func Closure2(name string, fn ClosureFn2, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure2, fn), ctx: ctx} }
func Closure3(name string, fn ClosureFn3, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure3, fn), ctx: ctx} }
func Closure4(name string, fn ClosureFn4, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure4, fn), ctx: ctx} }
func Closure5(name string, fn ClosureFn5, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure5, fn), ctx: ctx} }
func Closure6(name string, fn ClosureFn6, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure6, fn), ctx: ctx} }
func Closure7(name string, fn ClosureFn7, ctx any) Binding { return Binding{Name: name, fn: newFunction(name, KindClosure7, fn), ctx: ctx} }

// Kind reports the binding's category (mirrors BuiltinKind in spec.md §3).
func (b Binding) Kind() Kind {
	if b.fn != nil {
		return b.fn.Kind
	}
	return KindVariable
}

// lookupTable is a linear-scan, caller-supplied symbol table. Per spec.md
// §4.1/§4.2 this is searched before the sorted builtin tables, and unlike
// them it is searched linearly since callers rarely register more than a
// handful of names.
type lookupTable []Binding

func (t lookupTable) find(name string) (Binding, bool) {
	for _, b := range t {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}
