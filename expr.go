// expr.go --  This file is part of TightBinding project.
//
//	TightBinding is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package tightbinding

import (
	"fmt"
	"math/cmplx"
	"strings"

	"golang.org/x/exp/slices"
)

// Expr is a symbolic scalar over the complex numbers. The node set is the
// minimum needed for Bloch Hamiltonians: named unknowns, sums, products,
// the complex exponential and complex conjugation. Constructors simplify
// on the way in, so numeric subtrees fold into a single Num.
type Expr interface {
	Simplify() Expr
	// Sub replaces every occurrence of the named symbol with value.
	Sub(name string, value Expr) Expr
	// Eval reduces the expression to a complex number, reporting false
	// when free symbols remain.
	Eval() (complex128, bool)
	// FreeSymbols adds the names of all unbound symbols to set.
	FreeSymbols(set map[string]struct{})
	Equal(other Expr) bool
	String() string
}

// FreeSymbolNames returns the sorted free symbols of e.
func FreeSymbolNames(e Expr) []string {
	set := make(map[string]struct{})
	e.FreeSymbols(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ------------------------------------------------
// Num -- complex constant
// ------------------------------------------------

type Num struct{ val complex128 }

func N(v float64) *Num    { return &Num{val: complex(v, 0)} }
func C(v complex128) *Num { return &Num{val: v} }

func (n *Num) Simplify() Expr                  { return n }
func (n *Num) Sub(string, Expr) Expr           { return n }
func (n *Num) Eval() (complex128, bool)        { return n.val, true }
func (n *Num) FreeSymbols(map[string]struct{}) {}
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val == o.val
}
func (n *Num) Value() complex128 { return n.val }
func (n *Num) IsZero() bool      { return n.val == 0 }
func (n *Num) IsOne() bool       { return n.val == 1 }

func (n *Num) String() string {
	re, im := real(n.val), imag(n.val)
	switch {
	case im == 0:
		return fmt.Sprintf("%g", re)
	case re == 0:
		return fmt.Sprintf("%gi", im)
	default:
		return fmt.Sprintf("(%g%+gi)", re, im)
	}
}

// ------------------------------------------------
// Sym -- named unknown
// ------------------------------------------------

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr           { return s }
func (s *Sym) Eval() (complex128, bool) { return 0, false }
func (s *Sym) Name() string             { return s.name }
func (s *Sym) String() string           { return s.name }

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) FreeSymbols(set map[string]struct{}) { set[s.name] = struct{}{} }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

// ------------------------------------------------
// Add -- sum of terms
// ------------------------------------------------

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	var numAccum complex128
	others := make([]Expr, 0, len(flat))
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum += v.val
		} else {
			others = append(others, t)
		}
	}
	if numAccum != 0 {
		others = append(others, C(numAccum))
	}
	if len(others) == 0 {
		return N(0)
	}
	if len(others) == 1 {
		return others[0]
	}
	return &Add{terms: others}
}

func (a *Add) Sub(name string, value Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Sub(name, value)
	}
	return AddOf(terms...)
}

func (a *Add) Eval() (complex128, bool) {
	var acc complex128
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return 0, false
		}
		acc += v
	}
	return acc, true
}

func (a *Add) FreeSymbols(set map[string]struct{}) {
	for _, t := range a.terms {
		t.FreeSymbols(set)
	}
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

// ------------------------------------------------
// Mul -- product of factors
// ------------------------------------------------

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := complex128(1)
	others := make([]Expr, 0, len(flat))
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff *= v.val
		} else {
			others = append(others, f)
		}
	}
	if coeff == 0 {
		return N(0)
	}
	if len(others) == 0 {
		return C(coeff)
	}
	if coeff != 1 {
		others = append([]Expr{C(coeff)}, others...)
	}
	if len(others) == 1 {
		return others[0]
	}
	return &Mul{factors: others}
}

func (m *Mul) Sub(name string, value Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Sub(name, value)
	}
	return MulOf(factors...)
}

func (m *Mul) Eval() (complex128, bool) {
	acc := complex128(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return acc, true
}

func (m *Mul) FreeSymbols(set map[string]struct{}) {
	for _, f := range m.factors {
		f.FreeSymbols(set)
	}
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

// ------------------------------------------------
// ExpFn -- complex exponential
// ------------------------------------------------

type ExpFn struct{ arg Expr }

func ExpOf(arg Expr) Expr {
	a := arg.Simplify()
	if n, ok := a.(*Num); ok {
		return C(cmplx.Exp(n.val))
	}
	return &ExpFn{arg: a}
}

func (e *ExpFn) Simplify() Expr { return e }

func (e *ExpFn) Sub(name string, value Expr) Expr {
	return ExpOf(e.arg.Sub(name, value))
}

func (e *ExpFn) Eval() (complex128, bool) {
	v, ok := e.arg.Eval()
	if !ok {
		return 0, false
	}
	return cmplx.Exp(v), true
}

func (e *ExpFn) FreeSymbols(set map[string]struct{}) { e.arg.FreeSymbols(set) }

func (e *ExpFn) Equal(other Expr) bool {
	o, ok := other.(*ExpFn)
	return ok && e.arg.Equal(o.arg)
}

func (e *ExpFn) Arg() Expr     { return e.arg }
func (e *ExpFn) String() string { return "exp(" + e.arg.String() + ")" }

// ------------------------------------------------
// Conj -- complex conjugation
// ------------------------------------------------

type Conj struct{ arg Expr }

func ConjOf(arg Expr) Expr {
	a := arg.Simplify()
	switch v := a.(type) {
	case *Num:
		return C(cmplx.Conj(v.val))
	case *Conj:
		return v.arg
	}
	return &Conj{arg: a}
}

func (c *Conj) Simplify() Expr { return c }

func (c *Conj) Sub(name string, value Expr) Expr {
	return ConjOf(c.arg.Sub(name, value))
}

func (c *Conj) Eval() (complex128, bool) {
	v, ok := c.arg.Eval()
	if !ok {
		return 0, false
	}
	return cmplx.Conj(v), true
}

func (c *Conj) FreeSymbols(set map[string]struct{}) { c.arg.FreeSymbols(set) }

func (c *Conj) Equal(other Expr) bool {
	o, ok := other.(*Conj)
	return ok && c.arg.Equal(o.arg)
}

func (c *Conj) String() string { return "conj(" + c.arg.String() + ")" }
