// model.go --  This file is part of TightBinding project.
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
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// ParameterBinding assigns real numeric values to parameters by name.
type ParameterBinding map[string]float64

// NumericHopping is a hopping term with its amplitude evaluated under a
// binding.
type NumericHopping struct {
	To, From  Site
	Amplitude complex128
}

// ParametrizedModel is a Hamiltonian with all parameters bound. The
// retained symbolic matrices depend only on momentum variables, so the
// evaluator methods always reduce to numeric matrices.
type ParametrizedModel struct {
	Ham      *Hamiltonian
	Bindings ParameterBinding
	// CrystalSym and CartesianSym are the bound matrices, still symbolic
	// in k1..k_dim and kx..kz respectively.
	CrystalSym   [][]Expr
	CartesianSym [][]Expr
	// Hoppings holds the numeric hopping list in unspecified (map) order.
	Hoppings []NumericHopping
}

// BindParameters substitutes every bound parameter into both symbolic
// matrices. Any non-momentum symbol left free afterwards is fatal: no
// evaluator is produced and the offenders are reported.
func BindParameters(h *Hamiltonian, bindings ParameterBinding) (*ParametrizedModel, error) {
	crystal := h.Crystal
	cartesian := h.Cartesian
	for name, value := range bindings {
		crystal = subMatrix(crystal, name, N(value))
		cartesian = subMatrix(cartesian, name, N(value))
	}

	if offenders := nonMomentumSymbols(crystal, crystalMomentumNames); len(offenders) > 0 {
		return nil, &UnboundParameterError{Symbols: offenders}
	}
	if offenders := nonMomentumSymbols(cartesian, cartesianMomentumNames); len(offenders) > 0 {
		return nil, &UnboundParameterError{Symbols: offenders}
	}

	hoppings := make([]NumericHopping, 0, len(h.Hoppings))
	for pair, amp := range h.Hoppings {
		bound := amp
		for name, value := range bindings {
			bound = bound.Sub(name, N(value))
		}
		v, ok := bound.Eval()
		if !ok {
			return nil, &NonNumericEvaluationError{Row: pair.To.Sub - 1, Col: pair.From.Sub - 1, Entry: bound.String()}
		}
		hoppings = append(hoppings, NumericHopping{To: pair.To, From: pair.From, Amplitude: v})
	}

	return &ParametrizedModel{
		Ham:          h,
		Bindings:     bindings,
		CrystalSym:   crystal,
		CartesianSym: cartesian,
		Hoppings:     hoppings,
	}, nil
}

func nonMomentumSymbols(m [][]Expr, momentum [3]string) []string {
	free := matrixFreeSymbols(m)
	offenders := make([]string, 0)
	for name := range free {
		if !slices.Contains(momentum[:], name) {
			offenders = append(offenders, name)
		}
	}
	slices.Sort(offenders)
	return offenders
}

// HkCrystal evaluates the bound Hamiltonian at a crystal momentum, one
// component per model dimension.
func (m *ParametrizedModel) HkCrystal(k ...float64) (*mat.CDense, error) {
	return m.evaluate(m.CrystalSym, crystalMomentumNames, k)
}

// HkCartesian evaluates the bound Hamiltonian at a Cartesian momentum.
func (m *ParametrizedModel) HkCartesian(k ...float64) (*mat.CDense, error) {
	return m.evaluate(m.CartesianSym, cartesianMomentumNames, k)
}

func (m *ParametrizedModel) evaluate(sym [][]Expr, names [3]string, k []float64) (*mat.CDense, error) {
	geom := m.Ham.Geometry
	if len(k) != int(geom.Dim) {
		return nil, errors.Errorf("momentum has %d components, model dimension is %d", len(k), geom.Dim)
	}
	out := mat.NewCDense(geom.NSub, geom.NSub, nil)
	for i := 0; i < geom.NSub; i++ {
		for j := 0; j < geom.NSub; j++ {
			entry := sym[i][j]
			for c := range k {
				entry = entry.Sub(names[c], N(k[c]))
			}
			v, ok := entry.Eval()
			if !ok {
				return nil, &NonNumericEvaluationError{Row: i, Col: j, Entry: entry.String()}
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// NSub returns the sublattice count of the underlying geometry.
func (m *ParametrizedModel) NSub() int { return m.Ham.Geometry.NSub }

// Dim returns the dimension of the underlying geometry.
func (m *ParametrizedModel) Dim() Dimension { return m.Ham.Geometry.Dim }
