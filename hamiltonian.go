// hamiltonian.go --  This file is part of TightBinding project.
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
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// HoppingTerm is one bilinear of the real-space Hamiltonian: an amplitude
// attached to an ordered (to, from) pair of sites.
type HoppingTerm struct {
	To, From  Site
	Amplitude Expr
}

// SitePair keys the hopping map. Duplicate pairs in the input overwrite
// earlier ones; last write wins.
type SitePair struct {
	To, From Site
}

type HoppingMap map[SitePair]Expr

// Hamiltonian is the assembled symbolic Bloch Hamiltonian: Crystal over
// the crystal-momentum variables k1..k_dim, Cartesian over kx..kz, both
// nsub × nsub with the (to, from) sublattice pair as the (row, column)
// index. Only entries reached by hopping terms are populated; the
// diagonalizer later treats the upper triangle as authoritative.
type Hamiltonian struct {
	Geometry  *ModelGeometry
	Crystal   [][]Expr
	Cartesian [][]Expr
	Hoppings  HoppingMap
}

// AssembleHamiltonian accumulates amp·exp(-i⟨Δr, k⟩) into the matrix entry
// of every hopping term, with Δr the crystal-coordinate displacement
// between the two absolute site positions, then derives the Cartesian
// companion by substituting k_crystal = U·k_cartesian with
// U = 2π·(reciprocal basis)⁻¹.
func AssembleHamiltonian(geom *ModelGeometry, terms []HoppingTerm) (*Hamiltonian, error) {
	dim := int(geom.Dim)

	hoppings := make(HoppingMap, len(terms))
	pairs := make([]SitePair, 0, len(terms))
	for _, t := range terms {
		if t.To.Sub < 1 || t.To.Sub > geom.NSub || t.From.Sub < 1 || t.From.Sub > geom.NSub {
			return nil, errors.Errorf("hopping term %v -> %v references a sublattice outside 1..%d",
				t.From, t.To, geom.NSub)
		}
		pair := SitePair{To: t.To, From: t.From}
		if _, seen := hoppings[pair]; !seen {
			pairs = append(pairs, pair)
		}
		hoppings[pair] = t.Amplitude
	}

	crystal := zeroExprMatrix(geom.NSub)
	for _, pair := range pairs {
		disp := displacement(pair.To, pair.From, geom)
		phaseTerms := make([]Expr, dim)
		for c := 0; c < dim; c++ {
			phaseTerms[c] = MulOf(N(disp[c]), S(crystalMomentumNames[c]))
		}
		phase := ExpOf(MulOf(C(-1i), AddOf(phaseTerms...)))
		row, col := pair.To.Sub-1, pair.From.Sub-1
		crystal[row][col] = AddOf(crystal[row][col], MulOf(hoppings[pair], phase))
	}

	cartesian, err := toCartesian(crystal, geom)
	if err != nil {
		return nil, err
	}

	return &Hamiltonian{
		Geometry:  geom,
		Crystal:   crystal,
		Cartesian: cartesian,
		Hoppings:  hoppings,
	}, nil
}

func displacement(to, from Site, geom *ModelGeometry) []float64 {
	a := SitePosition(to, geom.SublatticePositions, geom.Dim)
	b := SitePosition(from, geom.SublatticePositions, geom.Dim)
	d := make([]float64, len(a))
	for c := range a {
		d[c] = a[c] - b[c]
	}
	return d
}

// toCartesian substitutes k_crystal_i = Σ_j U[i][j]·k_cartesian_j into
// every matrix entry. U is solved from the dual-lattice relation: with the
// reciprocal vectors as matrix columns B, U = 2π·B⁻¹, which reduces to the
// row matrix of real-space basis vectors. The substitution stays symbolic.
func toCartesian(crystal [][]Expr, geom *ModelGeometry) ([][]Expr, error) {
	dim := int(geom.Dim)
	b := mat.NewDense(dim, dim, nil)
	for j, v := range geom.ReciprocalBasis {
		for i := 0; i < dim; i++ {
			b.Set(i, j, v[i])
		}
	}
	var u mat.Dense
	if err := u.Inverse(b); err != nil {
		return nil, errors.Wrap(err, "reciprocal basis is not invertible")
	}
	u.Scale(2*math.Pi, &u)

	subs := make([]Expr, dim)
	for i := 0; i < dim; i++ {
		row := make([]Expr, dim)
		for j := 0; j < dim; j++ {
			row[j] = MulOf(N(u.At(i, j)), S(cartesianMomentumNames[j]))
		}
		subs[i] = AddOf(row...)
	}

	cartesian := zeroExprMatrix(geom.NSub)
	for r := range crystal {
		for c := range crystal[r] {
			entry := crystal[r][c]
			for i := 0; i < dim; i++ {
				entry = entry.Sub(crystalMomentumNames[i], subs[i])
			}
			cartesian[r][c] = entry
		}
	}
	return cartesian, nil
}

func zeroExprMatrix(n int) [][]Expr {
	m := make([][]Expr, n)
	for i := range m {
		m[i] = make([]Expr, n)
		for j := range m[i] {
			m[i][j] = N(0)
		}
	}
	return m
}

// subMatrix substitutes one symbol in every entry.
func subMatrix(m [][]Expr, name string, value Expr) [][]Expr {
	out := make([][]Expr, len(m))
	for i := range m {
		out[i] = make([]Expr, len(m[i]))
		for j := range m[i] {
			out[i][j] = m[i][j].Sub(name, value)
		}
	}
	return out
}

// matrixFreeSymbols collects the free symbols of every entry.
func matrixFreeSymbols(m [][]Expr) map[string]struct{} {
	set := make(map[string]struct{})
	for i := range m {
		for j := range m[i] {
			m[i][j].FreeSymbols(set)
		}
	}
	return set
}
