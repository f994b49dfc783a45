// presets.go --  This file is part of TightBinding project.
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

import "math"

// SquareLatticeSpec returns a 2D square lattice with one sublattice, an
// on-site energy mu and nearest-neighbor hopping of amplitude -t, giving
// the dispersion mu - 2t(cos k1 + cos k2).
func SquareLatticeSpec() (ModelSpec, []HoppingTerm) {
	spec := ModelSpec{
		Name:                "square",
		ParameterNames:      []string{"t", "mu"},
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
		AtomNames:           []string{"A"},
	}
	home := Site{Sub: 1}
	hop := MulOf(N(-1), S("t"))
	terms := []HoppingTerm{
		{To: home, From: home, Amplitude: S("mu")},
		{To: home, From: Site{Offset: [3]int{1, 0, 0}, Sub: 1}, Amplitude: hop},
		{To: home, From: Site{Offset: [3]int{-1, 0, 0}, Sub: 1}, Amplitude: hop},
		{To: home, From: Site{Offset: [3]int{0, 1, 0}, Sub: 1}, Amplitude: hop},
		{To: home, From: Site{Offset: [3]int{0, -1, 0}, Sub: 1}, Amplitude: hop},
	}
	return spec, terms
}

// GrapheneSpec returns the honeycomb lattice with two sublattices and
// nearest-neighbor hopping t. Only the upper-triangle (A, B) terms are
// listed; the diagonalizer supplies the conjugates.
func GrapheneSpec() (ModelSpec, []HoppingTerm) {
	spec := ModelSpec{
		Name:                "graphene",
		ParameterNames:      []string{"t"},
		BasisVectors:        [][]float64{{1, 0}, {0.5, math.Sqrt(3) / 2}},
		SublatticePositions: [][]float64{{0, 0}, {1.0 / 3, 1.0 / 3}},
		AtomNames:           []string{"C", "C"},
	}
	a := Site{Sub: 1}
	terms := []HoppingTerm{
		{To: a, From: Site{Offset: [3]int{0, 0, 0}, Sub: 2}, Amplitude: S("t")},
		{To: a, From: Site{Offset: [3]int{-1, 0, 0}, Sub: 2}, Amplitude: S("t")},
		{To: a, From: Site{Offset: [3]int{0, -1, 0}, Sub: 2}, Amplitude: S("t")},
	}
	return spec, terms
}
