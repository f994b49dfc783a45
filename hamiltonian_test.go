// hamiltonian_test.go --  This file is part of TightBinding project.
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
package tightbinding_test

import (
	"math"
	"math/cmplx"
	"testing"

	tb "github.com/xiaodong-hu/TightBinding"
)

func mustGeometry(t *testing.T, spec tb.ModelSpec) *tb.ModelGeometry {
	t.Helper()
	geom, err := tb.BuildGeometry(spec)
	if err != nil {
		t.Fatalf("BuildGeometry error: %v", err)
	}
	return geom
}

func mustHamiltonian(t *testing.T, spec tb.ModelSpec, terms []tb.HoppingTerm) *tb.Hamiltonian {
	t.Helper()
	ham, err := tb.AssembleHamiltonian(mustGeometry(t, spec), terms)
	if err != nil {
		t.Fatalf("AssembleHamiltonian error: %v", err)
	}
	return ham
}

// TestAssemble_Deterministic runs the assembly twice on identical input
// and compares every entry.
func TestAssemble_Deterministic(t *testing.T) {
	spec, terms := tb.GrapheneSpec()
	h1 := mustHamiltonian(t, spec, terms)
	h2 := mustHamiltonian(t, spec, terms)
	for i := range h1.Crystal {
		for j := range h1.Crystal[i] {
			if !h1.Crystal[i][j].Equal(h2.Crystal[i][j]) {
				t.Errorf("Crystal[%d][%d] differs: %s vs %s", i, j, h1.Crystal[i][j], h2.Crystal[i][j])
			}
			if !h1.Cartesian[i][j].Equal(h2.Cartesian[i][j]) {
				t.Errorf("Cartesian[%d][%d] differs: %s vs %s", i, j, h1.Cartesian[i][j], h2.Cartesian[i][j])
			}
		}
	}
}

// TestAssemble_OnSiteOnly checks that an on-site-only model reduces to
// the sum of its amplitudes, momentum dropping out entirely.
func TestAssemble_OnSiteOnly(t *testing.T) {
	spec := tb.ModelSpec{
		Name:                "onsite",
		ParameterNames:      []string{"mu", "nu"},
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
		AtomNames:           []string{"A"},
	}
	home := tb.Site{Sub: 1}
	ham := mustHamiltonian(t, spec, []tb.HoppingTerm{
		{To: home, From: home, Amplitude: tb.S("mu")},
	})
	names := tb.FreeSymbolNames(ham.Crystal[0][0])
	if len(names) != 1 || names[0] != "mu" {
		t.Errorf("on-site entry has free symbols %v, want [mu]", names)
	}

	model, err := tb.BindParameters(ham, tb.ParameterBinding{"mu": 2.5})
	if err != nil {
		t.Fatalf("BindParameters error: %v", err)
	}
	h0, err := model.HkCrystal(0, 0)
	if err != nil {
		t.Fatalf("HkCrystal error: %v", err)
	}
	if cmplx.Abs(h0.At(0, 0)-2.5) > 1e-12 {
		t.Errorf("H(0) = %v, want 2.5", h0.At(0, 0))
	}
}

// TestAssemble_LastWriteWins documents the duplicate-key semantics of the
// hopping map.
func TestAssemble_LastWriteWins(t *testing.T) {
	spec := tb.ModelSpec{
		Name:                "dup",
		ParameterNames:      []string{"mu"},
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
		AtomNames:           []string{"A"},
	}
	home := tb.Site{Sub: 1}
	ham := mustHamiltonian(t, spec, []tb.HoppingTerm{
		{To: home, From: home, Amplitude: tb.S("mu")},
		{To: home, From: home, Amplitude: tb.N(7)},
	})
	if len(ham.Hoppings) != 1 {
		t.Fatalf("hopping map has %d entries, want 1", len(ham.Hoppings))
	}
	v, ok := ham.Crystal[0][0].Eval()
	if !ok || cmplx.Abs(v-7) > 1e-12 {
		t.Errorf("surviving entry = %s, want 7", ham.Crystal[0][0])
	}
}

// TestAssemble_CartesianSquare exploits the identity basis: the
// crystal→Cartesian map is the identity there, so both matrices must
// evaluate identically.
func TestAssemble_CartesianSquare(t *testing.T) {
	spec, terms := tb.SquareLatticeSpec()
	ham := mustHamiltonian(t, spec, terms)
	model, err := tb.BindParameters(ham, tb.ParameterBinding{"t": 1, "mu": 0.5})
	if err != nil {
		t.Fatalf("BindParameters error: %v", err)
	}
	ks := [][2]float64{{0, 0}, {math.Pi / 3, -math.Pi / 5}, {1.1, 2.2}}
	for _, k := range ks {
		hc, err := model.HkCrystal(k[0], k[1])
		if err != nil {
			t.Fatalf("HkCrystal error: %v", err)
		}
		hx, err := model.HkCartesian(k[0], k[1])
		if err != nil {
			t.Fatalf("HkCartesian error: %v", err)
		}
		if cmplx.Abs(hc.At(0, 0)-hx.At(0, 0)) > 1e-9 {
			t.Errorf("k = %v: crystal %v vs cartesian %v", k, hc.At(0, 0), hx.At(0, 0))
		}
	}
}

func TestAssemble_SublatticeOutOfRange(t *testing.T) {
	spec := tb.ModelSpec{
		Name:                "bad",
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
		AtomNames:           []string{"A"},
	}
	geom := mustGeometry(t, spec)
	_, err := tb.AssembleHamiltonian(geom, []tb.HoppingTerm{
		{To: tb.Site{Sub: 1}, From: tb.Site{Sub: 2}, Amplitude: tb.N(1)},
	})
	if err == nil {
		t.Fatal("sublattice index 2 of 1 must be rejected")
	}
}
