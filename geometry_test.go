// geometry_test.go --  This file is part of TightBinding project.
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
	"errors"
	"math"
	"testing"

	tb "github.com/xiaodong-hu/TightBinding"
)

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// TestReciprocalVectors_Duality checks b_i · a_j = 2π·δ_ij for a skewed
// 3D basis.
func TestReciprocalVectors_Duality(t *testing.T) {
	basis := [][]float64{
		{1, 0, 0},
		{0.3, 2, 0},
		{0.5, -0.7, 3},
	}
	recip, vol, err := tb.ReciprocalVectors(basis, tb.Dim3)
	if err != nil {
		t.Fatalf("ReciprocalVectors error: %v", err)
	}
	if math.Abs(vol-6) > 1e-12 {
		t.Errorf("volume = %g, want 6", vol)
	}
	for i := range recip {
		for j := range basis {
			want := 0.0
			if i == j {
				want = 2 * math.Pi
			}
			if got := dot(recip[i], basis[j]); math.Abs(got-want) > 1e-12 {
				t.Errorf("b_%d · a_%d = %g, want %g", i+1, j+1, got, want)
			}
		}
	}
}

// TestReciprocalVectors_2DMatches3D checks that the 2D path agrees with
// the 3D formula applied to the unit-z embedding.
func TestReciprocalVectors_2DMatches3D(t *testing.T) {
	basis2 := [][]float64{{1, 0}, {0.5, 1.2}}
	recip2, vol2, err := tb.ReciprocalVectors(basis2, tb.Dim2)
	if err != nil {
		t.Fatalf("2D ReciprocalVectors error: %v", err)
	}

	embedded := [][]float64{{1, 0, 0}, {0.5, 1.2, 0}, {0, 0, 1}}
	recip3, vol3, err := tb.ReciprocalVectors(embedded, tb.Dim3)
	if err != nil {
		t.Fatalf("3D ReciprocalVectors error: %v", err)
	}

	if math.Abs(vol2-vol3) > 1e-12 {
		t.Errorf("volumes differ: %g vs %g", vol2, vol3)
	}
	for i := 0; i < 2; i++ {
		for c := 0; c < 2; c++ {
			if math.Abs(recip2[i][c]-recip3[i][c]) > 1e-12 {
				t.Errorf("b_%d[%d] = %g, 3D embedding gives %g", i+1, c, recip2[i][c], recip3[i][c])
			}
		}
	}
}

func TestReciprocalVectors_Degenerate(t *testing.T) {
	basis := [][]float64{{1, 0}, {2, 0}}
	_, _, err := tb.ReciprocalVectors(basis, tb.Dim2)
	var degenerate *tb.DegenerateGeometryError
	if !errors.As(err, &degenerate) {
		t.Fatalf("colinear basis: got %v, want DegenerateGeometryError", err)
	}
}

func TestBuildGeometry_DimensionError(t *testing.T) {
	for _, nvec := range []int{1, 4} {
		basis := make([][]float64, nvec)
		for i := range basis {
			basis[i] = make([]float64, nvec)
			basis[i][i] = 1
		}
		_, err := tb.BuildGeometry(tb.ModelSpec{
			BasisVectors:        basis,
			SublatticePositions: [][]float64{make([]float64, nvec)},
		})
		var dimErr *tb.DimensionError
		if !errors.As(err, &dimErr) {
			t.Fatalf("dim %d: got %v, want DimensionError", nvec, err)
		}
		if dimErr.Dim != nvec {
			t.Errorf("DimensionError.Dim = %d, want %d", dimErr.Dim, nvec)
		}
	}
}

func TestBuildGeometry_AtomNameNormalization(t *testing.T) {
	geom, err := tb.BuildGeometry(tb.ModelSpec{
		Name:                "square",
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
		AtomNames:           []string{"A", "B", "C"},
	})
	if err != nil {
		t.Fatalf("BuildGeometry error: %v", err)
	}
	if !geom.AtomNamesNormalized {
		t.Error("normalization flag should be set")
	}
	if len(geom.AtomNames) != 1 || geom.AtomNames[0] != "" {
		t.Errorf("atom names = %v, want one empty string", geom.AtomNames)
	}
}

func TestBuildGeometry_ReservedParameter(t *testing.T) {
	_, err := tb.BuildGeometry(tb.ModelSpec{
		ParameterNames:      []string{"k1"},
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
	})
	if err == nil {
		t.Fatal("momentum variable name as parameter must be rejected")
	}
}

func TestBuildGeometry_RegistersParameters(t *testing.T) {
	geom, err := tb.BuildGeometry(tb.ModelSpec{
		ParameterNames:      []string{"t", "mu", "t"},
		BasisVectors:        [][]float64{{1, 0}, {0, 1}},
		SublatticePositions: [][]float64{{0, 0}},
		AtomNames:           []string{"A"},
	})
	if err != nil {
		t.Fatalf("BuildGeometry error: %v", err)
	}
	if geom.Symbols.Len() != 2 {
		t.Errorf("symbol table has %d entries, want 2 (re-registration is idempotent)", geom.Symbols.Len())
	}
}

func TestSitePosition(t *testing.T) {
	subpos := [][]float64{{0, 0}, {1.0 / 3, 1.0 / 3}}
	pos := tb.SitePosition(tb.Site{Offset: [3]int{2, -1, 0}, Sub: 2}, subpos, tb.Dim2)
	want := []float64{2 + 1.0/3, -1 + 1.0/3}
	if len(pos) != 2 {
		t.Fatalf("2D position has %d components", len(pos))
	}
	for c := range want {
		if math.Abs(pos[c]-want[c]) > 1e-12 {
			t.Errorf("pos[%d] = %g, want %g", c, pos[c], want[c])
		}
	}
}
