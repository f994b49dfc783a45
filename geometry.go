// geometry.go --  This file is part of TightBinding project.
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
	"golang.org/x/exp/slices"
)

// Dimension tags the spatial dimension of a model. Only Dim2 and Dim3 are
// valid; construction rejects everything else before any assembly runs.
type Dimension int

const (
	Dim2 Dimension = 2
	Dim3 Dimension = 3
)

// Momentum variable names are reserved and may not be used as parameters.
var (
	crystalMomentumNames   = [3]string{"k1", "k2", "k3"}
	cartesianMomentumNames = [3]string{"kx", "ky", "kz"}
)

// ModelSpec is the structured input record handed over by an external
// reader. Field identities follow the model-definition file layout.
type ModelSpec struct {
	Name                string
	ParameterNames      []string
	BasisVectors        [][]float64
	SublatticePositions [][]float64
	AtomNames           []string
}

// Site labels a lattice site by its unit-cell offset relative to a
// reference cell plus a 1-based sublattice index. The third offset
// component is unused for 2D models.
type Site struct {
	Offset [3]int
	Sub    int
}

// ModelGeometry holds the real-space lattice data together with the
// derived reciprocal basis and the parameter symbol table.
type ModelGeometry struct {
	Name                string
	Dim                 Dimension
	NSub                int
	BasisVectors        [][]float64
	SublatticePositions [][]float64
	AtomNames           []string
	// AtomNamesNormalized reports that the input name list length did not
	// match NSub and was replaced with empty strings.
	AtomNamesNormalized bool
	UnitCellVolume      float64
	ReciprocalBasis     [][]float64
	Symbols             *SymbolTable
}

// BuildGeometry validates a model spec and derives the unit-cell volume
// and reciprocal basis. The atom-name list is the only field that is
// normalized rather than rejected on mismatch.
func BuildGeometry(spec ModelSpec) (*ModelGeometry, error) {
	dim := Dimension(len(spec.BasisVectors))
	switch dim {
	case Dim2, Dim3:
	default:
		return nil, &DimensionError{Dim: int(dim)}
	}
	for i, v := range spec.BasisVectors {
		if len(v) != int(dim) {
			return nil, errors.Errorf("basis vector %d has %d components, want %d", i+1, len(v), dim)
		}
	}
	nsub := len(spec.SublatticePositions)
	if nsub < 1 {
		return nil, errors.New("model needs at least one sublattice position")
	}
	for i, v := range spec.SublatticePositions {
		if len(v) != int(dim) {
			return nil, errors.Errorf("sublattice position %d has %d components, want %d", i+1, len(v), dim)
		}
	}
	for _, name := range spec.ParameterNames {
		if slices.Contains(crystalMomentumNames[:], name) || slices.Contains(cartesianMomentumNames[:], name) {
			return nil, errors.Errorf("parameter name %q is reserved for momentum variables", name)
		}
	}

	recip, vol, err := ReciprocalVectors(spec.BasisVectors, dim)
	if err != nil {
		return nil, err
	}

	atomNames := spec.AtomNames
	normalized := false
	if len(atomNames) != nsub {
		WarningLogger.Print("Atom name list has ", len(atomNames), " entries but the model has ", nsub,
			" sublattices. Using empty names.")
		atomNames = make([]string, nsub)
		normalized = true
	}

	table := NewSymbolTable()
	for _, name := range spec.ParameterNames {
		table.GetOrCreate(name)
	}

	return &ModelGeometry{
		Name:                spec.Name,
		Dim:                 dim,
		NSub:                nsub,
		BasisVectors:        spec.BasisVectors,
		SublatticePositions: spec.SublatticePositions,
		AtomNames:           atomNames,
		AtomNamesNormalized: normalized,
		UnitCellVolume:      vol,
		ReciprocalBasis:     recip,
		Symbols:             table,
	}, nil
}

// ReciprocalVectors computes the dual lattice basis scaled by 2π, together
// with the unit-cell volume. For Dim3 the cyclic cross-product formula
// b_i = 2π (a_{i+1} × a_{i+2}) / V applies directly; for Dim2 both basis
// vectors are embedded into 3D with a zero third coordinate, a synthetic
// unit z-axis closes the triple, and the first two results are truncated
// back to two components.
func ReciprocalVectors(basis [][]float64, dim Dimension) ([][]float64, float64, error) {
	switch dim {
	case Dim3:
		vol := dot3(basis[0], cross3(basis[1], basis[2]))
		if math.Abs(vol) < volumeTol {
			return nil, 0, &DegenerateGeometryError{Volume: vol}
		}
		recip := make([][]float64, 3)
		for i := 0; i < 3; i++ {
			c := cross3(basis[(i+1)%3], basis[(i+2)%3])
			recip[i] = []float64{2 * math.Pi * c[0] / vol, 2 * math.Pi * c[1] / vol, 2 * math.Pi * c[2] / vol}
		}
		return recip, vol, nil
	case Dim2:
		embedded := [][]float64{
			{basis[0][0], basis[0][1], 0},
			{basis[1][0], basis[1][1], 0},
			{0, 0, 1},
		}
		recip3, vol, err := ReciprocalVectors(embedded, Dim3)
		if err != nil {
			return nil, 0, err
		}
		return [][]float64{recip3[0][:2], recip3[1][:2]}, vol, nil
	default:
		return nil, 0, &DimensionError{Dim: int(dim)}
	}
}

const volumeTol = 1e-12

// SitePosition returns the crystal-coordinate position of a site: the
// integer unit-cell offset plus the intra-cell sublattice offset,
// truncated to dim components.
func SitePosition(site Site, sublatticePositions [][]float64, dim Dimension) []float64 {
	pos := make([]float64, dim)
	sub := sublatticePositions[site.Sub-1]
	for c := 0; c < int(dim); c++ {
		pos[c] = float64(site.Offset[c]) + sub[c]
	}
	return pos
}
