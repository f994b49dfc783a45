// errors.go --  This file is part of TightBinding project.
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
	"strings"
)

// DimensionError reports a model dimension outside {2, 3}.
type DimensionError struct {
	Dim int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("tightbinding: unsupported dimension %d, want 2 or 3", e.Dim)
}

// DegenerateGeometryError reports a basis with vanishing unit-cell volume.
type DegenerateGeometryError struct {
	Volume float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("tightbinding: degenerate basis, unit-cell volume %g", e.Volume)
}

// UnboundParameterError reports parameters still symbolic after binding.
type UnboundParameterError struct {
	Symbols []string
}

func (e *UnboundParameterError) Error() string {
	return "tightbinding: unbound parameters after substitution: " + strings.Join(e.Symbols, ", ")
}

// NonNumericEvaluationError reports a Hamiltonian entry that did not reduce
// to a complex number after momentum substitution.
type NonNumericEvaluationError struct {
	Row, Col int
	Entry    string
}

func (e *NonNumericEvaluationError) Error() string {
	return fmt.Sprintf("tightbinding: entry [%d,%d] = %s is not numeric", e.Row, e.Col, e.Entry)
}

// InvalidSampleSizeError reports a non-positive lattice extent.
type InvalidSampleSizeError struct {
	Size [3]int
}

func (e *InvalidSampleSizeError) Error() string {
	return fmt.Sprintf("tightbinding: sample size %v must be positive in every direction", e.Size)
}
