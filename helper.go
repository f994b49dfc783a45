// helper.go --  This file is part of TightBinding project.
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
	"math"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func flatten(arr [][]float64) []float64 {
	dim := len(arr)
	res := make([]float64, dim*dim)
	for i := range arr {
		for j := range arr[i] {
			res[i*dim+j] = arr[i][j]
		}
	}
	return res
}

// hermTol bounds the imaginary part tolerated on diagonal entries.
const hermTol = 1e-9

// hermitianEigen diagonalizes a complex Hermitian matrix. The upper
// triangle is authoritative; the lower triangle is never read. H = A + iB
// is embedded as the real symmetric 2n×2n block matrix [[A, -B], [B, A]],
// whose spectrum is that of H with every eigenvalue doubled, and the
// doubled pairs are folded back into n ascending eigenvalues with
// eigenvectors x + iy.
func hermitianEigen(h *mat.CDense) ([]float64, [][]complex128, error) {
	n, cols := h.Dims()
	if n != cols {
		return nil, nil, errors.Errorf("matrix is %dx%d, want square", n, cols)
	}

	m := make([][]float64, 2*n)
	for i := range m {
		m[i] = make([]float64, 2*n)
	}
	for i := 0; i < n; i++ {
		if im := imag(h.At(i, i)); math.Abs(im) > hermTol {
			return nil, nil, errors.Errorf("diagonal entry %d has imaginary part %g", i, im)
		}
		for j := i; j < n; j++ {
			v := h.At(i, j)
			a, b := real(v), imag(v)
			if i == j {
				b = 0
			}
			m[i][j], m[j][i] = a, a
			m[n+i][n+j], m[n+j][n+i] = a, a
			m[i][n+j], m[j][n+i] = -b, b
			m[n+i][j], m[n+j][i] = b, -b
		}
	}

	sym := mat.NewSymDense(2*n, flatten(m))
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(sym, true); !ok {
		return nil, nil, errors.New("eigendecomposition failed")
	}
	allVals := eigsym.Values(nil)
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	vals := make([]float64, n)
	vecs := make([][]complex128, n)
	for p := 0; p < n; p++ {
		col := 2 * p
		vals[p] = allVals[col]
		v := make([]complex128, n)
		norm := 0.0
		for c := 0; c < n; c++ {
			v[c] = complex(ev.At(c, col), ev.At(n+c, col))
			norm += real(v[c])*real(v[c]) + imag(v[c])*imag(v[c])
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for c := range v {
				v[c] /= complex(norm, 0)
			}
		}
		vecs[p] = v
	}
	return vals, vecs, nil
}

// FormatCDense renders a complex matrix with fixed-width entries.
func FormatCDense(h *mat.CDense) string {
	rows, cols := h.Dims()
	var ftext string
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := h.At(i, j)
			ftext += fmt.Sprintf("  %10.6f%+10.6fi", real(v), imag(v))
		}
		ftext += "\n"
	}
	return ftext
}

func PrintCDense(h *mat.CDense) {
	fmt.Print(FormatCDense(h))
}

// FormatSymbolic renders a symbolic matrix row by row.
func FormatSymbolic(m [][]Expr) string {
	var ftext string
	for i := range m {
		for j := range m[i] {
			if j > 0 {
				ftext += "    "
			}
			ftext += m[i][j].String()
		}
		ftext += "\n"
	}
	return ftext
}

// WriteSpectrum dumps the per-state eigenvalues of a sample as
// fixed-width text columns (i, j, k, sublattice, energy).
func WriteSpectrum(s *Sample, fname string) error {
	var ftext string
	for _, st := range s.States {
		ftext += fmt.Sprintf("%6d%6d%6d%6d%16.8f\n", st.I, st.J, st.K, st.Sub, s.Eigenvalues[st])
	}
	return os.WriteFile(fname, []byte(ftext), 0644)
}
