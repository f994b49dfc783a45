// sample.go --  This file is part of TightBinding project.
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
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// State labels one lattice site of a finite sample: 1-based unit-cell
// indices and a 1-based sublattice index.
type State struct {
	I, J, K int
	Sub     int
}

// Sample is a finite-lattice realization of a parametrized model. It is
// built once and immutable afterwards. Temperature is stored for
// downstream consumers; the pipeline itself does not use it.
type Sample struct {
	Name        string
	Size        [3]int
	Flux        [3]float64
	Temperature float64

	// States enumerates all Lx·Ly·Lz·nsub sites in momentum-enumeration
	// order, sublattice fastest.
	States       []State
	Positions    map[State][]float64
	Momenta      map[State][3]float64
	Eigenvalues  map[State]float64
	Eigenvectors map[State][]complex128
}

// kPoint is one distinct crystal momentum shared by nsub states.
type kPoint struct {
	i, j, k int
	kvec    [3]float64
}

type eigResult struct {
	vals []float64
	vecs [][]complex128
}

// GenerateSample enumerates every state of the finite lattice, evaluates
// the bound Hamiltonian once per distinct momentum, diagonalizes it, and
// assigns the sub-th ascending eigenpair to the state with sublattice
// label sub. Any evaluation or decomposition failure aborts the whole
// construction; a partial sample is never returned.
//
// The momentum of state (i,j,k) has components ((idx-1)·2π + flux_c)/L_c
// in all three directions; 2D models keep Lz = 1 by convention and never
// fold the k index into positions.
func GenerateSample(m *ParametrizedModel, size [3]int, flux [3]float64, temperature float64) (*Sample, error) {
	if size[0] < 1 || size[1] < 1 || size[2] < 1 {
		return nil, &InvalidSampleSizeError{Size: size}
	}
	geom := m.Ham.Geometry
	if geom.Dim == Dim2 && size[2] != 1 {
		WarningLogger.Print("2D model with Lz = ", size[2], "; the convention is Lz = 1.")
	}

	points := make([]kPoint, 0, size[0]*size[1]*size[2])
	for i := 1; i <= size[0]; i++ {
		for j := 1; j <= size[1]; j++ {
			for k := 1; k <= size[2]; k++ {
				points = append(points, kPoint{i: i, j: j, k: k, kvec: [3]float64{
					(float64(i-1)*2*math.Pi + flux[0]) / float64(size[0]),
					(float64(j-1)*2*math.Pi + flux[1]) / float64(size[1]),
					(float64(k-1)*2*math.Pi + flux[2]) / float64(size[2]),
				}})
			}
		}
	}

	results := make([]eigResult, len(points))
	if err := m.diagonalizeAll(points, results); err != nil {
		return nil, err
	}

	total := len(points) * geom.NSub
	s := &Sample{
		Name:         geom.Name,
		Size:         size,
		Flux:         flux,
		Temperature:  temperature,
		States:       make([]State, 0, total),
		Positions:    make(map[State][]float64, total),
		Momenta:      make(map[State][3]float64, total),
		Eigenvalues:  make(map[State]float64, total),
		Eigenvectors: make(map[State][]complex128, total),
	}
	for p, pt := range points {
		for sub := 1; sub <= geom.NSub; sub++ {
			st := State{I: pt.i, J: pt.j, K: pt.k, Sub: sub}
			site := Site{Offset: [3]int{pt.i, pt.j, pt.k}, Sub: sub}
			if geom.Dim == Dim2 {
				site.Offset[2] = 0
			}
			s.States = append(s.States, st)
			s.Positions[st] = SitePosition(site, geom.SublatticePositions, geom.Dim)
			s.Momenta[st] = pt.kvec
			s.Eigenvalues[st] = results[p].vals[sub-1]
			s.Eigenvectors[st] = results[p].vecs[sub-1]
		}
	}
	return s, nil
}

// diagonalizeAll fills results for every momentum point, chunking the
// independent points over the available threads.
func (m *ParametrizedModel) diagonalizeAll(points []kPoint, results []eigResult) error {
	maxGoroutines := runtime.GOMAXPROCS(-1)
	if maxGoroutines > 1 && len(points) >= 2*maxGoroutines {
		listSize := len(points) / maxGoroutines
		workerErrs := make([]error, maxGoroutines)
		var wg sync.WaitGroup
		for w := 0; w < maxGoroutines; w++ {
			lo := w * listSize
			hi := lo + listSize
			if w == maxGoroutines-1 {
				hi = len(points)
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				workerErrs[w] = m.diagonalizeRange(points[lo:hi], results[lo:hi])
			}(w, lo, hi)
		}
		wg.Wait()
		for _, err := range workerErrs {
			if err != nil {
				return err
			}
		}
		return nil
	}
	return m.diagonalizeRange(points, results)
}

func (m *ParametrizedModel) diagonalizeRange(points []kPoint, results []eigResult) error {
	dim := int(m.Ham.Geometry.Dim)
	for p, pt := range points {
		hk, err := m.HkCrystal(pt.kvec[:dim]...)
		if err != nil {
			return errors.Wrapf(err, "momentum point (%d,%d,%d)", pt.i, pt.j, pt.k)
		}
		vals, vecs, err := hermitianEigen(hk)
		if err != nil {
			return errors.Wrapf(err, "momentum point (%d,%d,%d)", pt.i, pt.j, pt.k)
		}
		results[p] = eigResult{vals: vals, vecs: vecs}
	}
	return nil
}

// EnergySpectrum returns all eigenvalues in ascending order.
func (s *Sample) EnergySpectrum() []float64 {
	es := make([]float64, 0, len(s.States))
	for _, st := range s.States {
		es = append(es, s.Eigenvalues[st])
	}
	slices.Sort(es)
	return es
}

// BandEnergies returns the eigenvalues assigned to one sublattice label
// across all momentum points.
func (s *Sample) BandEnergies(sub int) []float64 {
	es := make([]float64, 0, s.Size[0]*s.Size[1]*s.Size[2])
	for _, st := range s.States {
		if st.Sub == sub {
			es = append(es, s.Eigenvalues[st])
		}
	}
	return es
}

// MeanEnergy returns the arithmetic mean of all eigenvalues.
func (s *Sample) MeanEnergy() float64 {
	return stat.Mean(s.EnergySpectrum(), nil)
}

// Bandwidth returns the spread between the extreme eigenvalues.
func (s *Sample) Bandwidth() float64 {
	es := s.EnergySpectrum()
	return floats.Max(es) - floats.Min(es)
}
