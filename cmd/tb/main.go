// main.go --  This file is part of TightBinding project.
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
//
// tb reads a model-definition file, builds the tight-binding model and
// generates a finite sample. Block format:
//
//	Model square
//	Params t mu
//	Basis
//	  1 0
//	  0 1
//	End
//	Sublattices
//	  0 0 A
//	End
//	Hoppings
//	  0 0 1   0 0 1   mu
//	  0 0 1   1 0 1   -t
//	End
//	Bind
//	  t 1.0
//	  mu 2.0
//	End
//	Sample
//	  Size 4 4 1
//	  Flux 0 0 0
//	  Temperature 0.0
//	End
//
// Hopping lines list the to-site tuple, the from-site tuple and the
// amplitude; tuples carry dim offsets plus the sublattice index.
// Amplitudes are products of numbers and parameter names joined by '*'.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	tb "github.com/xiaodong-hu/TightBinding"
)

type runSpec struct {
	model    tb.ModelSpec
	terms    []tb.HoppingTerm
	bindings tb.ParameterBinding
	size     [3]int
	flux     [3]float64
	temp     float64
}

func readFileLines(fname string) ([]string, error) {
	var result []string

	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, scanner.Err()
}

func findBlockEnd(n int, data []string, bname string) int {
	for i := n; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 {
			if strings.ToLower(words[0]) == "end" {
				return i
			}
		}
	}
	tb.ErrorLogger.Fatal("No end of block " + bname + ".")
	return 0
}

func parseFloats(words []string) []float64 {
	vals := make([]float64, len(words))
	for i, w := range words {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			tb.ErrorLogger.Fatal("Cannot parse number " + w + ".")
		}
		vals[i] = v
	}
	return vals
}

func parseInts(words []string) []int {
	vals := make([]int, len(words))
	for i, w := range words {
		v, err := strconv.Atoi(w)
		if err != nil {
			tb.ErrorLogger.Fatal("Cannot parse integer " + w + ".")
		}
		vals[i] = v
	}
	return vals
}

// parseAmplitude turns tokens like "mu", "-t", "0.5*t" or "2.0" into a
// symbolic expression. Anything richer belongs to an external reader.
func parseAmplitude(token string, params []string) tb.Expr {
	factors := []tb.Expr{}
	for _, part := range strings.Split(token, "*") {
		if strings.HasPrefix(part, "-") {
			factors = append(factors, tb.N(-1))
			part = part[1:]
		}
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			factors = append(factors, tb.N(v))
			continue
		}
		if slices.Index(params, part) < 0 {
			tb.ErrorLogger.Fatal("Amplitude references undeclared parameter " + part + ".")
		}
		factors = append(factors, tb.S(part))
	}
	return tb.MulOf(factors...)
}

func parseSite(words []string, dim int) tb.Site {
	vals := parseInts(words)
	var site tb.Site
	for c := 0; c < dim; c++ {
		site.Offset[c] = vals[c]
	}
	site.Sub = vals[dim]
	return site
}

func processInput(data []string) runSpec {
	rs := runSpec{bindings: tb.ParameterBinding{}, size: [3]int{1, 1, 1}}
	var haveBasis, haveSub, haveHop bool
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "model":
			rs.model.Name = words[1]
		case "params":
			rs.model.ParameterNames = words[1:]
		case "basis":
			end := findBlockEnd(i, data, "Basis")
			for _, line := range data[i+1 : end] {
				if w := strings.Fields(line); len(w) > 0 {
					rs.model.BasisVectors = append(rs.model.BasisVectors, parseFloats(w))
				}
			}
			haveBasis = true
			i = end
		case "sublattices":
			end := findBlockEnd(i, data, "Sublattices")
			for _, line := range data[i+1 : end] {
				w := strings.Fields(line)
				if len(w) == 0 {
					continue
				}
				dim := len(rs.model.BasisVectors)
				rs.model.SublatticePositions = append(rs.model.SublatticePositions, parseFloats(w[:dim]))
				name := ""
				if len(w) > dim {
					name = w[dim]
				}
				rs.model.AtomNames = append(rs.model.AtomNames, name)
			}
			haveSub = true
			i = end
		case "hoppings":
			end := findBlockEnd(i, data, "Hoppings")
			dim := len(rs.model.BasisVectors)
			for _, line := range data[i+1 : end] {
				w := strings.Fields(line)
				if len(w) == 0 {
					continue
				}
				if len(w) != 2*(dim+1)+1 {
					tb.ErrorLogger.Fatal("Malformed hopping line: " + line)
				}
				rs.terms = append(rs.terms, tb.HoppingTerm{
					To:        parseSite(w[:dim+1], dim),
					From:      parseSite(w[dim+1:2*(dim+1)], dim),
					Amplitude: parseAmplitude(w[2*(dim+1)], rs.model.ParameterNames),
				})
			}
			haveHop = true
			i = end
		case "bind":
			end := findBlockEnd(i, data, "Bind")
			for _, line := range data[i+1 : end] {
				w := strings.Fields(line)
				if len(w) != 2 {
					continue
				}
				rs.bindings[w[0]] = parseFloats(w[1:])[0]
			}
			i = end
		case "sample":
			end := findBlockEnd(i, data, "Sample")
			for _, line := range data[i+1 : end] {
				w := strings.Fields(line)
				if len(w) == 0 {
					continue
				}
				switch strings.ToLower(w[0]) {
				case "size":
					v := parseInts(w[1:4])
					rs.size = [3]int{v[0], v[1], v[2]}
				case "flux":
					v := parseFloats(w[1:4])
					rs.flux = [3]float64{v[0], v[1], v[2]}
				case "temperature":
					rs.temp = parseFloats(w[1:2])[0]
				}
			}
			i = end
		}
	}
	if !haveBasis || !haveSub || !haveHop {
		tb.ErrorLogger.Fatal("Input needs Basis, Sublattices and Hoppings blocks.")
	}
	return rs
}

func printOutputDelimiter() {
	tb.OutputLogger.Println(strings.Repeat("-", 70))
}

func main() {
	var inpFname, outFname string
	if len(os.Args) > 1 {
		inpFname = os.Args[1]
		splitInpFname := strings.Split(inpFname, ".")
		fExt := splitInpFname[len(splitInpFname)-1]
		outFname = inpFname[0:(len(inpFname)-len(fExt))] + "out"
		fmt.Println("Output file: ", outFname)
	} else {
		log.Fatal("No input file.")
	}

	if err := tb.InitLog(outFname); err != nil {
		log.Fatal(err)
	}
	tb.InfoLogger.Println("Starting tb...")

	inpData, err := readFileLines(inpFname)
	if err != nil {
		tb.ErrorLogger.Fatal("Cannot read input file: ", err)
	}
	tb.OutputLogger.Println("Input file content:")
	printOutputDelimiter()
	for _, line := range inpData {
		tb.OutputLogger.Println(line)
	}
	printOutputDelimiter()

	rs := processInput(inpData)

	geom, err := tb.BuildGeometry(rs.model)
	if err != nil {
		tb.ErrorLogger.Fatal("Geometry: ", err)
	}
	tb.OutputLogger.Println("Model ", geom.Name, ": dim = ", int(geom.Dim), ", sublattices = ", geom.NSub,
		", unit-cell volume = ", geom.UnitCellVolume)

	ham, err := tb.AssembleHamiltonian(geom, rs.terms)
	if err != nil {
		tb.ErrorLogger.Fatal("Hamiltonian: ", err)
	}
	tb.OutputLogger.Println("H(k) in crystal momentum:")
	tb.OutputLogger.Print("\n" + tb.FormatSymbolic(ham.Crystal))
	printOutputDelimiter()

	model, err := tb.BindParameters(ham, rs.bindings)
	if err != nil {
		tb.ErrorLogger.Fatal("Binding: ", err)
	}
	zero := make([]float64, int(geom.Dim))
	h0, err := model.HkCrystal(zero...)
	if err != nil {
		tb.ErrorLogger.Fatal("Evaluation: ", err)
	}
	tb.OutputLogger.Println("H(k = 0):")
	tb.OutputLogger.Print("\n" + tb.FormatCDense(h0))
	printOutputDelimiter()

	sample, err := tb.GenerateSample(model, rs.size, rs.flux, rs.temp)
	if err != nil {
		tb.ErrorLogger.Fatal("Sample: ", err)
	}
	tb.OutputLogger.Println("Sample ", sample.Name, ": ", len(sample.States), " states")
	tb.OutputLogger.Println("Mean energy = ", sample.MeanEnergy())
	tb.OutputLogger.Println("Bandwidth = ", sample.Bandwidth())

	specName := inpFname + ".spectrum"
	if err := tb.WriteSpectrum(sample, specName); err != nil {
		tb.ErrorLogger.Fatal("Cannot write spectrum: ", err)
	}
	fmt.Println("Spectrum written to ", specName)
	tb.InfoLogger.Println("Exiting tb...")
	fmt.Println("tb done.")
}
