/* Copyright (C) 2022 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package dmrcomb

/* -------------------------------------------------------------------------- */

import "bufio"
import "bytes"
import "compress/gzip"
import "fmt"
import "io"
import "math"
import "os"
import "strconv"
import "strings"

import "github.com/kshedden/gonpy"

/* -------------------------------------------------------------------------- */

// Samples-by-probes measurement matrix (e.g. methylation beta values).
// The matrix is read-only input to the analysis; missing values are not
// permitted. Probe columns are addressed by name through an index map
// that is built once at construction.
type BetaMatrix struct {
  Samples []string
  Probes  []string
  Values  [][]float64
  index   map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewBetaMatrix(samples, probes []string, values [][]float64) (*BetaMatrix, error) {
  if len(values) != len(samples) {
    return nil, fmt.Errorf("matrix has %d rows but %d sample names", len(values), len(samples))
  }
  for i := 0; i < len(values); i++ {
    if len(values[i]) != len(probes) {
      return nil, fmt.Errorf("sample `%s' (row %d) has %d values but there are %d probes",
        samples[i], i+1, len(values[i]), len(probes))
    }
    for j := 0; j < len(values[i]); j++ {
      if math.IsNaN(values[i][j]) || math.IsInf(values[i][j], 0) {
        return nil, fmt.Errorf("sample `%s' (row %d) has a missing value for probe `%s'",
          samples[i], i+1, probes[j])
      }
    }
  }
  index := map[string]int{}
  for j, name := range probes {
    if _, ok := index[name]; ok {
      return nil, fmt.Errorf("duplicate probe name `%s'", name)
    }
    index[name] = j
  }
  return &BetaMatrix{samples, probes, values, index}, nil
}

/* -------------------------------------------------------------------------- */

func (m *BetaMatrix) NumSamples() int {
  return len(m.Samples)
}

func (m *BetaMatrix) NumProbes() int {
  return len(m.Probes)
}

func (m *BetaMatrix) ProbeIndex(name string) (int, bool) {
  j, ok := m.index[name]
  return j, ok
}

// Copy of the column for the named probe.
func (m *BetaMatrix) Column(name string) ([]float64, error) {
  j, ok := m.index[name]
  if !ok {
    return nil, fmt.Errorf("probe `%s' not found in matrix", name)
  }
  r := make([]float64, m.NumSamples())
  for i := 0; i < m.NumSamples(); i++ {
    r[i] = m.Values[i][j]
  }
  return r, nil
}

// Samples-by-k sub-matrix restricted to the named probes, in the given
// order.
func (m *BetaMatrix) Columns(names []string) ([][]float64, error) {
  idx := make([]int, len(names))
  for k, name := range names {
    j, ok := m.index[name]
    if !ok {
      return nil, fmt.Errorf("probe `%s' not found in matrix", name)
    }
    idx[k] = j
  }
  r := make([][]float64, m.NumSamples())
  for i := 0; i < m.NumSamples(); i++ {
    r[i] = make([]float64, len(idx))
    for k, j := range idx {
      r[i][k] = m.Values[i][j]
    }
  }
  return r, nil
}

/* -------------------------------------------------------------------------- */

// Read a beta matrix from a whitespace separated table. The first line
// names the probes, every following line starts with the sample name
// followed by one value per probe.
func (m *BetaMatrix) ReadTable(r io.Reader) error {
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)

  probes := []string{}
  if scanner.Scan() {
    probes = strings.Fields(scanner.Text())
  }
  if len(probes) == 0 {
    return fmt.Errorf("header line with probe names is missing")
  }
  samples := []string{}
  values  := [][]float64{}
  for i := 2; scanner.Scan(); i++ {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) != len(probes)+1 {
      return fmt.Errorf("line %d has %d values but there are %d probes", i, len(fields)-1, len(probes))
    }
    row := make([]float64, len(probes))
    for j := 1; j < len(fields); j++ {
      v, err := strconv.ParseFloat(fields[j], 64)
      if err != nil {
        return fmt.Errorf("parsing value `%s' at line %d failed", fields[j], i)
      }
      row[j-1] = v
    }
    samples = append(samples, fields[0])
    values  = append(values,  row)
  }
  t, err := NewBetaMatrix(samples, probes, values)
  if err != nil {
    return err
  }
  *m = *t
  return nil
}

func (m *BetaMatrix) ImportTable(filename string) error {
  var r io.Reader

  f, err := os.Open(filename)
  if err != nil {
    return err
  }
  defer f.Close()

  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return err
    }
    defer g.Close()
    r = g
  } else {
    r = f
  }
  if err := m.ReadTable(r); err != nil {
    return fmt.Errorf("reading table `%s' failed: %v", filename, err)
  }
  return nil
}

func (m *BetaMatrix) WriteTable(w io.Writer) error {
  for _, name := range m.Probes {
    if _, err := fmt.Fprintf(w, " %14s", name); err != nil {
      return err
    }
  }
  if _, err := fmt.Fprintf(w, "\n"); err != nil {
    return err
  }
  for i := 0; i < m.NumSamples(); i++ {
    if _, err := fmt.Fprintf(w, "%s", m.Samples[i]); err != nil {
      return err
    }
    for j := 0; j < m.NumProbes(); j++ {
      if _, err := fmt.Fprintf(w, " %14e", m.Values[i][j]); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (m *BetaMatrix) ExportTable(filename string, compress bool) error {
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := m.WriteTable(w); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filename, &buffer, compress)
}

/* numpy interchange
 * -------------------------------------------------------------------------- */

func readNameList(filename string) ([]string, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  names   := []string{}
  scanner := bufio.NewScanner(f)
  for scanner.Scan() {
    name := strings.TrimSpace(scanner.Text())
    if name != "" {
      names = append(names, name)
    }
  }
  return names, scanner.Err()
}

// Import a beta matrix from a numpy .npy file with sample and probe
// names given as plain text files, one name per line. The array must
// be two-dimensional with samples as rows.
func (m *BetaMatrix) ImportNpy(filenameNpy, filenameSamples, filenameProbes string) error {
  samples, err := readNameList(filenameSamples)
  if err != nil {
    return err
  }
  probes, err := readNameList(filenameProbes)
  if err != nil {
    return err
  }
  r, err := gonpy.NewFileReader(filenameNpy)
  if err != nil {
    return err
  }
  if len(r.Shape) != 2 {
    return fmt.Errorf("numpy file `%s' is not a matrix", filenameNpy)
  }
  data, err := r.GetFloat64()
  if err != nil {
    return err
  }
  nrow := r.Shape[0]
  ncol := r.Shape[1]
  if nrow != len(samples) {
    return fmt.Errorf("numpy file `%s' has %d rows but there are %d sample names", filenameNpy, nrow, len(samples))
  }
  if ncol != len(probes) {
    return fmt.Errorf("numpy file `%s' has %d columns but there are %d probe names", filenameNpy, ncol, len(probes))
  }
  values := make([][]float64, nrow)
  for i := 0; i < nrow; i++ {
    values[i] = make([]float64, ncol)
    for j := 0; j < ncol; j++ {
      if r.ColumnMajor {
        values[i][j] = data[j*nrow+i]
      } else {
        values[i][j] = data[i*ncol+j]
      }
    }
  }
  t, err := NewBetaMatrix(samples, probes, values)
  if err != nil {
    return err
  }
  *m = *t
  return nil
}

// Export a samples-by-columns matrix as a numpy .npy file, row-major.
func exportNpy(filename string, values [][]float64, ncol int) error {
  w, err := gonpy.NewFileWriter(filename)
  if err != nil {
    return err
  }
  data := make([]float64, 0, len(values)*ncol)
  for i := 0; i < len(values); i++ {
    data = append(data, values[i]...)
  }
  w.Shape = []int{len(values), ncol}
  return w.WriteFloat64(data)
}

func (m *BetaMatrix) ExportNpy(filename string) error {
  return exportNpy(filename, m.Values, m.NumProbes())
}
