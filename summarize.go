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
import "fmt"
import "io"

import "gonum.org/v1/gonum/mat"
import "gonum.org/v1/gonum/stat"

/* -------------------------------------------------------------------------- */

// Final representative regions. Every region carries the ordered list
// of its member probe names and one representative value per sample,
// obtained from the dominant principal component of the sample-by-probe
// sub-matrix restricted to its members.
type DMRs struct {
  Regions
  Samples []string
  Members [][]string
  Scores  [][]float64
}

/* -------------------------------------------------------------------------- */

// Sample scores of the first principal component of x (samples as
// rows). To keep results reproducible the scores are oriented such
// that the loading of the first column is non-negative.
func firstPrincipalComponent(x [][]float64) ([]float64, error) {
  nrow := len(x)
  ncol := len(x[0])

  data := make([]float64, 0, nrow*ncol)
  for i := 0; i < nrow; i++ {
    data = append(data, x[i]...)
  }
  m := mat.NewDense(nrow, ncol, data)

  var pc stat.PC
  if ok := pc.PrincipalComponents(m, nil); !ok {
    return nil, fmt.Errorf("principal component decomposition failed")
  }
  var vectors mat.Dense
  pc.VectorsTo(&vectors)

  loadings := make([]float64, ncol)
  for j := 0; j < ncol; j++ {
    loadings[j] = vectors.At(j, 0)
  }
  if loadings[0] < 0.0 {
    for j := 0; j < ncol; j++ {
      loadings[j] = -loadings[j]
    }
  }
  // column means for centering
  means := make([]float64, ncol)
  for j := 0; j < ncol; j++ {
    for i := 0; i < nrow; i++ {
      means[j] += x[i][j]
    }
    means[j] /= float64(nrow)
  }
  scores := make([]float64, nrow)
  for i := 0; i < nrow; i++ {
    for j := 0; j < ncol; j++ {
      scores[i] += (x[i][j] - means[j])*loadings[j]
    }
  }
  return scores, nil
}

/* -------------------------------------------------------------------------- */

// Reduce every region to one representative value per sample. Regions
// with fewer than minProbes member probes are dropped. A region with a
// single member probe keeps that probe's measurements unchanged; all
// other regions are reduced to the sample scores of the first
// principal component of their member columns.
func Summarize(regions Regions, probes Probes, beta *BetaMatrix, minProbes int) (DMRs, error) {
  if beta.NumSamples() == 0 {
    return DMRs{}, fmt.Errorf("beta matrix has no samples")
  }
  if len(regions.Nprobes) != regions.Length() {
    regions.CountProbes(probes)
  }
  idx := []int{}
  for i := 0; i < regions.Length(); i++ {
    if regions.Nprobes[i] >= minProbes {
      idx = append(idx, i)
    }
  }
  dmrs := DMRs{
    Regions: regions.Subset(idx),
    Samples: beta.Samples,
    Members: make([][]string,  len(idx)),
    Scores : make([][]float64, len(idx))}

  for i := 0; i < dmrs.Length(); i++ {
    members := dmrs.Regions.MemberProbes(probes, i)
    dmrs.Members[i] = members

    if len(members) == 1 {
      column, err := beta.Column(members[0])
      if err != nil {
        return DMRs{}, err
      }
      dmrs.Scores[i] = column
      continue
    }
    x, err := beta.Columns(members)
    if err != nil {
      return DMRs{}, err
    }
    scores, err := firstPrincipalComponent(x)
    if err != nil {
      return DMRs{}, fmt.Errorf("region %s:%d-%d: %v",
        dmrs.Seqnames[i], dmrs.From[i], dmrs.To[i], err)
    }
    dmrs.Scores[i] = scores
  }
  return dmrs, nil
}

/* -------------------------------------------------------------------------- */

func (dmrs *DMRs) regionName(i int) string {
  return fmt.Sprintf("%s:%d-%d", dmrs.Seqnames[i], dmrs.From[i], dmrs.To[i])
}

// Samples-by-regions matrix of representative values.
func (dmrs *DMRs) ScoreMatrix() [][]float64 {
  r := make([][]float64, len(dmrs.Samples))
  for i := 0; i < len(dmrs.Samples); i++ {
    r[i] = make([]float64, dmrs.Length())
    for j := 0; j < dmrs.Length(); j++ {
      r[i][j] = dmrs.Scores[j][i]
    }
  }
  return r
}

// Export the representative values as a table with one row per sample
// and one column per region.
func (dmrs *DMRs) WriteScoreTable(w io.Writer) error {
  for j := 0; j < dmrs.Length(); j++ {
    if _, err := fmt.Fprintf(w, " %20s", dmrs.regionName(j)); err != nil {
      return err
    }
  }
  if _, err := fmt.Fprintf(w, "\n"); err != nil {
    return err
  }
  for i := 0; i < len(dmrs.Samples); i++ {
    if _, err := fmt.Fprintf(w, "%s", dmrs.Samples[i]); err != nil {
      return err
    }
    for j := 0; j < dmrs.Length(); j++ {
      if _, err := fmt.Fprintf(w, " %20e", dmrs.Scores[j][i]); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (dmrs *DMRs) ExportScoreTable(filename string, compress bool) error {
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := dmrs.WriteScoreTable(w); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filename, &buffer, compress)
}

// Export the representative values as a numpy .npy file, one row per
// sample and one column per region.
func (dmrs *DMRs) ExportScoresNpy(filename string) error {
  return exportNpy(filename, dmrs.ScoreMatrix(), dmrs.Length())
}

// Export the region to member probe mapping, one region per line.
func (dmrs *DMRs) WriteMembers(w io.Writer) error {
  for i := 0; i < dmrs.Length(); i++ {
    if _, err := fmt.Fprintf(w, "%s", dmrs.regionName(i)); err != nil {
      return err
    }
    for _, name := range dmrs.Members[i] {
      if _, err := fmt.Fprintf(w, " %s", name); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (dmrs *DMRs) ExportMembers(filename string, compress bool) error {
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := dmrs.WriteMembers(w); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filename, &buffer, compress)
}
