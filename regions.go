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
import "sort"

/* -------------------------------------------------------------------------- */

// Contiguous genomic regions with combined statistics. From and To are
// inclusive genomic coordinates. Pvalues, Qvalues and Nprobes are
// filled by the second combination pass; GeneNames and GeneDistances
// are filled by AnnotateNearest and empty otherwise.
type Regions struct {
  Seqnames      []string
  From          []int
  To            []int
  Pvalues       []float64
  Qvalues       []float64
  Nprobes       []int
  GeneNames     []string
  GeneDistances []int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewRegions(seqnames []string, from, to []int) Regions {
  n := len(seqnames)
  if len(from) != n || len(to) != n {
    panic("NewRegions(): invalid arguments!")
  }
  for i := 0; i < n; i++ {
    if from[i] > to[i] {
      panic("NewRegions(): from > to")
    }
  }
  return Regions{Seqnames: seqnames, From: from, To: to}
}

func NewEmptyRegions() Regions {
  return Regions{Seqnames: []string{}, From: []int{}, To: []int{}}
}

/* -------------------------------------------------------------------------- */

func (regions *Regions) Length() int {
  return len(regions.From)
}

func (regions *Regions) Width(i int) int {
  return regions.To[i] - regions.From[i] + 1
}

func (regions *Regions) Subset(indices []int) Regions {
  n := len(indices)
  r := Regions{}
  r.Seqnames = make([]string, n)
  r.From     = make([]int,    n)
  r.To       = make([]int,    n)
  for i := 0; i < n; i++ {
    r.Seqnames[i] = regions.Seqnames[indices[i]]
    r.From    [i] = regions.From    [indices[i]]
    r.To      [i] = regions.To      [indices[i]]
  }
  if len(regions.Pvalues) > 0 {
    r.Pvalues = make([]float64, n)
    for i := 0; i < n; i++ {
      r.Pvalues[i] = regions.Pvalues[indices[i]]
    }
  }
  if len(regions.Qvalues) > 0 {
    r.Qvalues = make([]float64, n)
    for i := 0; i < n; i++ {
      r.Qvalues[i] = regions.Qvalues[indices[i]]
    }
  }
  if len(regions.Nprobes) > 0 {
    r.Nprobes = make([]int, n)
    for i := 0; i < n; i++ {
      r.Nprobes[i] = regions.Nprobes[indices[i]]
    }
  }
  if len(regions.GeneNames) > 0 {
    r.GeneNames     = make([]string, n)
    r.GeneDistances = make([]int,    n)
    for i := 0; i < n; i++ {
      r.GeneNames    [i] = regions.GeneNames    [indices[i]]
      r.GeneDistances[i] = regions.GeneDistances[indices[i]]
    }
  }
  return r
}

/* -------------------------------------------------------------------------- */

// Count for every region the number of probes located within its
// inclusive coordinates and store the result in Nprobes.
func (regions *Regions) CountProbes(probes Probes) {
  regions.Nprobes = make([]int, regions.Length())

  indices := probes.SeqnameIndices()
  for i := 0; i < regions.Length(); i++ {
    n := 0
    for _, j := range indices[regions.Seqnames[i]] {
      if probes.Positions[j] >= regions.From[i] && probes.Positions[j] <= regions.To[i] {
        n++
      }
    }
    regions.Nprobes[i] = n
  }
}

// Names of the probes located within region i.
func (regions *Regions) MemberProbes(probes Probes, i int) []string {
  names := []string{}

  indices := probes.SeqnameIndices()
  for _, j := range indices[regions.Seqnames[i]] {
    if probes.Positions[j] >= regions.From[i] && probes.Positions[j] <= regions.To[i] {
      names = append(names, probes.Names[j])
    }
  }
  return names
}

/* -------------------------------------------------------------------------- */

// Sort regions by ascending combined p-value. The sort is stable, ties
// keep their input order.
func (regions *Regions) SortByPvalue() Regions {
  if len(regions.Pvalues) != regions.Length() {
    panic("SortByPvalue(): regions have no combined p-values!")
  }
  indices := make([]int, regions.Length())
  for i := 0; i < len(indices); i++ {
    indices[i] = i
  }
  sort.SliceStable(indices, func(i, j int) bool {
    return regions.Pvalues[indices[i]] < regions.Pvalues[indices[j]]
  })
  return regions.Subset(indices)
}

/* -------------------------------------------------------------------------- */

// Second combination pass: combine the statistics of all member probes
// over the full extent of every region, adjust the combined p-values
// across regions, and count member probes. The result is sorted by
// ascending combined p-value.
func CombineRegions(regions Regions, probes Probes, acf Autocorrelation) Regions {
  if !probes.IsSorted() {
    probes = probes.Sort()
  }
  r := regions.Subset(identityIndices(regions.Length()))
  r.Pvalues = make([]float64, r.Length())
  for i := 0; i < r.Length(); i++ {
    // overwritten below unless the chromosome has no probes at all
    r.Pvalues[i] = 1.0
  }

  indices := probes.SeqnameIndices()
  for _, seqname := range probes.SeqnameList() {
    idx := indices[seqname]
    positions := make([]int,     len(idx))
    pvalues   := make([]float64, len(idx))
    for i := 0; i < len(idx); i++ {
      positions[i] = probes.Positions[idx[i]]
      pvalues  [i] = probes.Pvalues  [idx[i]]
    }
    z := normalQuantiles(pvalues)
    for i := 0; i < r.Length(); i++ {
      if r.Seqnames[i] != seqname {
        continue
      }
      r.Pvalues[i] = combineSpan(positions, pvalues, z, acf, r.From[i], r.To[i])
    }
  }
  r.Qvalues = AdjustFdr(r.Pvalues)
  r.CountProbes(probes)
  return r.SortByPvalue()
}

func identityIndices(n int) []int {
  indices := make([]int, n)
  for i := 0; i < n; i++ {
    indices[i] = i
  }
  return indices
}

/* -------------------------------------------------------------------------- */

// Export regions as a table. The first line contains the header of
// the table.
func (regions *Regions) WriteTable(w io.Writer, header bool) error {
  hasStats := len(regions.Pvalues) > 0
  hasGenes := len(regions.GeneNames) > 0
  // print header
  if header {
    if _, err := fmt.Fprintf(w, "%14s %10s %10s", "seqnames", "from", "to"); err != nil {
      return err
    }
    if hasStats {
      if _, err := fmt.Fprintf(w, " %14s %14s %8s", "pvalue", "qvalue", "nprobes"); err != nil {
        return err
      }
    }
    if hasGenes {
      if _, err := fmt.Fprintf(w, " %14s %10s", "gene", "distance"); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  // print data
  for i := 0; i < regions.Length(); i++ {
    if _, err := fmt.Fprintf(w, "%14s %10d %10d", regions.Seqnames[i], regions.From[i], regions.To[i]); err != nil {
      return err
    }
    if hasStats {
      if _, err := fmt.Fprintf(w, " %14e %14e %8d", regions.Pvalues[i], regions.Qvalues[i], regions.Nprobes[i]); err != nil {
        return err
      }
    }
    if hasGenes {
      name := regions.GeneNames[i]
      if name == "" {
        name = "."
      }
      if _, err := fmt.Fprintf(w, " %14s %10d", name, regions.GeneDistances[i]); err != nil {
        return err
      }
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (regions *Regions) ExportTable(filename string, header, compress bool) error {
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := regions.WriteTable(w, header); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filename, &buffer, compress)
}

/* -------------------------------------------------------------------------- */

func (regions Regions) String() string {
  return fmt.Sprintf("Regions object with %d ranges", regions.Length())
}
