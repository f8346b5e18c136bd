/* Copyright (C) 2021 Philipp Benner
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

import "fmt"
import "sort"

/* -------------------------------------------------------------------------- */

// Container for measured probes. Each probe has a name (e.g. a CpG
// identifier), a chromosome, an integer position, and a raw p-value.
// All windowed operations assume probes to be sorted with Sort().
type Probes struct {
  Names     []string
  Seqnames  []string
  Positions []int
  Pvalues   []float64
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewProbes(names, seqnames []string, positions []int, pvalues []float64) Probes {
  n := len(names)
  if len(seqnames) != n || len(positions) != n || len(pvalues) != n {
    panic("NewProbes(): invalid arguments!")
  }
  return Probes{names, seqnames, positions, pvalues}
}

func NewEmptyProbes() Probes {
  return Probes{[]string{}, []string{}, []int{}, []float64{}}
}

func (probes *Probes) Clone() Probes {
  result := NewEmptyProbes()
  result.Names     = append(result.Names,     probes.Names    ...)
  result.Seqnames  = append(result.Seqnames,  probes.Seqnames ...)
  result.Positions = append(result.Positions, probes.Positions...)
  result.Pvalues   = append(result.Pvalues,   probes.Pvalues  ...)
  return result
}

/* -------------------------------------------------------------------------- */

func (probes *Probes) Length() int {
  return len(probes.Positions)
}

func (p1 *Probes) Append(p2 Probes) Probes {
  result := Probes{}

  result.Names     = append(p1.Names,     p2.Names    ...)
  result.Seqnames  = append(p1.Seqnames,  p2.Seqnames ...)
  result.Positions = append(p1.Positions, p2.Positions...)
  result.Pvalues   = append(p1.Pvalues,   p2.Pvalues  ...)

  return result
}

func (probes *Probes) Subset(indices []int) Probes {
  n := len(indices)
  names     := make([]string,  n)
  seqnames  := make([]string,  n)
  positions := make([]int,     n)
  pvalues   := make([]float64, n)

  for i := 0; i < n; i++ {
    names    [i] = probes.Names    [indices[i]]
    seqnames [i] = probes.Seqnames [indices[i]]
    positions[i] = probes.Positions[indices[i]]
    pvalues  [i] = probes.Pvalues  [indices[i]]
  }
  return NewProbes(names, seqnames, positions, pvalues)
}

func (probes *Probes) Remove(indices []int) Probes {
  if len(indices) == 0 {
    return probes.Clone()
  }
  indices = removeDuplicatesInt(indices)
  sort.Ints(indices)

  n := probes.Length()
  m := n - len(indices)

  idx := make([]int, 0, m)
  for i, j := 0, 0; i < n; i++ {
    for j < len(indices)-1 && i > indices[j] {
      j++
    }
    if i != indices[j] {
      idx = append(idx, i)
    }
  }
  return probes.Subset(idx)
}

// Remove all probes located on any of the given chromosomes. Typically
// used to exclude sex chromosomes from the analysis.
func (probes *Probes) FilterSeqnames(exclude []string) Probes {
  m := map[string]bool{}
  for _, seqname := range exclude {
    m[seqname] = true
  }
  idx := []int{}
  for i := 0; i < probes.Length(); i++ {
    if m[probes.Seqnames[i]] {
      idx = append(idx, i)
    }
  }
  return probes.Remove(idx)
}

/* -------------------------------------------------------------------------- */

// Returns the set of chromosomes, sorted first by the length of the
// name and then lexicographically (i.e. chr2 before chr10).
func (probes *Probes) SeqnameList() []string {
  m := map[string]bool{}
  for _, seqname := range probes.Seqnames {
    m[seqname] = true
  }
  seqnames := []string{}
  for seqname, _ := range m {
    seqnames = append(seqnames, seqname)
  }
  sort.Slice(seqnames, func(i, j int) bool {
    return seqnameLess(seqnames[i], seqnames[j])
  })
  return seqnames
}

// Returns a map from chromosome to the probe indices located on it, in
// the order in which they appear.
func (probes *Probes) SeqnameIndices() map[string][]int {
  m := map[string][]int{}
  for i := 0; i < probes.Length(); i++ {
    m[probes.Seqnames[i]] = append(m[probes.Seqnames[i]], i)
  }
  return m
}

/* sorting
 * -------------------------------------------------------------------------- */

func seqnameLess(si, sj string) bool {
  li := len(si)
  lj := len(sj)
  if li != lj {
    return li < lj
  }
  return si < sj
}

type probesSort struct {
  Probes
  indices []int
}

func newProbesSort(probes Probes) probesSort {
  indices := make([]int, probes.Length())
  for i := 0; i < len(indices); i++ {
    indices[i] = i
  }
  return probesSort{probes, indices}
}

func (r probesSort) Len() int {
  return r.Length()
}

func (r probesSort) Less(i, j int) bool {
  si := r.Seqnames[r.indices[i]]
  sj := r.Seqnames[r.indices[j]]
  if si != sj {
    return seqnameLess(si, sj)
  }
  return r.Positions[r.indices[i]] < r.Positions[r.indices[j]]
}

func (r probesSort) Swap(i, j int) {
  r.indices[i], r.indices[j] = r.indices[j], r.indices[i]
}

// Sort probes by chromosome and position. Position order within each
// chromosome is an invariant of every windowed operation.
func (probes *Probes) Sort() Probes {
  s := newProbesSort(*probes)
  sort.Stable(s)
  return probes.Subset(s.indices)
}

func (probes *Probes) IsSorted() bool {
  s := newProbesSort(*probes)
  return sort.IsSorted(s)
}

/* -------------------------------------------------------------------------- */

// Check that all p-values are valid, i.e. in the interval (0,1]. The
// returned error identifies the first offending probe.
func (probes *Probes) Validate() error {
  for i := 0; i < probes.Length(); i++ {
    p := probes.Pvalues[i]
    if !(p > 0.0) || p > 1.0 {
      return fmt.Errorf("probe `%s' (row %d) has invalid p-value `%v'", probes.Names[i], i+1, p)
    }
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func (probes Probes) String() string {
  return fmt.Sprintf("Probes object with %d probes on %d chromosomes",
    probes.Length(), len(probes.SeqnameList()))
}
