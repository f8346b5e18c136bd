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

import "sort"

/* -------------------------------------------------------------------------- */

// distance between the inclusive region [from, to] and the gene
// interval [gFrom, gTo); zero if the two overlap
func geneDistance(from, to, gFrom, gTo int) int {
  if gTo <= from {
    return from - gTo + 1
  }
  if gFrom > to {
    return gFrom - to
  }
  return 0
}

/* -------------------------------------------------------------------------- */

// Annotate every region with the name of and distance to its nearest
// gene. Regions on chromosomes without any gene are annotated with an
// empty name and distance -1. Overlapping genes have distance zero.
func (regions *Regions) AnnotateNearest(genes Genes) {
  n := regions.Length()
  regions.GeneNames     = make([]string, n)
  regions.GeneDistances = make([]int,    n)

  // genes per chromosome, sorted by start position
  gmap := map[string][]int{}
  for i := 0; i < genes.Length(); i++ {
    gmap[genes.Seqnames[i]] = append(gmap[genes.Seqnames[i]], i)
  }
  for _, idx := range gmap {
    sort.Slice(idx, func(i, j int) bool {
      return genes.From[idx[i]] < genes.From[idx[j]]
    })
  }
  for i := 0; i < n; i++ {
    idx := gmap[regions.Seqnames[i]]
    if len(idx) == 0 {
      regions.GeneDistances[i] = -1
      continue
    }
    // first gene starting past the region end
    k := sort.Search(len(idx), func(j int) bool {
      return genes.From[idx[j]] > regions.To[i]
    })
    best  := -1
    bestD :=  0
    // scan left of the insertion point; genes are sorted by start, not
    // by end, so all candidates to the left must be examined
    for j := k-1; j >= 0; j-- {
      d := geneDistance(regions.From[i], regions.To[i], genes.From[idx[j]], genes.To[idx[j]])
      if best == -1 || d < bestD {
        best  = idx[j]
        bestD = d
      }
      if d == 0 {
        break
      }
    }
    if k < len(idx) {
      d := geneDistance(regions.From[i], regions.To[i], genes.From[idx[k]], genes.To[idx[k]])
      if best == -1 || d < bestD {
        best  = idx[k]
        bestD = d
      }
    }
    regions.GeneNames    [i] = genes.Names[best]
    regions.GeneDistances[i] = bestD
  }
}
