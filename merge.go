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

// Merge regions on the same chromosome that are separated by less than
// maxGap base pairs into maximal contiguous spans. The operation is
// idempotent: after merging, no two spans on the same chromosome are
// within maxGap of each other.
func MergeWithin(regions Regions, maxGap int) Regions {
  r := NewEmptyRegions()

  rmap := map[string][]int{}
  for i := 0; i < regions.Length(); i++ {
    rmap[regions.Seqnames[i]] = append(rmap[regions.Seqnames[i]], i)
  }
  seqnames := []string{}
  for seqname, _ := range rmap {
    seqnames = append(seqnames, seqname)
  }
  sort.Slice(seqnames, func(i, j int) bool {
    return seqnameLess(seqnames[i], seqnames[j])
  })
  for _, seqname := range seqnames {
    idx := rmap[seqname]
    sort.Slice(idx, func(i, j int) bool {
      return regions.From[idx[i]] < regions.From[idx[j]]
    })
    from := regions.From[idx[0]]
    to   := regions.To  [idx[0]]
    for _, i := range idx[1:] {
      if regions.From[i] - to < maxGap {
        // extend the current span
        to = iMax(to, regions.To[i])
      } else {
        r.Seqnames = append(r.Seqnames, seqname)
        r.From     = append(r.From,     from)
        r.To       = append(r.To,       to)
        from = regions.From[i]
        to   = regions.To  [i]
      }
    }
    r.Seqnames = append(r.Seqnames, seqname)
    r.From     = append(r.From,     from)
    r.To       = append(r.To,       to)
  }
  return r
}

/* -------------------------------------------------------------------------- */

// Select probes whose FDR adjusted combined p-value falls below the
// seed threshold and merge the selected positions into candidate
// regions with a gap tolerance of maxGap base pairs. The combined
// p-values must be aligned with the probes (first combination pass).
// If no probe is selected an empty region set is returned.
func MergeProbes(probes Probes, combined []float64, seed float64, maxGap int) Regions {
  if len(combined) != probes.Length() {
    panic("MergeProbes(): combined p-values do not match probes!")
  }
  qvalues := AdjustFdr(combined)

  seqnames := []string{}
  from     := []int{}
  to       := []int{}
  for i := 0; i < probes.Length(); i++ {
    if qvalues[i] < seed {
      seqnames = append(seqnames, probes.Seqnames[i])
      from     = append(from,     probes.Positions[i])
      to       = append(to,       probes.Positions[i])
    }
  }
  if len(seqnames) == 0 {
    return NewEmptyRegions()
  }
  return MergeWithin(NewRegions(seqnames, from, to), maxGap)
}
