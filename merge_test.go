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

import   "testing"

/* -------------------------------------------------------------------------- */

func TestMergeProbes1(t *testing.T) {

  // three probes within the cutoff of their neighbor merge into one
  // region spanning all of them
  probes := NewProbes(
    []string {"cg1", "cg2", "cg3"},
    []string {"chr1", "chr1", "chr1"},
    []int    {100, 200, 900},
    []float64{0.001, 0.002, 0.5})

  regions := MergeProbes(probes, probes.Pvalues, 0.7, 1000)

  if regions.Length() != 1 {
    t.Error("TestMergeProbes1 failed!")
  }
  if regions.Seqnames[0] != "chr1" || regions.From[0] != 100 || regions.To[0] != 900 {
    t.Error("TestMergeProbes1 failed!")
  }
  regions.CountProbes(probes)
  if regions.Nprobes[0] != 3 {
    t.Error("TestMergeProbes1 failed!")
  }
}

func TestMergeProbes2(t *testing.T) {

  // probes further apart than the cutoff never merge
  probes := NewProbes(
    []string {"cg1", "cg2"},
    []string {"chr1", "chr1"},
    []int    {100, 5000},
    []float64{0.001, 0.002})

  regions := MergeProbes(probes, probes.Pvalues, 0.7, 1000)

  if regions.Length() != 2 {
    t.Error("TestMergeProbes2 failed!")
  }
  if regions.From[0] != 100 || regions.To[0] != 100 {
    t.Error("TestMergeProbes2 failed!")
  }
  if regions.From[1] != 5000 || regions.To[1] != 5000 {
    t.Error("TestMergeProbes2 failed!")
  }
}

func TestMergeProbesEmpty(t *testing.T) {

  // no probe passes the seed threshold, which is a valid terminal
  // state
  probes := NewProbes(
    []string {"cg1", "cg2"},
    []string {"chr1", "chr1"},
    []int    {100, 5000},
    []float64{0.5, 0.9})

  regions := MergeProbes(probes, probes.Pvalues, 0.01, 1000)

  if regions.Length() != 0 {
    t.Error("TestMergeProbesEmpty failed!")
  }
}

func TestMergeWithinIdempotent(t *testing.T) {

  regions := NewRegions(
    []string{"chr1", "chr1", "chr1", "chr2"},
    []int   {100, 200, 5000, 100},
    []int   {100, 200, 5000, 100})

  r1 := MergeWithin(regions, 1000)
  r2 := MergeWithin(r1,      1000)

  if r1.Length() != 3 || r2.Length() != 3 {
    t.Error("TestMergeWithinIdempotent failed!")
  }
  for i := 0; i < r1.Length(); i++ {
    if r1.Seqnames[i] != r2.Seqnames[i] || r1.From[i] != r2.From[i] || r1.To[i] != r2.To[i] {
      t.Error("TestMergeWithinIdempotent failed!")
    }
  }
}

func TestMergeWithinMonotone(t *testing.T) {

  regions := NewRegions(
    []string{"chr1", "chr1", "chr1", "chr1"},
    []int   {100, 600, 2000, 9000},
    []int   {100, 600, 2000, 9000})

  // increasing the gap tolerance cannot increase the number of regions
  // and cannot shrink any region
  previous := regions
  for _, gap := range []int{100, 500, 1000, 5000, 10000} {
    merged := MergeWithin(regions, gap)
    if merged.Length() > previous.Length() {
      t.Error("TestMergeWithinMonotone failed!")
    }
    for i := 0; i < previous.Length(); i++ {
      covered := false
      for j := 0; j < merged.Length(); j++ {
        if merged.From[j] <= previous.From[i] && merged.To[j] >= previous.To[i] {
          covered = true
        }
      }
      if !covered {
        t.Error("TestMergeWithinMonotone failed!")
      }
    }
    previous = merged
  }
}
