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

import "math"

import "gonum.org/v1/gonum/stat/distuv"

/* -------------------------------------------------------------------------- */

func clampUnit(p float64) float64 {
  if math.IsNaN(p) {
    return 1.0
  }
  if p < 0.0 {
    return 0.0
  }
  if p > 1.0 {
    return 1.0
  }
  return p
}

// Combine the statistics of the probes at the given indices into one
// p-value. Statistics are summed on the normal quantile scale; the
// variance of the sum is the number of probes plus twice the estimated
// covariance between every probe pair, where the covariance is read
// from the autocorrelation bin of the pair's distance (Stouffer's
// method with variance inflation for spatial correlation).
func combineStats(positions []int, z []float64, idx []int, acf Autocorrelation) float64 {
  sum      := 0.0
  variance := float64(len(idx))

  for i := 0; i < len(idx); i++ {
    sum += z[idx[i]]
    for j := i+1; j < len(idx); j++ {
      d := positions[idx[j]] - positions[idx[i]]
      if d < 0 {
        d = -d
      }
      variance += 2.0*acf.Correlation(d)
    }
  }
  normal := distuv.Normal{Mu: 0.0, Sigma: math.Sqrt(variance)}
  return clampUnit(normal.CDF(sum))
}

/* -------------------------------------------------------------------------- */

// First combination pass on a single chromosome: for every probe,
// combine the statistics of all probes within window base pairs of its
// position. Positions must be sorted. A probe with no neighbor in the
// window keeps its own p-value unchanged. The result is aligned with
// the input; all values lie in [0,1].
func combineWindow(positions []int, pvalues []float64, acf Autocorrelation, window int) []float64 {
  n := len(positions)
  z := normalQuantiles(pvalues)
  r := make([]float64, n)

  lo := 0
  hi := 0
  for i := 0; i < n; i++ {
    for lo < n && positions[lo] < positions[i]-window {
      lo++
    }
    if hi < lo {
      hi = lo
    }
    for hi+1 < n && positions[hi+1] <= positions[i]+window {
      hi++
    }
    if lo == hi {
      // isolated probe, nothing to combine
      r[i] = pvalues[i]
      continue
    }
    idx := make([]int, 0, hi-lo+1)
    for j := lo; j <= hi; j++ {
      idx = append(idx, j)
    }
    r[i] = combineStats(positions, z, idx, acf)
  }
  return r
}

// Second combination pass on a single chromosome: combine the
// statistics of all probes located within [from, to] (inclusive). A
// span containing a single probe keeps that probe's p-value. A span
// containing no probe yields one.
func combineSpan(positions []int, pvalues, z []float64, acf Autocorrelation, from, to int) float64 {
  idx := []int{}
  for i := 0; i < len(positions); i++ {
    if positions[i] >= from && positions[i] <= to {
      idx = append(idx, i)
    }
  }
  switch len(idx) {
  case 0:
    return 1.0
  case 1:
    return pvalues[idx[0]]
  }
  return combineStats(positions, z, idx, acf)
}

/* -------------------------------------------------------------------------- */

// Run the first combination pass over all chromosomes. The result is
// aligned with the input probes, which must be sorted.
func CombineProbes(probes Probes, acf Autocorrelation, window int) []float64 {
  if !probes.IsSorted() {
    panic("CombineProbes(): probes are not sorted!")
  }
  r := make([]float64, probes.Length())

  indices := probes.SeqnameIndices()
  for _, seqname := range probes.SeqnameList() {
    idx := indices[seqname]
    positions := make([]int,     len(idx))
    pvalues   := make([]float64, len(idx))
    for i := 0; i < len(idx); i++ {
      positions[i] = probes.Positions[idx[i]]
      pvalues  [i] = probes.Pvalues  [idx[i]]
    }
    combined := combineWindow(positions, pvalues, acf, window)
    for i := 0; i < len(idx); i++ {
      r[idx[i]] = combined[i]
    }
  }
  return r
}
