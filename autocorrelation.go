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

import "fmt"
import "math"

import "gonum.org/v1/gonum/stat"
import "gonum.org/v1/gonum/stat/distuv"

/* -------------------------------------------------------------------------- */

// Autocorrelation of test statistics between neighboring probes,
// estimated on the standard normal quantile scale and aggregated in
// distance bins of width BinSize. Correlations[0] holds the estimate
// for the nearest bin [0, BinSize). TestPvalues holds the p-value of a
// one-sided test for positive correlation within each bin; bins with
// fewer than three probe pairs are recorded as zero correlation with
// test p-value one. Pairs holds the number of probe pairs per bin.
type Autocorrelation struct {
  BinSize      int
  Correlations []float64
  TestPvalues  []float64
  Pairs        []int
}

/* -------------------------------------------------------------------------- */

func (acf Autocorrelation) Bins() int {
  return len(acf.Correlations)
}

// Correlation estimate for the bin the given distance falls into. The
// estimated curve cannot be extrapolated, distances beyond the last bin
// are treated as uncorrelated.
func (acf Autocorrelation) Correlation(distance int) float64 {
  k := distance/acf.BinSize
  if k < 0 || k >= len(acf.Correlations) {
    return 0.0
  }
  return acf.Correlations[k]
}

func (acf Autocorrelation) String() string {
  s := fmt.Sprintf("Autocorrelation with %d bins of width %d:", acf.Bins(), acf.BinSize)
  for i := 0; i < acf.Bins(); i++ {
    s += fmt.Sprintf("\n  [%6d,%6d): correlation %8.5f [n=%d, p=%.3e]",
      i*acf.BinSize, (i+1)*acf.BinSize, acf.Correlations[i], acf.Pairs[i], acf.TestPvalues[i])
  }
  return s
}

/* lagged pair collection
 * -------------------------------------------------------------------------- */

// Probe pairs assigned to distance bins. The two quantile series of a
// bin are correlated against each other to estimate the bin's
// autocorrelation.
type binnedPairs struct {
  x [][]float64
  y [][]float64
}

func newBinnedPairs(bins int) binnedPairs {
  return binnedPairs{make([][]float64, bins), make([][]float64, bins)}
}

func (pairs *binnedPairs) append(other binnedPairs) {
  for k := 0; k < len(pairs.x); k++ {
    pairs.x[k] = append(pairs.x[k], other.x[k]...)
    pairs.y[k] = append(pairs.y[k], other.y[k]...)
  }
}

// Collect lagged probe pairs on a single chromosome. Positions must be
// sorted. For increasing lags all pairs with distance less than the
// cutoff are assigned to their distance bin; the lag loop stops once no
// pair satisfies the distance constraint.
func collectPairs(positions []int, z []float64, distCutoff, binSize int) binnedPairs {
  pairs := newBinnedPairs(divIntUp(distCutoff, binSize))

  for lag := 1; lag < len(positions); lag++ {
    found := false
    for i := 0; i+lag < len(positions); i++ {
      d := positions[i+lag] - positions[i]
      if d >= distCutoff {
        continue
      }
      found = true
      k := d/binSize
      pairs.x[k] = append(pairs.x[k], z[i])
      pairs.y[k] = append(pairs.y[k], z[i+lag])
    }
    if !found {
      break
    }
  }
  return pairs
}

/* -------------------------------------------------------------------------- */

// Transform p-values to standard normal quantiles. On this scale
// summing statistics of independent tests is exact (Stouffer's
// method), which makes the downstream variance correction valid.
func normalQuantiles(pvalues []float64) []float64 {
  normal := distuv.Normal{Mu: 0.0, Sigma: 1.0}
  z := make([]float64, len(pvalues))
  for i := 0; i < len(pvalues); i++ {
    z[i] = normal.Quantile(pvalues[i])
  }
  return z
}

// One-sided test for positive correlation between x and y. Returns the
// correlation estimate and the p-value of a t-test with n-2 degrees of
// freedom. Bins with fewer than three pairs or with degenerate series
// cannot be tested and count as zero correlation.
func correlationTest(x, y []float64) (float64, float64) {
  n := len(x)
  if n < 3 {
    return 0.0, 1.0
  }
  r := stat.Correlation(x, y, nil)
  if math.IsNaN(r) {
    return 0.0, 1.0
  }
  var t float64
  if r >= 1.0 {
    t = math.Inf(1)
  } else
  if r <= -1.0 {
    t = math.Inf(-1)
  } else {
    t = r*math.Sqrt(float64(n-2)/(1.0 - r*r))
  }
  studentsT := distuv.StudentsT{Mu: 0.0, Sigma: 1.0, Nu: float64(n-2)}
  return r, 1.0 - studentsT.CDF(t)
}

// Estimate per-bin correlations from collected pairs and optionally
// truncate the curve. The truncation forces all bins from the first
// non-significant one (test p-value above 0.05) onward to zero. This
// encodes the assumption that spatial correlation is non-increasing
// with distance; disable it to analyze data that violates the
// assumption.
func estimateFromPairs(pairs binnedPairs, binSize int, truncate bool) Autocorrelation {
  bins := len(pairs.x)
  acf  := Autocorrelation{
    BinSize     : binSize,
    Correlations: make([]float64, bins),
    TestPvalues : make([]float64, bins),
    Pairs       : make([]int,     bins)}

  for k := 0; k < bins; k++ {
    acf.Correlations[k], acf.TestPvalues[k] = correlationTest(pairs.x[k], pairs.y[k])
    acf.Pairs[k] = len(pairs.x[k])
  }
  if truncate {
    for k := 0; k < bins; k++ {
      if acf.TestPvalues[k] > 0.05 {
        for ; k < bins; k++ {
          acf.Correlations[k] = 0.0
        }
      }
    }
  }
  return acf
}

/* -------------------------------------------------------------------------- */

// Estimate the autocorrelation of test statistics between probes that
// are less than distCutoff base pairs apart, binned by distance in bins
// of width binSize. Pairs are collected per chromosome and aggregated
// into a single genome-wide estimate. Chromosomes with fewer than two
// probes within the cutoff contribute no pairs.
func EstimateAutocorrelation(probes Probes, distCutoff, binSize int, truncate bool) (Autocorrelation, error) {
  if distCutoff <= 0 || binSize <= 0 {
    return Autocorrelation{}, fmt.Errorf("invalid distance cutoff `%d' or bin size `%d'", distCutoff, binSize)
  }
  if err := probes.Validate(); err != nil {
    return Autocorrelation{}, err
  }
  if !probes.IsSorted() {
    probes = probes.Sort()
  }
  z     := normalQuantiles(probes.Pvalues)
  pairs := newBinnedPairs(divIntUp(distCutoff, binSize))

  indices := probes.SeqnameIndices()
  for _, seqname := range probes.SeqnameList() {
    idx := indices[seqname]
    positions := make([]int,     len(idx))
    quantiles := make([]float64, len(idx))
    for i := 0; i < len(idx); i++ {
      positions[i] = probes.Positions[idx[i]]
      quantiles[i] = z[idx[i]]
    }
    r := collectPairs(positions, quantiles, distCutoff, binSize)
    pairs.append(r)
  }
  return estimateFromPairs(pairs, binSize, truncate), nil
}
