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

import "sort"

/* -------------------------------------------------------------------------- */

// Benjamini-Hochberg step-up adjustment. The input is left unchanged;
// the result preserves the input order. Adjusted values are monotone
// along the sorted p-values and bounded by one.
func AdjustFdr(pvalues []float64) []float64 {
  n := len(pvalues)
  r := make([]float64, n)
  if n == 0 {
    return r
  }
  idx := make([]int, n)
  for i := 0; i < n; i++ {
    idx[i] = i
  }
  sort.SliceStable(idx, func(i, j int) bool {
    return pvalues[idx[i]] < pvalues[idx[j]]
  })
  // step up from the largest p-value
  q := 1.0
  for i := n-1; i >= 0; i-- {
    v := pvalues[idx[i]]*float64(n)/float64(i+1)
    if v < q {
      q = v
    }
    r[idx[i]] = q
  }
  return r
}
