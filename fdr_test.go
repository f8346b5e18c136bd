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

import   "math"
import   "testing"

/* -------------------------------------------------------------------------- */

func TestAdjustFdr1(t *testing.T) {

  p := []float64{0.005, 0.1, 0.5}
  q := AdjustFdr(p)
  r := []float64{0.015, 0.15, 0.5}

  for i := 0; i < len(q); i++ {
    if math.Abs(q[i]-r[i]) > 1e-12 {
      t.Error("TestAdjustFdr1 failed!")
    }
  }
}

func TestAdjustFdr2(t *testing.T) {

  // input order must be preserved
  p := []float64{0.5, 0.005, 0.1}
  q := AdjustFdr(p)
  r := []float64{0.5, 0.015, 0.15}

  for i := 0; i < len(q); i++ {
    if math.Abs(q[i]-r[i]) > 1e-12 {
      t.Error("TestAdjustFdr2 failed!")
    }
  }
}

func TestAdjustFdr3(t *testing.T) {

  // equal ratios collapse to the same adjusted value
  p := []float64{0.01, 0.02, 0.03, 0.04}
  q := AdjustFdr(p)

  for i := 0; i < len(q); i++ {
    if math.Abs(q[i]-0.04) > 1e-12 {
      t.Error("TestAdjustFdr3 failed!")
    }
  }
}

func TestAdjustFdr4(t *testing.T) {

  q := AdjustFdr([]float64{})

  if len(q) != 0 {
    t.Error("TestAdjustFdr4 failed!")
  }
}
