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

import   "fmt"
import   "testing"

/* -------------------------------------------------------------------------- */

// a cluster of three significant probes and isolated background probes
func detectionTestData() Probes {
  names     := []string {"cg1", "cg2", "cg3"}
  seqnames  := []string {"chr1", "chr1", "chr1"}
  positions := []int    {1000, 1100, 1200}
  pvalues   := []float64{1e-6, 1e-6, 1e-6}

  for i := 0; i < 10; i++ {
    names     = append(names,     fmt.Sprintf("bg%d", i+1))
    seqnames  = append(seqnames,  "chr1")
    positions = append(positions, 100000+i*5000)
    pvalues   = append(pvalues,   0.5)
  }
  return NewProbes(names, seqnames, positions, pvalues)
}

/* -------------------------------------------------------------------------- */

func TestDetectRegions(t *testing.T) {

  probes := detectionTestData()

  detection, err := DetectRegions(probes, DefaultParameters())
  if err != nil {
    t.Error("TestDetectRegions failed!")
  }
  if len(detection.Combined) != probes.Length() {
    t.Error("TestDetectRegions failed!")
  }
  for i := 0; i < len(detection.Combined); i++ {
    if detection.Combined[i] < 0.0 || detection.Combined[i] > 1.0 {
      t.Error("TestDetectRegions failed!")
    }
  }
  // background probes are isolated and keep their p-value
  for i := 0; i < detection.Probes.Length(); i++ {
    if detection.Probes.Positions[i] >= 100000 && detection.Combined[i] != 0.5 {
      t.Error("TestDetectRegions failed!")
    }
  }
  regions := detection.Regions
  if regions.Length() != 1 {
    t.Error("TestDetectRegions failed!")
  }
  if regions.Seqnames[0] != "chr1" || regions.From[0] != 1000 || regions.To[0] != 1200 {
    t.Error("TestDetectRegions failed!")
  }
  if regions.Nprobes[0] != 3 {
    t.Error("TestDetectRegions failed!")
  }
  if regions.Pvalues[0] >= 0.01 || regions.Qvalues[0] >= 0.01 {
    t.Error("TestDetectRegions failed!")
  }
}

func TestDetectRegionsParallel(t *testing.T) {

  probes := detectionTestData()

  parameters := DefaultParameters()
  r1, err := DetectRegions(probes, parameters)
  if err != nil {
    t.Error("TestDetectRegionsParallel failed!")
  }
  // the number of workers must not change the result
  parameters.Threads = 4
  r2, err := DetectRegions(probes, parameters)
  if err != nil {
    t.Error("TestDetectRegionsParallel failed!")
  }
  if len(r1.Combined) != len(r2.Combined) {
    t.Error("TestDetectRegionsParallel failed!")
  }
  for i := 0; i < len(r1.Combined); i++ {
    if r1.Combined[i] != r2.Combined[i] {
      t.Error("TestDetectRegionsParallel failed!")
    }
  }
  if r1.Regions.Length() != r2.Regions.Length() {
    t.Error("TestDetectRegionsParallel failed!")
  }
}

func TestDetectRegionsEmpty(t *testing.T) {

  detection, err := DetectRegions(NewEmptyProbes(), DefaultParameters())
  if err != nil {
    t.Error("TestDetectRegionsEmpty failed!")
  }
  if len(detection.Combined) != 0 || detection.Regions.Length() != 0 {
    t.Error("TestDetectRegionsEmpty failed!")
  }
}

func TestDetectRegionsInvalid(t *testing.T) {

  probes := NewProbes(
    []string {"cg1"},
    []string {"chr1"},
    []int    {100},
    []float64{0.0})

  if _, err := DetectRegions(probes, DefaultParameters()); err == nil {
    t.Error("TestDetectRegionsInvalid failed!")
  }
  parameters := DefaultParameters()
  parameters.BinSize = 0
  if _, err := DetectRegions(detectionTestData(), parameters); err == nil {
    t.Error("TestDetectRegionsInvalid failed!")
  }
}

func TestDetectAndSummarize(t *testing.T) {

  probes := detectionTestData()

  samples := []string{"s1", "s2", "s3", "s4"}
  columns := probes.Names
  values  := make([][]float64, len(samples))
  for i := 0; i < len(samples); i++ {
    values[i] = make([]float64, len(columns))
    for j := 0; j < len(columns); j++ {
      values[i][j] = 0.1*float64(i+1) + 0.01*float64(j)
    }
  }
  beta, err := NewBetaMatrix(samples, columns, values)
  if err != nil {
    t.Error("TestDetectAndSummarize failed!")
  }
  detection, dmrs, err := DetectAndSummarize(probes, beta, DefaultParameters())
  if err != nil {
    t.Error("TestDetectAndSummarize failed!")
  }
  if detection.Regions.Length() != 1 || dmrs.Length() != 1 {
    t.Error("TestDetectAndSummarize failed!")
  }
  if len(dmrs.Members[0]) != 3 {
    t.Error("TestDetectAndSummarize failed!")
  }
  if len(dmrs.Scores[0]) != len(samples) {
    t.Error("TestDetectAndSummarize failed!")
  }
  m := dmrs.ScoreMatrix()
  if len(m) != len(samples) || len(m[0]) != 1 {
    t.Error("TestDetectAndSummarize failed!")
  }
}
