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

func summarizeTestData() (Probes, *BetaMatrix) {
  probes := NewProbes(
    []string {"cg1", "cg2", "cg3"},
    []string {"chr1", "chr1", "chr1"},
    []int    {100, 200, 5000},
    []float64{0.001, 0.002, 0.003})

  beta, err := NewBetaMatrix(
    []string{"s1", "s2", "s3", "s4"},
    []string{"cg1", "cg2", "cg3"},
    [][]float64{
      {0.10, 0.12, 0.90},
      {0.20, 0.22, 0.80},
      {0.30, 0.32, 0.70},
      {0.40, 0.42, 0.60}})
  if err != nil {
    panic(err)
  }
  return probes, beta
}

/* -------------------------------------------------------------------------- */

func TestSummarizeSingleMember(t *testing.T) {

  probes, beta := summarizeTestData()

  regions := NewRegions(
    []string{"chr1", "chr1"},
    []int   {100,  5000},
    []int   {200,  5000})
  regions = CombineRegions(regions, probes, zeroAcf(4, 310))

  dmrs, err := Summarize(regions, probes, beta, 1)
  if err != nil {
    t.Error("TestSummarizeSingleMember failed!")
  }
  if dmrs.Length() != 2 {
    t.Error("TestSummarizeSingleMember failed!")
  }
  // the single member region keeps the probe's own measurements
  for i := 0; i < dmrs.Length(); i++ {
    if dmrs.From[i] != 5000 {
      continue
    }
    expected := []float64{0.90, 0.80, 0.70, 0.60}
    for j := 0; j < len(expected); j++ {
      if dmrs.Scores[i][j] != expected[j] {
        t.Error("TestSummarizeSingleMember failed!")
      }
    }
  }
}

func TestSummarizeFilter(t *testing.T) {

  probes, beta := summarizeTestData()

  regions := NewRegions(
    []string{"chr1", "chr1"},
    []int   {100,  5000},
    []int   {200,  5000})
  regions = CombineRegions(regions, probes, zeroAcf(4, 310))

  dmrs, err := Summarize(regions, probes, beta, 2)
  if err != nil {
    t.Error("TestSummarizeFilter failed!")
  }
  // the single member region is dropped from the summarized output
  if dmrs.Length() != 1 {
    t.Error("TestSummarizeFilter failed!")
  }
  if dmrs.From[0] != 100 || dmrs.To[0] != 200 {
    t.Error("TestSummarizeFilter failed!")
  }
  if len(dmrs.Scores) != 1 || len(dmrs.Scores[0]) != 4 {
    t.Error("TestSummarizeFilter failed!")
  }
}

func TestSummarizePrincipalComponent(t *testing.T) {

  probes, beta := summarizeTestData()

  regions := NewRegions([]string{"chr1"}, []int{100}, []int{200})
  regions = CombineRegions(regions, probes, zeroAcf(4, 310))

  dmrs, err := Summarize(regions, probes, beta, 2)
  if err != nil {
    t.Error("TestSummarizePrincipalComponent failed!")
  }
  if len(dmrs.Members[0]) != 2 {
    t.Error("TestSummarizePrincipalComponent failed!")
  }
  // cg1 and cg2 are perfectly correlated; the scores must be centered,
  // strictly increasing (positive orientation of the first loading),
  // and equal to sqrt(2) times the centered values of cg1
  scores := dmrs.Scores[0]
  sum    := 0.0
  for i := 0; i < len(scores); i++ {
    sum += scores[i]
  }
  if math.Abs(sum) > 1e-12 {
    t.Error("TestSummarizePrincipalComponent failed!")
  }
  for i := 1; i < len(scores); i++ {
    if scores[i] <= scores[i-1] {
      t.Error("TestSummarizePrincipalComponent failed!")
    }
  }
  expected := math.Sqrt(2.0)*0.1
  if math.Abs((scores[1]-scores[0])-expected) > 1e-8 {
    t.Error("TestSummarizePrincipalComponent failed!")
  }
}

func TestSummarizeRoundTrip(t *testing.T) {

  probes, beta := summarizeTestData()

  regions := NewRegions(
    []string{"chr1", "chr1"},
    []int   {100,  5000},
    []int   {200,  5000})
  regions = CombineRegions(regions, probes, zeroAcf(4, 310))

  dmrs, err := Summarize(regions, probes, beta, 1)
  if err != nil {
    t.Error("TestSummarizeRoundTrip failed!")
  }
  // the member probe list must reproduce the stored member count
  for i := 0; i < dmrs.Length(); i++ {
    if len(dmrs.Members[i]) != dmrs.Nprobes[i] {
      t.Error("TestSummarizeRoundTrip failed!")
    }
  }
}

func TestSummarizeMissingProbe(t *testing.T) {

  probes, _ := summarizeTestData()

  beta, err := NewBetaMatrix(
    []string{"s1"},
    []string{"cg1"},
    [][]float64{{0.1}})
  if err != nil {
    t.Error("TestSummarizeMissingProbe failed!")
  }
  regions := NewRegions([]string{"chr1"}, []int{100}, []int{200})
  regions = CombineRegions(regions, probes, zeroAcf(4, 310))

  if _, err := Summarize(regions, probes, beta, 2); err == nil {
    t.Error("TestSummarizeMissingProbe failed!")
  }
}
