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

import   "strings"
import   "testing"

/* -------------------------------------------------------------------------- */

func TestProbesSort(t *testing.T) {

  probes := NewProbes(
    []string {"cg1", "cg2", "cg3", "cg4"},
    []string {"chr10", "chr2", "chr2", "chr2"},
    []int    {100, 500, 100, 300},
    []float64{0.1, 0.2, 0.3, 0.4})
  probes = probes.Sort()

  // chr2 must come before chr10
  if probes.Seqnames[0] != "chr2" {
    t.Error("TestProbesSort failed!")
  }
  if probes.Names[0] != "cg3" || probes.Names[1] != "cg4" || probes.Names[2] != "cg2" {
    t.Error("TestProbesSort failed!")
  }
  if probes.Seqnames[3] != "chr10" {
    t.Error("TestProbesSort failed!")
  }
  if !probes.IsSorted() {
    t.Error("TestProbesSort failed!")
  }
}

func TestProbesFilterSeqnames(t *testing.T) {

  probes := NewProbes(
    []string {"cg1", "cg2", "cg3"},
    []string {"chr1", "chrX", "chr1"},
    []int    {100, 200, 300},
    []float64{0.1, 0.2, 0.3})
  probes = probes.FilterSeqnames([]string{"chrX", "chrY"})

  if probes.Length() != 2 {
    t.Error("TestProbesFilterSeqnames failed!")
  }
  if probes.Names[0] != "cg1" || probes.Names[1] != "cg3" {
    t.Error("TestProbesFilterSeqnames failed!")
  }
}

func TestProbesValidate(t *testing.T) {

  probes := NewProbes(
    []string {"cg1", "cg2"},
    []string {"chr1", "chr1"},
    []int    {100, 200},
    []float64{0.1, 0.0})

  if err := probes.Validate(); err == nil {
    t.Error("TestProbesValidate failed!")
  }
  probes.Pvalues[1] = 1.0
  if err := probes.Validate(); err != nil {
    t.Error("TestProbesValidate failed!")
  }
}

func TestProbesReadTable(t *testing.T) {

  table := "" +
    "name seqnames position pvalue\n" +
    "cg1  chr1     100      0.01\n"   +
    "cg2  chr1     200      0.5\n"

  probes := NewEmptyProbes()
  if err := probes.ReadTable(strings.NewReader(table)); err != nil {
    t.Error("TestProbesReadTable failed!")
  }
  if probes.Length() != 2 {
    t.Error("TestProbesReadTable failed!")
  }
  if probes.Names[1] != "cg2" || probes.Positions[1] != 200 {
    t.Error("TestProbesReadTable failed!")
  }
}

func TestProbesReadTableInvalid(t *testing.T) {

  table := "" +
    "name seqnames position pvalue\n" +
    "cg1  chr1     100      1.5\n"

  probes := NewEmptyProbes()
  if err := probes.ReadTable(strings.NewReader(table)); err == nil {
    t.Error("TestProbesReadTableInvalid failed!")
  }
}

func TestProbesRemove(t *testing.T) {

  probes := NewProbes(
    []string {"cg1", "cg2", "cg3", "cg4"},
    []string {"chr1", "chr1", "chr1", "chr1"},
    []int    {100, 200, 300, 400},
    []float64{0.1, 0.2, 0.3, 0.4})
  probes = probes.Remove([]int{1, 3})

  if probes.Length() != 2 {
    t.Error("TestProbesRemove failed!")
  }
  if probes.Names[0] != "cg1" || probes.Names[1] != "cg3" {
    t.Error("TestProbesRemove failed!")
  }
}
