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

// Detection of differentially methylated regions from per-probe
// p-values with a modified comb-p algorithm: probe statistics are
// combined over genomic windows with a variance correction estimated
// from the spatial autocorrelation of the data, significant probes are
// merged into candidate regions, and every region is re-tested over
// its full extent.
package dmrcomb

/* -------------------------------------------------------------------------- */

import "fmt"
import "runtime"

import "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

type Parameters struct {
  // distance cutoff for the autocorrelation estimate and for merging
  // neighboring significant probes [bp]
  DistCutoff int
  // width of the autocorrelation distance bins and of the first-pass
  // combination window [bp]
  BinSize int
  // FDR threshold selecting seed probes for region merging
  Seed float64
  // minimum number of member probes per summarized region
  MinProbes int
  // force the autocorrelation curve to zero past the first bin that is
  // not distinguishable from zero
  Truncate bool
  // number of threads for the per-chromosome combination phase
  Threads int
}

func DefaultParameters() Parameters {
  return Parameters{
    DistCutoff: 1000,
    BinSize   :  310,
    Seed      : 0.01,
    MinProbes :    2,
    Truncate  : true,
    Threads   :    1}
}

/* -------------------------------------------------------------------------- */

// Result of the region detection. Probes are sorted by chromosome and
// position; Combined holds the first-pass combined p-value for every
// probe, aligned with Probes. Regions is sorted by ascending combined
// p-value.
type Detection struct {
  Probes          Probes
  Combined        []float64
  Autocorrelation Autocorrelation
  Regions         Regions
}

/* -------------------------------------------------------------------------- */

// chromosome working set for the parallel phases
type chromosome struct {
  seqname   string
  indices   []int
  positions []int
  pvalues   []float64
}

func splitChromosomes(probes Probes) []chromosome {
  indices := probes.SeqnameIndices()
  result  := []chromosome{}
  for _, seqname := range probes.SeqnameList() {
    idx := indices[seqname]
    c := chromosome{
      seqname  : seqname,
      indices  : idx,
      positions: make([]int,     len(idx)),
      pvalues  : make([]float64, len(idx))}
    for i := 0; i < len(idx); i++ {
      c.positions[i] = probes.Positions[idx[i]]
      c.pvalues  [i] = probes.Pvalues  [idx[i]]
    }
    result = append(result, c)
  }
  return result
}

/* -------------------------------------------------------------------------- */

// Detect regions of locally concentrated signal. The computation has
// two phases: first, probe pairs are collected on every chromosome and
// joined into a single genome-wide autocorrelation estimate; second,
// probe statistics are combined per chromosome, which only reads the
// estimate and therefore runs fully parallel. Empty inputs and inputs
// where no probe passes the seed threshold yield an empty region set.
func DetectRegions(probes Probes, parameters Parameters) (Detection, error) {
  if parameters.DistCutoff <= 0 || parameters.BinSize <= 0 {
    return Detection{}, fmt.Errorf("invalid distance cutoff `%d' or bin size `%d'",
      parameters.DistCutoff, parameters.BinSize)
  }
  if err := probes.Validate(); err != nil {
    return Detection{}, err
  }
  probes = probes.Sort()

  threads := parameters.Threads
  if threads < 1 {
    threads = 1
  }
  if threads > runtime.NumCPU() {
    threads = runtime.NumCPU()
  }
  pool := threadpool.New(threads, 100*threads)

  chromosomes := splitChromosomes(probes)
  z           := normalQuantiles(probes.Pvalues)

  // phase one: collect lagged probe pairs on every chromosome and join
  // them into one autocorrelation estimate; the estimate must be
  // complete before any combination starts
  pairsList := make([]binnedPairs, len(chromosomes))
  g := pool.NewJobGroup()
  for i_, c_ := range chromosomes {
    c := c_
    i := i_
    pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      quantiles := make([]float64, len(c.indices))
      for j := 0; j < len(c.indices); j++ {
        quantiles[j] = z[c.indices[j]]
      }
      pairsList[i] = collectPairs(c.positions, quantiles, parameters.DistCutoff, parameters.BinSize)
      return nil
    })
  }
  pool.Wait(g)

  pairs := newBinnedPairs(divIntUp(parameters.DistCutoff, parameters.BinSize))
  for i := 0; i < len(pairsList); i++ {
    pairs.append(pairsList[i])
  }
  acf := estimateFromPairs(pairs, parameters.BinSize, parameters.Truncate)

  // phase two: first combination pass, independent per chromosome
  combined := make([]float64, probes.Length())
  g = pool.NewJobGroup()
  for _, c_ := range chromosomes {
    c := c_
    pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      r := combineWindow(c.positions, c.pvalues, acf, parameters.BinSize)
      for j := 0; j < len(c.indices); j++ {
        combined[c.indices[j]] = r[j]
      }
      return nil
    })
  }
  pool.Wait(g)

  // merge seed probes into candidate regions and re-test every region
  // over its full extent
  regions := MergeProbes(probes, combined, parameters.Seed, parameters.DistCutoff)
  regions = CombineRegions(regions, probes, acf)

  return Detection{
    Probes         : probes,
    Combined       : combined,
    Autocorrelation: acf,
    Regions        : regions}, nil
}

/* -------------------------------------------------------------------------- */

// Run detection and reduce the detected regions to representative
// vectors in one step.
func DetectAndSummarize(probes Probes, beta *BetaMatrix, parameters Parameters) (Detection, DMRs, error) {
  detection, err := DetectRegions(probes, parameters)
  if err != nil {
    return Detection{}, DMRs{}, err
  }
  dmrs, err := Summarize(detection.Regions, detection.Probes, beta, parameters.MinProbes)
  if err != nil {
    return Detection{}, DMRs{}, err
  }
  return detection, dmrs, nil
}
