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

package main

/* -------------------------------------------------------------------------- */

import   "fmt"
import   "log"
import   "os"
import   "strconv"
import   "strings"

import . "github.com/epistats/dmrcomb"

import   "github.com/montanaflynn/stats"
import   "github.com/pborman/getopt"

/* -------------------------------------------------------------------------- */

type SessionConfig struct {
  Parameters Parameters
  Verbose    int
}

/* -------------------------------------------------------------------------- */

func PrintStderr(config SessionConfig, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

/* -------------------------------------------------------------------------- */

func importProbes(config SessionConfig, filename string) Probes {
  probes := NewEmptyProbes()
  if filename == "" {
    if err := probes.ReadTable(os.Stdin); err != nil {
      log.Fatal(err)
    }
  } else {
    PrintStderr(config, 1, "Reading probe table `%s'... ", filename)
    if err := probes.ImportTable(filename); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  return probes
}

func importMatrix(config SessionConfig, filenameTable, filenameNpy, filenameSamples, filenameProbes string) *BetaMatrix {
  beta := &BetaMatrix{}
  if filenameNpy != "" {
    if filenameSamples == "" || filenameProbes == "" {
      log.Fatal("options --matrix-samples and --matrix-probes are required with --matrix-npy")
    }
    PrintStderr(config, 1, "Reading beta matrix `%s'... ", filenameNpy)
    if err := beta.ImportNpy(filenameNpy, filenameSamples, filenameProbes); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  } else {
    PrintStderr(config, 1, "Reading beta matrix `%s'... ", filenameTable)
    if err := beta.ImportTable(filenameTable); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  return beta
}

func importGenes(config SessionConfig, filename, ucsc string) Genes {
  if filename != "" {
    PrintStderr(config, 1, "Reading genes `%s'... ", filename)
    genes, err := ReadUCSCGenes(filename)
    if err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
    return genes
  }
  fields := strings.Split(ucsc, ":")
  if len(fields) != 2 {
    log.Fatalf("invalid UCSC specification `%s', expected `ASSEMBLY:TABLE'", ucsc)
  }
  PrintStderr(config, 1, "Importing genes from UCSC `%s'... ", ucsc)
  genes, err := ImportGenesFromUCSC(fields[0], fields[1])
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return genes
}

func exportRegions(config SessionConfig, regions Regions, filename string) {
  if filename == "" {
    if err := regions.WriteTable(os.Stdout, true); err != nil {
      log.Fatal(err)
    }
  } else {
    PrintStderr(config, 1, "Writing region table `%s'... ", filename)
    if err := regions.ExportTable(filename, true, false); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
}

/* -------------------------------------------------------------------------- */

func printSummary(config SessionConfig, detection Detection) {
  if config.Verbose < 1 || detection.Regions.Length() == 0 {
    return
  }
  widths := make([]float64, detection.Regions.Length())
  for i := 0; i < detection.Regions.Length(); i++ {
    widths[i] = float64(detection.Regions.Width(i))
  }
  mean,   _ := stats.Mean(widths)
  median, _ := stats.Median(widths)
  PrintStderr(config, 1, "Detected %d regions (mean width %.1f bp, median width %.1f bp)\n",
    detection.Regions.Length(), mean, median)
}

/* -------------------------------------------------------------------------- */

func dmrDetect(config SessionConfig, filenameIn, filenameOut string, options cliOptions) {
  probes := importProbes(config, filenameIn)

  if options.ExcludeChr != "" {
    probes = probes.FilterSeqnames(strings.Split(options.ExcludeChr, ","))
  }
  PrintStderr(config, 1, "Detecting regions... ")
  detection, err := DetectRegions(probes, config.Parameters)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  PrintStderr(config, 2, "%v\n", detection.Autocorrelation)
  printSummary(config, detection)

  regions := detection.Regions
  if options.Genes != "" || options.GenesUCSC != "" {
    genes := importGenes(config, options.Genes, options.GenesUCSC)
    regions.AnnotateNearest(genes)
  }
  exportRegions(config, regions, filenameOut)

  if options.Matrix == "" && options.MatrixNpy == "" {
    return
  }
  beta := importMatrix(config, options.Matrix, options.MatrixNpy, options.MatrixSamples, options.MatrixProbes)

  PrintStderr(config, 1, "Summarizing regions... ")
  dmrs, err := Summarize(regions, detection.Probes, beta, config.Parameters.MinProbes)
  if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  if options.DmrOutput != "" {
    exportRegions(config, dmrs.Regions, options.DmrOutput)
  }
  if options.Scores != "" {
    PrintStderr(config, 1, "Writing representative vectors `%s'... ", options.Scores)
    if err := dmrs.ExportScoreTable(options.Scores, false); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  if options.ScoresNpy != "" {
    PrintStderr(config, 1, "Writing representative vectors `%s'... ", options.ScoresNpy)
    if err := dmrs.ExportScoresNpy(options.ScoresNpy); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
  if options.Members != "" {
    PrintStderr(config, 1, "Writing member probes `%s'... ", options.Members)
    if err := dmrs.ExportMembers(options.Members, false); err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
  }
}

/* -------------------------------------------------------------------------- */

type cliOptions struct {
  Matrix        string
  MatrixNpy     string
  MatrixSamples string
  MatrixProbes  string
  DmrOutput     string
  Scores        string
  ScoresNpy     string
  Members       string
  ExcludeChr    string
  Genes         string
  GenesUCSC     string
}

func main() {

  config  := SessionConfig{}
  options := getopt.New()

  optInput     := options. StringLong("input",          0 , "",     "read probe table from file [default: stdin]")
  optOutput    := options. StringLong("output",         0 , "",     "write region table to file [default: stdout]")
  optMatrix    := options. StringLong("matrix",         0 , "",     "beta matrix as whitespace separated table")
  optMatrixNpy := options. StringLong("matrix-npy",     0 , "",     "beta matrix as numpy .npy file")
  optSamples   := options. StringLong("matrix-samples", 0 , "",     "sample names for --matrix-npy, one per line")
  optProbes    := options. StringLong("matrix-probes",  0 , "",     "probe names for --matrix-npy, one per line")
  optDmrOut    := options. StringLong("dmr-output",     0 , "",     "write summarized region table to file")
  optScores    := options. StringLong("scores",         0 , "",     "write representative vectors as table")
  optScoresNpy := options. StringLong("scores-npy",     0 , "",     "write representative vectors as numpy .npy file")
  optMembers   := options. StringLong("members",        0 , "",     "write region to member probe mapping to file")
  optDist      := options.    IntLong("dist-cutoff",    0 ,  1000,  "maximal distance for autocorrelation and merging [default: 1000]")
  optBin       := options.    IntLong("bin-size",       0 ,   310,  "autocorrelation bin size and combination window [default: 310]")
  optSeed      := options. StringLong("seed",           0 , "0.01", "FDR threshold selecting seed probes [default: 0.01]")
  optMin       := options.    IntLong("min-probes",     0 ,     2,  "minimal number of probes per summarized region [default: 2]")
  optThreads   := options.    IntLong("threads",        0 ,     1,  "number of threads")
  optNoTrunc   := options.   BoolLong("no-truncation",  0 ,         "keep non-significant autocorrelation bins")
  optExclude   := options. StringLong("exclude-chr",    0 , "",     "comma separated list of chromosomes to exclude (e.g. chrX,chrY)")
  optGenes     := options. StringLong("genes",          0 , "",     "annotate regions with genes from UCSC text file")
  optGenesDb   := options. StringLong("genes-ucsc",     0 , "",     "annotate regions with genes from UCSC MySQL (e.g. `hg19:refGene')")

  optVerbose   := options.CounterLong("verbose",       'v',         "verbose level [-v or -vv]")
  optHelp      := options.   BoolLong("help",          'h',         "print help")

  options.SetParameters("")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  seed, err := strconv.ParseFloat(*optSeed, 64)
  if err != nil {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Verbose    = *optVerbose
  config.Parameters = Parameters{
    DistCutoff: *optDist,
    BinSize   : *optBin,
    Seed      :  seed,
    MinProbes : *optMin,
    Truncate  : !*optNoTrunc,
    Threads   : *optThreads}

  cli := cliOptions{
    Matrix       : *optMatrix,
    MatrixNpy    : *optMatrixNpy,
    MatrixSamples: *optSamples,
    MatrixProbes : *optProbes,
    DmrOutput    : *optDmrOut,
    Scores       : *optScores,
    ScoresNpy    : *optScoresNpy,
    Members      : *optMembers,
    ExcludeChr   : *optExclude,
    Genes        : *optGenes,
    GenesUCSC    : *optGenesDb}

  dmrDetect(config, *optInput, *optOutput, cli)
}
