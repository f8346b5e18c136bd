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

import "bufio"
import "compress/gzip"
import "database/sql"
import "fmt"
import "os"
import "strconv"
import "strings"

import _ "github.com/go-sql-driver/mysql"

/* -------------------------------------------------------------------------- */

// Container for gene models, used to annotate detected regions with
// their nearest gene. Only the transcript extent is kept.
type Genes struct {
  Names    []string
  Seqnames []string
  From     []int
  To       []int
  index    map[string]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewGenes(names, seqnames []string, from, to []int) Genes {
  n := len(names)
  if len(seqnames) != n || len(from) != n || len(to) != n {
    panic("NewGenes(): invalid arguments!")
  }
  index := map[string]int{}
  for i := 0; i < n; i++ {
    index[names[i]] = i
  }
  return Genes{names, seqnames, from, to, index}
}

/* -------------------------------------------------------------------------- */

func (genes *Genes) Length() int {
  return len(genes.From)
}

func (genes *Genes) FindGene(name string) (int, bool) {
  i, ok := genes.index[name]
  return i, ok
}

/* import genes from ucsc
 * -------------------------------------------------------------------------- */

// Import genes from UCSC text files. The format is a whitespace
// separated table with columns: Name, Seqname, Strand, TranscriptStart,
// TranscriptEnd, CodingStart, and CodingEnd. The coding region and the
// strand are not used for annotation and dropped on import.
func ReadUCSCGenes(filename string) (Genes, error) {
  var genes Genes
  var scanner *bufio.Scanner
  // open file
  f, err := os.Open(filename)
  if err != nil {
    return genes, err
  }
  defer f.Close()
  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return genes, err
    }
    defer g.Close()
    scanner = bufio.NewScanner(g)
  } else {
    scanner = bufio.NewScanner(f)
  }
  names    := []string{}
  seqnames := []string{}
  txFrom   := []int{}
  txTo     := []int{}

  for scanner.Scan() {
    err = scanner.Err()
    if err != nil {
      return genes, err
    }
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) != 7 {
      return genes, fmt.Errorf("file must have seven columns")
    }
    t1, e := strconv.ParseInt(fields[3], 10, 64)
    if e != nil {
      return genes, e
    }
    t2, e := strconv.ParseInt(fields[4], 10, 64)
    if e != nil {
      return genes, e
    }
    names    = append(names,    fields[0])
    seqnames = append(seqnames, fields[1])
    txFrom   = append(txFrom,   int(t1))
    txTo     = append(txTo,     int(t2))
  }
  return NewGenes(names, seqnames, txFrom, txTo), nil
}

// Import genes directly from the UCSC public MySQL server, e.g. from
// assembly `hg19' and table `refGene'.
func ImportGenesFromUCSC(genome, table string) (Genes, error) {
  genes := Genes{}
  /* variables for storing a single database row */
  var i_name, i_seqname string
  var i_txFrom, i_txTo int

  names    := []string{}
  seqnames := []string{}
  txFrom   := []int{}
  txTo     := []int{}

  /* open connection */
  db, err := sql.Open("mysql",
    fmt.Sprintf("genome@tcp(genome-mysql.cse.ucsc.edu:3306)/%s", genome))
  if err != nil {
    return genes, err
  }
  defer db.Close()

  err = db.Ping()
  if err != nil {
    return genes, err
  }

  /* receive data */
  rows, err := db.Query(
    fmt.Sprintf("SELECT name, chrom, txStart, txEnd FROM %s", table))
  if err != nil {
    return genes, err
  }
  defer rows.Close()
  for rows.Next() {
    err := rows.Scan(&i_name, &i_seqname, &i_txFrom, &i_txTo)
    if err != nil {
      return genes, err
    }
    names    = append(names,    i_name)
    seqnames = append(seqnames, i_seqname)
    txFrom   = append(txFrom,   i_txFrom)
    txTo     = append(txTo,     i_txTo)
  }
  return NewGenes(names, seqnames, txFrom, txTo), nil
}
