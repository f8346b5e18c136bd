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

import "bufio"
import "bytes"
import "compress/gzip"
import "fmt"
import "io"
import "os"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Read probes from a whitespace separated table. The first line must be
// a header naming the columns; the columns `name', `seqnames',
// `position', and `pvalue' are required, any further column is ignored.
func (probes *Probes) ReadTable(r io.Reader) error {
  scanner := bufio.NewScanner(r)

  colName     := -1
  colSeqname  := -1
  colPosition := -1
  colPvalue   := -1

  // scan header
  if scanner.Scan() {
    fields := strings.Fields(scanner.Text())
    for i := 0; i < len(fields); i++ {
      switch fields[i] {
      case "name":
        colName = i
      case "seqnames":
        colSeqname = i
      case "position":
        colPosition = i
      case "pvalue":
        colPvalue = i
      }
    }
  }
  if colName == -1 {
    return fmt.Errorf("is missing a name column")
  }
  if colSeqname == -1 {
    return fmt.Errorf("is missing a seqnames column")
  }
  if colPosition == -1 {
    return fmt.Errorf("is missing a position column")
  }
  if colPvalue == -1 {
    return fmt.Errorf("is missing a pvalue column")
  }
  // scan data
  for i := 2; scanner.Scan(); i++ {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) <= colName || len(fields) <= colSeqname ||
       len(fields) <= colPosition || len(fields) <= colPvalue {
      return fmt.Errorf("line %d has not enough columns", i)
    }
    t1, e := strconv.ParseInt(fields[colPosition], 10, 64)
    if e != nil {
      return fmt.Errorf("parsing position `%s' at line %d failed", fields[colPosition], i)
    }
    t2, e := strconv.ParseFloat(fields[colPvalue], 64)
    if e != nil {
      return fmt.Errorf("parsing p-value `%s' at line %d failed", fields[colPvalue], i)
    }
    if !(t2 > 0.0) || t2 > 1.0 {
      return fmt.Errorf("p-value `%s' at line %d is not in the interval (0,1]", fields[colPvalue], i)
    }
    probes.Names     = append(probes.Names,     fields[colName])
    probes.Seqnames  = append(probes.Seqnames,  fields[colSeqname])
    probes.Positions = append(probes.Positions, int(t1))
    probes.Pvalues   = append(probes.Pvalues,   t2)
  }
  return nil
}

// Import probes from a file. The file may be gzip compressed.
func (probes *Probes) ImportTable(filename string) error {
  var r io.Reader

  f, err := os.Open(filename)
  if err != nil {
    return err
  }
  defer f.Close()

  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return err
    }
    defer g.Close()
    r = g
  } else {
    r = f
  }
  if err := probes.ReadTable(r); err != nil {
    return fmt.Errorf("reading table `%s' failed: %v", filename, err)
  }
  return nil
}

/* -------------------------------------------------------------------------- */

// Export probes as a table. The first line contains the header of
// the table.
func (probes *Probes) WriteTable(w io.Writer, header bool) error {
  // print header
  if header {
    if _, err := fmt.Fprintf(w, "%14s %14s %12s %14s", "name", "seqnames", "position", "pvalue"); err != nil {
      return err
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  // print data
  for i := 0; i < probes.Length(); i++ {
    if _, err := fmt.Fprintf(w, "%14s", probes.Names[i]); err != nil {
      return err
    }
    if _, err := fmt.Fprintf(w, " %14s", probes.Seqnames[i]); err != nil {
      return err
    }
    if _, err := fmt.Fprintf(w, " %12d", probes.Positions[i]); err != nil {
      return err
    }
    if _, err := fmt.Fprintf(w, " %14e", probes.Pvalues[i]); err != nil {
      return err
    }
    if _, err := fmt.Fprintf(w, "\n"); err != nil {
      return err
    }
  }
  return nil
}

func (probes *Probes) ExportTable(filename string, header, compress bool) error {
  var buffer bytes.Buffer

  w := bufio.NewWriter(&buffer)
  if err := probes.WriteTable(w, header); err != nil {
    return err
  }
  w.Flush()

  return writeFile(filename, &buffer, compress)
}
