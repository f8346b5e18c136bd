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
import "io"
import "io/ioutil"
import "os"

/* -------------------------------------------------------------------------- */

func removeDuplicatesInt(s []int) []int {
  m := map[int]bool{}
  r := []int{}

  for _, v := range s {
    if m[v] != true {
      m[v] = true
      r    = append(r, v)
    }
  }
  return r
}

/* -------------------------------------------------------------------------- */

func iMin(a, b int) int {
  if a < b {
    return a
  } else {
    return b
  }
}

func iMax(a, b int) int {
  if a > b {
    return a
  } else {
    return b
  }
}

// Divide a by b, the result is rounded up.
func divIntUp(a, b int) int {
  return (a+b-1)/b
}

/* -------------------------------------------------------------------------- */

func writeFile(filename string, r io.Reader, compress bool) error {
  var buffer bytes.Buffer

  if compress {
    w := gzip.NewWriter(&buffer)
    io.Copy(w, r)
    w.Close()
  } else {
    w := bufio.NewWriter(&buffer)
    io.Copy(w, r)
    w.Flush()
  }
  return ioutil.WriteFile(filename, buffer.Bytes(), 0666)
}

func isGzip(filename string) bool {

  f, err := os.Open(filename)
  if err != nil {
    return false
  }
  defer f.Close()

  b := make([]byte, 2)
  n, err := f.Read(b)
  if err != nil {
    return false
  }

  if n == 2 && b[0] == 31 && b[1] == 139 {
    return true
  }
  return false
}
