package etl

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/verdantdata/doltgo/dolt"
)

// Column names InsertUniqueKey reserves.
const (
	hashIDColumn = "hash_id"
	countColumn  = "count"
)

// InsertUniqueKey adds a hash_id column derived from each row's values and
// collapses identical rows into one, recording the number of occurrences
// in a count column. Inputs that already contain either column are
// rejected.
func InsertUniqueKey(data *dolt.TableData) (*dolt.TableData, error) {
	for _, col := range data.Columns {
		if col == hashIDColumn || col == countColumn {
			return nil, fmt.Errorf("column %q conflicts with generated key columns", col)
		}
	}

	out := &dolt.TableData{
		Columns: append([]string{hashIDColumn}, append(append([]string(nil), data.Columns...), countColumn)...),
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(data.Rows))
	rows := make(map[string][]string)

	for _, row := range data.Rows {
		key := rowHash(row)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			rows[key] = row
		}
		counts[key]++
	}

	for _, key := range order {
		row := append([]string{key}, append(append([]string(nil), rows[key]...), strconv.Itoa(counts[key]))...)
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// rowHash computes the md5 of the concatenated row values.
func rowHash(row []string) string {
	sum := md5.Sum([]byte(strings.Join(row, "")))
	return hex.EncodeToString(sum[:])
}

// DropMalformedRows returns a stream transformer that discards CSV lines
// whose field count differs from the header's.
func DropMalformedRows() StreamTransformer {
	return func(r io.Reader) (io.Reader, error) {
		scanner := bufio.NewScanner(r)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return strings.NewReader(""), nil
		}

		header := scanner.Text()
		want := len(strings.Split(header, ","))

		var b strings.Builder
		b.WriteString(header)
		b.WriteByte('\n')

		for scanner.Scan() {
			line := scanner.Text()
			fields := strings.Split(line, ",")
			if len(fields) != want {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return strings.NewReader(b.String()), nil
	}
}

// DecodeStream returns a stream transformer that re-encodes the source
// from the given charset to UTF-8.
func DecodeStream(enc encoding.Encoding) StreamTransformer {
	return func(r io.Reader) (io.Reader, error) {
		return transform.NewReader(r, enc.NewDecoder()), nil
	}
}
