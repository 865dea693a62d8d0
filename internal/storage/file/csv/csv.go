// Package csv imports customer feature rows from csv files.
// The first row is the header, the first column the customer identifier.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/drakos74/free-segment/internal/model"
)

// EmptyErr is returned for files without a header row.
var EmptyErr = errors.New("empty file")

// Table holds the imported customer rows.
type Table struct {
	// Header names the feature columns, excluding the identifier column.
	Header   []string
	IDs      []string
	Features model.Matrix
}

// Import reads the given csv file.
func Import(file string) (Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return Table{}, fmt.Errorf("could not open '%s': %w", file, err)
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Read parses the csv rows from the given reader.
// Rows with non numeric features fail with model.InvalidDataErr.
func Read(in io.Reader) (Table, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return Table{}, EmptyErr
	} else if err != nil {
		return Table{}, fmt.Errorf("could not read header: %w", err)
	}
	if len(header) < 2 {
		return Table{}, fmt.Errorf("header needs an id and at least one feature column: %w", model.InvalidDataErr)
	}

	table := Table{
		Header:   header[1:],
		IDs:      make([]string, 0),
		Features: make(model.Matrix, 0),
	}
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return Table{}, fmt.Errorf("could not read line %d: %s: %w", line, err.Error(), model.InvalidDataErr)
		}
		v := make(model.Vector, len(record)-1)
		for j, s := range record[1:] {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return Table{}, fmt.Errorf("line %d column '%s' is not numeric: %w", line, table.Header[j], model.InvalidDataErr)
			}
			v[j] = f
		}
		table.IDs = append(table.IDs, record[0])
		table.Features = append(table.Features, v)
	}
	return table, nil
}
