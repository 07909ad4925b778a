// Package csvimport parses the bulk stock import format: comma separated
// values with columns in fixed order [group_id, total, name, price, photo].
package csvimport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// Row is one usable data row of an import file. The first column only marks
// the row as data and carries no identity in this system.
type Row struct {
	Total int64
	Name  string
	Price decimal.Decimal
	Photo string
}

// Parse reads every data row from r. Rows whose first field is empty or does
// not parse as an integer are skipped as header or blank rows. A data row
// that fails field validation aborts the whole parse with ErrInvalidImport,
// as does input that is not valid CSV.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, shared.ErrInvalidImport
		}
		if len(record) == 0 {
			continue
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64); err != nil {
			// header or blank row
			continue
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (Row, error) {
	if len(record) < 4 {
		return Row{}, shared.ErrInvalidImport
	}

	total, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil || total <= 0 {
		return Row{}, shared.ErrInvalidImport
	}

	name := strings.TrimSpace(record[2])
	if name == "" {
		return Row{}, shared.ErrInvalidImport
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil || price.IsNegative() {
		return Row{}, shared.ErrInvalidImport
	}

	var photo string
	if len(record) > 4 {
		photo = strings.TrimSpace(record[4])
	}

	return Row{Total: total, Name: name, Price: price, Photo: photo}, nil
}
