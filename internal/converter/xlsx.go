package converter

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/nconklindev/tabconv/internal/types"
)

// Spreadsheet numbers hold 15 significant digits; longer values stay text.
const maxNumericDigits = 15

type xlsxCodec struct {
	typedCells bool
}

// NewXLSXCodec returns the codec for .xlsx workbooks. Only the first
// worksheet is read; a single worksheet is written.
func NewXLSXCodec(typedCells bool) Codec {
	return &xlsxCodec{typedCells: typedCells}
}

func (c *xlsxCodec) Decode(data []byte) (*types.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(rows) == 0 {
		return nil, errors.New("empty worksheet")
	}

	// GetRows drops trailing empty cells, so rows can be ragged.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	return &types.Table{
		Headers: padRow(rows[0], width),
		Rows:    padRows(rows[1:], width),
	}, nil
}

func (c *xlsxCodec) Encode(w io.Writer, t *types.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)

	for i, record := range t.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.WithStack(err)
		}

		values := make([]interface{}, len(record))
		for j, value := range record {
			values[j] = value
			if c.typedCells && i > 0 {
				if number, ok := numericValue(value); ok {
					values[j] = number
				}
			}
		}

		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return errors.WithStack(err)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// numericValue returns the number s spells when formatting that number
// gives back s exactly, so the cell reads back as the same text.
func numericValue(s string) (interface{}, bool) {
	digits := strings.TrimPrefix(s, "-")
	digits = strings.Replace(digits, ".", "", 1)
	if digits == "" || len(digits) > maxNumericDigits {
		return nil, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, false
		}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == s {
			return i, true
		}
		return nil, false
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if strconv.FormatFloat(f, 'f', -1, 64) == s {
			return f, true
		}
	}

	return nil, false
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func padRows(rows [][]string, width int) [][]string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = padRow(row, width)
	}
	return padded
}
