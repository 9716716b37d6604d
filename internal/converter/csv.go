package converter

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/nconklindev/tabconv/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvCodec struct {
	comma rune
}

// NewCSVCodec returns the comma-delimited codec used for .csv and .txt.
func NewCSVCodec() Codec {
	return &csvCodec{comma: ','}
}

func (c *csvCodec) Decode(data []byte) (*types.Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.Comma = c.comma

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(records) == 0 {
		return nil, errors.New("empty file")
	}

	return &types.Table{
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}

func (c *csvCodec) Encode(w io.Writer, t *types.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = c.comma

	if err := writer.WriteAll(t.Records()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
