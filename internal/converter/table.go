package converter

import (
	"io"
	"sort"

	"github.com/nconklindev/tabconv/internal/types"
)

// Pair is the dispatch key of the conversion table.
type Pair struct {
	Source Extension
	Target Extension
}

func (p Pair) String() string {
	return string(p.Source) + " -> " + string(p.Target)
}

// Operation performs one specific conversion. Decode parses the source
// bytes into a table, Encode writes the table in the target format.
type Operation interface {
	Pair() Pair
	Decode(data []byte) (*types.Table, error)
	Encode(w io.Writer, t *types.Table) error
}

// Codec reads and writes one file format.
type Codec interface {
	Decode(data []byte) (*types.Table, error)
	Encode(w io.Writer, t *types.Table) error
}

type operation struct {
	pair   Pair
	source Codec
	target Codec
}

func (o *operation) Pair() Pair {
	return o.pair
}

func (o *operation) Decode(data []byte) (*types.Table, error) {
	return o.source.Decode(data)
}

func (o *operation) Encode(w io.Writer, t *types.Table) error {
	return o.target.Encode(w, t)
}

// NewOperation binds a source and a target codec to a pair.
func NewOperation(pair Pair, source, target Codec) Operation {
	return &operation{pair: pair, source: source, target: target}
}

// PairStatus describes a declared pair.
type PairStatus struct {
	Pair        Pair
	Implemented bool
}

// ConversionTable maps extension pairs to operations. Pairs may be declared
// without an operation; resolving them reports ErrNotImplemented.
type ConversionTable struct {
	operations map[Pair]Operation
	declared   map[Pair]bool
}

// NewConversionTable creates an empty table.
func NewConversionTable() *ConversionTable {
	return &ConversionTable{
		operations: make(map[Pair]Operation),
		declared:   make(map[Pair]bool),
	}
}

// CodecOptions tune the built-in codecs.
type CodecOptions struct {
	// TypedCells stores numeric looking text as spreadsheet numbers.
	TypedCells bool
}

// DefaultConversionTable returns the table of every supported conversion.
func DefaultConversionTable(opts CodecOptions) *ConversionTable {
	csvCodec := NewCSVCodec()
	xlsxCodec := NewXLSXCodec(opts.TypedCells)

	t := NewConversionTable()
	t.Register(NewOperation(Pair{CSV, XLSX}, csvCodec, xlsxCodec))
	t.Register(NewOperation(Pair{XLSX, CSV}, xlsxCodec, csvCodec))
	t.Register(NewOperation(Pair{XLSX, TXT}, xlsxCodec, csvCodec))

	// Text sources have no agreed layout yet.
	t.Declare(Pair{TXT, CSV})
	t.Declare(Pair{CSV, TXT})
	t.Declare(Pair{TXT, XLSX})

	return t
}

// Register adds an implemented operation.
func (t *ConversionTable) Register(op Operation) {
	t.operations[op.Pair()] = op
	t.declared[op.Pair()] = true
}

// Declare lists a pair as known but not implemented.
func (t *ConversionTable) Declare(pair Pair) {
	if _, ok := t.declared[pair]; !ok {
		t.declared[pair] = false
	}
}

// Resolve returns the operation registered for the pair.
func (t *ConversionTable) Resolve(source, target Extension) (Operation, error) {
	pair := Pair{Source: source, Target: target}

	if op, ok := t.operations[pair]; ok {
		return op, nil
	}
	if _, ok := t.declared[pair]; ok {
		return nil, unsupported(ErrNotImplemented, pair)
	}
	return nil, unsupported(nil, pair)
}

// Pairs returns every declared pair ordered by source then target.
func (t *ConversionTable) Pairs() []PairStatus {
	pairs := make([]PairStatus, 0, len(t.declared))
	for pair, implemented := range t.declared {
		pairs = append(pairs, PairStatus{Pair: pair, Implemented: implemented})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Pair.Source != pairs[j].Pair.Source {
			return pairs[i].Pair.Source < pairs[j].Pair.Source
		}
		return pairs[i].Pair.Target < pairs[j].Pair.Target
	})

	return pairs
}
