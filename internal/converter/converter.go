package converter

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/nconklindev/tabconv/internal/logger"
	"github.com/nconklindev/tabconv/internal/types"
)

var (
	// ErrNoFilesystemProvided happens when no filesystem is provided.
	ErrNoFilesystemProvided = errors.New("no filesystem provided")

	// ErrNoTableProvided happens when no conversion table is provided.
	ErrNoTableProvided = errors.New("no conversion table provided")
)

// Options controls how a Converter writes output files.
type Options struct {
	// Overwrite replaces an existing output file instead of failing.
	Overwrite bool
}

// Reporter records the outcome of each conversion.
type Reporter interface {
	ConversionFinished(pair Pair, kind Kind, elapsed time.Duration, rows int)
}

// Request is a single conversion asked for by the user.
type Request struct {
	SourcePath string
	Source     Extension
	Target     Extension
}

// NewRequest derives the source extension from path.
func NewRequest(path string, target Extension) (Request, error) {
	if path == "" {
		return Request{}, sourceError(ErrFileNotFound, path, errors.New("empty source path"))
	}

	return Request{
		SourcePath: path,
		Source:     SourceExtension(path),
		Target:     target,
	}, nil
}

// Pair returns the dispatch key of the request.
func (r Request) Pair() Pair {
	return Pair{Source: r.Source, Target: r.Target}
}

// OutputPath returns where the converted file is written.
func (r Request) OutputPath() string {
	return OutputPath(r.SourcePath, r.Source, r.Target)
}

// Converter executes conversion requests against a filesystem.
type Converter struct {
	fs       afero.Fs
	table    *ConversionTable
	opts     Options
	reporter Reporter

	log logger.Log
}

// New creates a converter. A nil reporter disables reporting.
func New(
	fs afero.Fs,
	table *ConversionTable,
	opts Options,
	reporter Reporter,
	log logger.Log,
) (*Converter, error) {
	if fs == nil {
		return nil, ErrNoFilesystemProvided
	}

	if table == nil {
		return nil, ErrNoTableProvided
	}

	if reporter == nil {
		reporter = nopReporter{}
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Converter{
		fs:       fs,
		table:    table,
		opts:     opts,
		reporter: reporter,
		log:      log.WithField(logger.FieldPackage, "converter"),
	}, nil
}

// Table returns the conversion table used by the converter.
func (c *Converter) Table() *ConversionTable {
	return c.table
}

// Resolve looks up the operation for a pair without touching any file.
func (c *Converter) Resolve(source, target Extension) (Operation, error) {
	return c.table.Resolve(source, target)
}

// Convert converts the file at path into the target format and writes it
// next to the source. The result is returned only once the output file is
// confirmed on disk.
func (c *Converter) Convert(path string, target Extension) (*types.ConversionResult, error) {
	req, err := NewRequest(path, target)
	if err != nil {
		return nil, err
	}

	op, err := c.table.Resolve(req.Source, req.Target)
	if err != nil {
		c.log.WithFields(logger.Fields{
			logger.FieldFunction: "converter.Convert",
			"source":             path,
			"pair":               req.Pair().String(),
		}).Warn("Refused unsupported conversion.")
		c.reporter.ConversionFinished(req.Pair(), KindOf(err), 0, 0)
		return nil, err
	}

	return c.Execute(req, op)
}

// Execute runs a resolved operation for the request.
func (c *Converter) Execute(req Request, op Operation) (*types.ConversionResult, error) {
	startTime := time.Now()
	log := c.log.WithFields(logger.Fields{
		logger.FieldFunction: "converter.Execute",
		"source":             req.SourcePath,
		"pair":               req.Pair().String(),
	})
	log.Debug("Converting file.")

	result, err := c.execute(req, op)
	elapsed := time.Since(startTime)

	if err != nil {
		log.Error(err, "Conversion failed.")
		c.reporter.ConversionFinished(req.Pair(), KindOf(err), elapsed, 0)
		return nil, err
	}

	log.WithFields(logger.Fields{
		"output": result.OutputFile,
		"rows":   result.RowsProcessed,
		"bytes":  result.BytesWritten,
	}).Info("File converted.")
	c.reporter.ConversionFinished(req.Pair(), KindNone, elapsed, result.RowsProcessed)

	return result, nil
}

func (c *Converter) execute(req Request, op Operation) (*types.ConversionResult, error) {
	data, err := afero.ReadFile(c.fs, req.SourcePath)
	if err != nil {
		return nil, sourceError(classifyReadError(err), req.SourcePath, err)
	}

	if err := sniff(data, req.Source); err != nil {
		return nil, sourceError(ErrMalformedInput, req.SourcePath, err)
	}

	table, err := op.Decode(data)
	if err != nil {
		return nil, sourceError(ErrMalformedInput, req.SourcePath, err)
	}

	c.log.WithFields(logger.Fields{
		logger.FieldFunction: "converter.execute",
		"source":             req.SourcePath,
		"columns":            table.Width(),
		"rows":               len(table.Rows),
	}).Trace("Decoded source file.")

	outputPath := req.OutputPath()
	written, err := c.write(op, table, outputPath)
	if err != nil {
		return nil, err
	}

	return &types.ConversionResult{
		InputFile:     req.SourcePath,
		OutputFile:    outputPath,
		Headers:       table.Headers,
		RowsProcessed: len(table.Rows),
		BytesWritten:  written,
	}, nil
}

// write encodes the table into a temporary sibling of outputPath and renames
// it into place, so a failed conversion never leaves a partial output file.
func (c *Converter) write(op Operation, table *types.Table, outputPath string) (int64, error) {
	if !c.opts.Overwrite {
		exists, err := afero.Exists(c.fs, outputPath)
		if err != nil {
			return 0, targetError(nil, outputPath, err)
		}
		if exists {
			return 0, targetError(ErrTargetExists, outputPath, nil)
		}
	}

	tmpPath := filepath.Join(
		filepath.Dir(outputPath),
		"."+filepath.Base(outputPath)+"."+uuid.NewString()+".tmp",
	)

	f, err := c.fs.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, targetError(classifyWriteError(err), outputPath, err)
	}

	if err := encode(f, op, table); err != nil {
		c.remove(tmpPath)
		return 0, targetError(classifyWriteError(err), outputPath, err)
	}

	if err := c.fs.Rename(tmpPath, outputPath); err != nil {
		c.remove(tmpPath)
		return 0, targetError(classifyWriteError(err), outputPath, err)
	}

	info, err := c.fs.Stat(outputPath)
	if err != nil {
		return 0, targetError(nil, outputPath, errors.Wrap(err, "output file missing after write"))
	}

	return info.Size(), nil
}

// encode writes the table into f and closes it.
func encode(f afero.File, op Operation, table *types.Table) (err error) {
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.WithStack(closeErr)
		}
	}()

	return op.Encode(f, table)
}

func (c *Converter) remove(path string) {
	if err := c.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		c.log.WithField("path", path).Error(err, "Failed to remove temporary file.")
	}
}

func classifyReadError(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrFileNotFound
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	default:
		return nil
	}
}

func classifyWriteError(err error) error {
	if errors.Is(err, os.ErrPermission) {
		return ErrPermissionDenied
	}
	return nil
}

type nopReporter struct{}

func (nopReporter) ConversionFinished(Pair, Kind, time.Duration, int) {}
