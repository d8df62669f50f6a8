// Package reader loads tabular data files into record datasets.
//
// Supported inputs:
//   - delimited text with a header row (CSV by default, TSV for .tsv)
//   - Apache Parquet (.parquet)
//
// Either may be compressed with gzip (.gz) or zstd (.zst, .zstd); the
// format is then chosen by the extension that precedes the compression
// suffix, e.g. "data.csv.gz" or "data.parquet.zst".
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-kit/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/vegasq/tabcat/internal/record"
)

// ErrInvalidDelimiter is returned when the configured field delimiter
// cannot separate CSV fields.
var ErrInvalidDelimiter = errors.New("invalid delimiter")

// Options controls how a file is loaded.
type Options struct {
	// Delimiter separates fields of delimited text. Zero selects ','
	// (or '\t' for .tsv files).
	Delimiter rune

	// Logger receives debug diagnostics. Nil disables logging.
	Logger log.Logger
}

type format int

const (
	formatDelimited format = iota
	formatParquet
)

type compression int

const (
	compressionNone compression = iota
	compressionGzip
	compressionZstd
)

// Reader reads a tabular file into a dataset.
//
// It keeps the OS file handle and any decompressor so Close can release
// both.
type Reader struct {
	file        *os.File
	size        int64
	format      format
	compression compression
	src         io.Reader
	closers     []io.Closer
	delimiter   rune
	logger      log.Logger
}

// Open opens path for reading.
//
// The file is opened and, if compressed, wrapped in a decompressor.
// Errors from the file system are wrapped, so errors.Is(err,
// fs.ErrNotExist) still reports a missing file.
//
// Example:
//
//	r, err := Open("data.csv", Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func Open(path string, opts Options) (*Reader, error) {
	f, c, defaultDelim := detect(path)

	delim := opts.Delimiter
	if delim == 0 {
		delim = defaultDelim
	}
	if err := ValidateDelimiter(delim); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	r := &Reader{
		file:        file,
		size:        stat.Size(),
		format:      f,
		compression: c,
		src:         file,
		delimiter:   delim,
		logger:      logger,
	}

	switch c {
	case compressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		r.src = gz
		r.closers = append(r.closers, gz)
	case compressionZstd:
		dec, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		rc := dec.IOReadCloser()
		r.src = rc
		r.closers = append(r.closers, rc)
	}

	return r, nil
}

// ReadAll reads every row of the file into memory.
//
// The whole file is loaded at once, so this may not be suitable for
// very large inputs.
func (r *Reader) ReadAll() (record.Dataset, error) {
	switch r.format {
	case formatParquet:
		if r.compression == compressionNone {
			return readParquet(r.file, r.size)
		}
		return readParquetStream(r.src)
	default:
		return readDelimited(r.src, r.delimiter, r.logger)
	}
}

// Size returns the size of the file on disk, before decompression.
func (r *Reader) Size() int64 {
	return r.size
}

// Close releases the decompressor and the file handle.
func (r *Reader) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil

	if r.file != nil {
		if err := r.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.file = nil
	}
	return firstErr
}

// ReadFile opens path, reads all rows and closes it.
func ReadFile(path string, opts Options) (record.Dataset, error) {
	r, err := Open(path, opts)
	if err != nil {
		return nil, err
	}

	rows, readErr := r.ReadAll()
	closeErr := r.Close()

	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return rows, nil
}

// ValidateDelimiter checks that d can separate CSV fields.
func ValidateDelimiter(d rune) error {
	if d == 0 || d == '"' || d == '\r' || d == '\n' || !utf8.ValidRune(d) || d == utf8.RuneError {
		return fmt.Errorf("%w: %q", ErrInvalidDelimiter, d)
	}
	return nil
}

// detect derives the file format, compression and default delimiter
// from the file name.
func detect(path string) (format, compression, rune) {
	name := strings.ToLower(filepath.Base(path))

	c := compressionNone
	switch ext := filepath.Ext(name); ext {
	case ".gz":
		c = compressionGzip
		name = strings.TrimSuffix(name, ext)
	case ".zst", ".zstd":
		c = compressionZstd
		name = strings.TrimSuffix(name, ext)
	}

	switch filepath.Ext(name) {
	case ".parquet":
		return formatParquet, c, ','
	case ".tsv":
		return formatDelimited, c, '\t'
	default:
		return formatDelimited, c, ','
	}
}
