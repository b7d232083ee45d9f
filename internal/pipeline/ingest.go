package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"bookgen/internal/model"
	"bookgen/pkg/utils"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// RecordSource yields raw records one at a time; Next returns io.EOF when done.
type RecordSource interface {
	Next() (model.RawRecord, error)
}

// CSVSource streams records from a header-first CSV file
type CSVSource struct {
	path    string
	file    io.Closer
	reader  *csv.Reader
	headers []string
}

// OpenCSV opens path for streaming and reads its header.
func OpenCSV(path string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	src, err := NewCSVSource(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	src.path = path
	src.file = file
	return src, nil
}

// NewCSVSource reads the header from r. Invalid UTF-8 sequences in r are
// dropped, and the header must name every required column.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	csvReader := csv.NewReader(transform.NewReader(r, permissiveUTF8()))
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.ReuseRecord = true

	raw, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("failed to read CSV header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = utils.CleanHeader(h)
	}
	if missing := missingColumns(headers); len(missing) > 0 {
		return nil, missingColumnsError(missing)
	}

	return &CSVSource{reader: csvReader, headers: headers}, nil
}

// Headers returns the cleaned header row
func (s *CSVSource) Headers() []string {
	return s.headers
}

// Next returns the next row keyed by header. Short rows simply lack the
// trailing columns; extra fields are ignored.
func (s *CSVSource) Next() (model.RawRecord, error) {
	record, err := s.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("CSV read error: %w", err)
	}

	rec := make(model.RawRecord, len(s.headers))
	for i, h := range s.headers {
		if i < len(record) {
			rec[h] = record[i]
		}
	}
	return rec, nil
}

// Close releases the underlying file, if any.
func (s *CSVSource) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// permissiveUTF8 replaces ill-formed sequences with U+FFFD and then removes
// every U+FFFD, so broken bytes vanish from the stream instead of failing it.
func permissiveUTF8() transform.Transformer {
	return transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}
