package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"bookgen/internal/model"
	"bookgen/pkg/utils"
)

// Sink receives accepted books in input order
type Sink interface {
	Write(book model.Book) error
	Close() error
}

// CSVSink streams books to a CSV file with model.OutputHeader as header
type CSVSink struct {
	Path   string
	file   io.Closer
	writer *csv.Writer
	count  int
}

// CreateCSV creates (or truncates) path, making parent directories as needed.
func CreateCSV(om *utils.OutputManager, path string) (*CSVSink, error) {
	full, err := om.PrepareFile(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	sink, err := NewCSVSink(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	sink.Path = full
	sink.file = file
	return sink, nil
}

// NewCSVSink writes the header to w and returns a sink over it.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write(model.OutputHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &CSVSink{writer: writer}, nil
}

// Write appends one row. Rows are buffered until Flush or Close.
func (s *CSVSink) Write(book model.Book) error {
	row := []string{
		book.ID,
		book.Title,
		book.Author,
		book.Publisher,
		strconv.Itoa(book.CopiesNumber),
		book.Rarity,
		book.Genres,
		strconv.Itoa(book.PublishYear),
		book.Language,
		strconv.Itoa(book.AgeLimit),
	}
	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	s.count++
	return nil
}

// Count is the number of rows written so far, header excluded
func (s *CSVSink) Count() int {
	return s.count
}

// Flush pushes buffered rows to the underlying writer
func (s *CSVSink) Flush() error {
	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the file. It is safe to call on every exit path.
func (s *CSVSink) Close() error {
	flushErr := s.Flush()
	if s.file == nil {
		return flushErr
	}
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
