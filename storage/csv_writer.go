package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"foodfindr/models"
)

// RestaurantColumns is the header of the restaurant info file.
var RestaurantColumns = []string{"name", "address", "latitude", "longitude", "link", "price", "tags", "isGluten"}

// TagSeparator joins a restaurant's tags in a single CSV cell.
const TagSeparator = ";"

// CSVWriter streams restaurants to a CSV file, one row per call.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	rows   int
	closed bool
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, w, err := createCSV(path)
	if err != nil {
		return nil, err
	}

	if err := w.Write(RestaurantColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one restaurant and flushes it to disk.
func (c *CSVWriter) Write(r *models.Restaurant) error {
	isGluten := "0"
	if r.GlutenFree {
		isGluten = "1"
	}
	row := []string{
		r.Name,
		r.Address,
		formatFloat(r.Latitude),
		formatFloat(r.Longitude),
		r.Link,
		r.Price,
		strings.Join(r.Tags, TagSeparator),
		isGluten,
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	c.rows++
	return nil
}

// Rows returns the number of restaurants written.
func (c *CSVWriter) Rows() int {
	return c.rows
}

// Close flushes and closes the underlying file. Calling it again is a no-op.
func (c *CSVWriter) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return err
	}
	return c.file.Close()
}

// WriteTermCounts writes a term-count table: a "link" column followed by one
// column per term, one row per restaurant.
func WriteTermCounts(path string, tbl *models.TermCountTable) error {
	if len(tbl.Links) != len(tbl.Counts) {
		return fmt.Errorf("csv: term table has %d links for %d rows", len(tbl.Links), len(tbl.Counts))
	}

	f, w, err := createCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]string, 0, len(tbl.Terms)+1)
	header = append(header, "link")
	header = append(header, tbl.Terms...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(tbl.Terms)+1)
	for i, counts := range tbl.Counts {
		if len(counts) != len(tbl.Terms) {
			return fmt.Errorf("csv: row %d has %d counts for %d terms", i, len(counts), len(tbl.Terms))
		}
		record[0] = tbl.Links[i]
		for j, n := range counts {
			record[j+1] = strconv.Itoa(n)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}

func createCSV(path string) (*os.File, *csv.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return f, csv.NewWriter(f), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
