package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"foodfindr/models"
)

// RatedColumns is the fixed column order of the loader's input file.
// Header names in the file are ignored; columns are taken positionally.
var RatedColumns = []string{"name", "address", "latitude", "longitude", "link", "price", "health_color", "special_diet"}

// ErrColumnCount is returned when the input file does not have len(RatedColumns) columns.
var ErrColumnCount = errors.New("unexpected column count")

// ReadRatedFile reads every data row of the CSV file at path.
func ReadRatedFile(path string) ([]*models.RatedRestaurant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadRated(f)
}

// ReadRated reads a header row followed by data rows from r.
func ReadRated(r io.Reader) ([]*models.RatedRestaurant, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) != len(RatedColumns) {
		return nil, fmt.Errorf("csv: %w: got %d, want %d", ErrColumnCount, len(header), len(RatedColumns))
	}

	var rows []*models.RatedRestaurant
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		if len(rec) != len(RatedColumns) {
			return nil, fmt.Errorf("csv: line %d: %w: got %d, want %d", line, ErrColumnCount, len(rec), len(RatedColumns))
		}

		lat, err := parseOptionalFloat(rec[2])
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: latitude: %w", line, err)
		}
		lon, err := parseOptionalFloat(rec[3])
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: longitude: %w", line, err)
		}

		rows = append(rows, &models.RatedRestaurant{
			Name:        rec[0],
			Address:     rec[1],
			Latitude:    lat,
			Longitude:   lon,
			Link:        rec[4],
			Price:       rec[5],
			HealthColor: rec[6],
			SpecialDiet: rec[7],
		})
	}
	return rows, nil
}

// parseOptionalFloat treats empty and NA cells as missing.
func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
