package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"immoweb-scraper/models"
	"immoweb-scraper/utils"
)

// URLWriter saves the discovered listing URLs, one per row, no header.
type URLWriter struct {
	path string
}

func NewURLWriter(path string) *URLWriter {
	return &URLWriter{path: path}
}

func (w *URLWriter) Write(urls []string) error {
	if len(urls) == 0 {
		utils.Warn("No urls to write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, u := range urls {
		writer.Write([]string{u})
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Saved %d urls → %s", len(urls), w.path)
	return nil
}

// ReadURLFile loads a URL file written by URLWriter.
func ReadURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open url file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}

	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			urls = append(urls, row[0])
		}
	}
	return urls, nil
}

// RecordWriter saves property records with a fixed header row, one row per
// record in index order. Absent fields become empty cells.
type RecordWriter struct {
	path string
}

func NewRecordWriter(path string) *RecordWriter {
	return &RecordWriter{path: path}
}

func (w *RecordWriter) Write(columns []string, records []models.PropertyRecord) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write(columns)

	for _, r := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = r.Fields[col]
		}
		writer.Write(row)
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Saved %d records → %s", len(records), w.path)
	return nil
}
