// Package jobs runs a full scrape and writes its flat output file.
package jobs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Cyclone1070/skytrax-reviews/internal/reviews"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Columns is the fixed CSV header.
var Columns = []string{"review", "date", "rating", "country"}

// WriteReviews encodes set to writer, as CSV with a header row or as an indented JSON array.
func WriteReviews(writer io.Writer, set reviews.ReviewSet, format string) error {
	switch format {
	case FormatCSV:
		return writeCSV(writer, set)
	case FormatJSON:
		if set == nil {
			set = reviews.ReviewSet{}
		}
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(set)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeCSV(writer io.Writer, set reviews.ReviewSet) error {
	w := csv.NewWriter(writer)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, review := range set {
		if err := w.Write([]string{review.Review, review.Date, review.Rating, review.Country}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// SaveReviews replaces the file at path with the encoded set.
func SaveReviews(path string, set reviews.ReviewSet, format string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	if err := WriteReviews(file, set, format); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
