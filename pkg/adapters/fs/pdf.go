package fs

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount opens a PDF file and returns its number of pages.
func PageCount(path string) (int, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()
	return reader.NumPage(), nil
}
