// Package pdf checks uploaded PDF documents with MuPDF.
package pdf

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// ErrNoPages is returned for documents that open but contain no pages
var ErrNoPages = errors.New("pdf has no pages")

// Inspector opens PDF documents in memory
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

// PageCount opens the document and returns its number of pages
func (i *Inspector) PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrNoPages
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n <= 0 {
		return 0, ErrNoPages
	}
	return n, nil
}
