package extract

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks talentmatch/internal/extract Extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// ErrInvalidPDF is returned when the uploaded bytes are not a PDF document.
var ErrInvalidPDF = fmt.Errorf("file is not a valid PDF document")

// Extractor defines the interface for pulling plain text out of an
// uploaded document.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// PDFExtractor extracts plain text from PDF bytes using docconv.
// It implements the Extractor interface.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract converts PDF bytes to plain text. Corrupt, encrypted or
// non-PDF input returns an error and nothing is kept.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", ErrInvalidPDF
	}

	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from PDF: %w", err)
	}

	return strings.TrimSpace(res.Body), nil
}
