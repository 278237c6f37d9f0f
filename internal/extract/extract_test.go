package extract

import (
	"context"
	"errors"
	"testing"
)

func TestPDFExtractor_Extract_RejectsNonPDF(t *testing.T) {
	extractor := NewPDFExtractor()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: nil},
		{name: "plain text", data: []byte("just some text, not a pdf")},
		{name: "png magic", data: []byte("\x89PNG\r\n\x1a\n")},
		{name: "truncated magic", data: []byte("%PD")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), tt.data)
			if !errors.Is(err, ErrInvalidPDF) {
				t.Errorf("Extract() error = %v, want ErrInvalidPDF", err)
			}
		})
	}
}

func TestPDFExtractor_Extract_CancelledContext(t *testing.T) {
	extractor := NewPDFExtractor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, []byte("%PDF-1.4 whatever"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}

func TestPDFExtractor_Extract_CorruptPDF(t *testing.T) {
	extractor := NewPDFExtractor()

	// Valid magic but garbage body; conversion must fail, not return junk.
	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.4\nthis is not a real pdf body"))
	if err == nil {
		t.Error("Extract() on corrupt PDF should return error")
	}
	if errors.Is(err, ErrInvalidPDF) {
		t.Error("Extract() on corrupt PDF should fail during conversion, not the magic check")
	}
}
