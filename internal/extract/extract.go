package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError reports a document that could not be opened or decoded at
// all. Individual undecodable pages do not produce this error.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("extract: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Text reads a local PDF file and returns its plain text.
// Library used: github.com/ledongthuc/pdf.
func Text(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	text, err := TextFromBytes(data)
	if err != nil {
		var exErr *ExtractionError
		if errors.As(err, &exErr) {
			exErr.Path = path
		}
		return "", err
	}
	return text, nil
}

// TextFromBytes extracts plain text from an in-memory PDF payload. Pages that
// fail to decode contribute an empty string; the document fails only when the
// PDF itself cannot be parsed. Empty output is a valid result.
func TextFromBytes(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}
