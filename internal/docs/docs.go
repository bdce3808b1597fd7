// Package docs turns stored documents into prompt text.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/nhle/daedaly/internal/model"
)

var pdfMagic = []byte("%PDF")

// ReadError reports a document whose content could not be turned into text.
type ReadError struct {
	Document string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Document, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Result is the text of one document. Err is set when the content could
// not be read; Text is then empty.
type Result struct {
	Text string
	Err  error
}

// PromptText returns the text to embed in a prompt. A failed read still
// yields a readable note so the model knows a document was unusable.
func (r Result) PromptText() string {
	if r.Err != nil {
		var re *ReadError
		if errors.As(r.Err, &re) {
			return "Error reading PDF: " + re.Err.Error()
		}
		return "Error reading PDF: " + r.Err.Error()
	}
	return r.Text
}

// Extractor reads document contents.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of doc. PDFs are recognized by extension or
// by their magic bytes; anything else is read as UTF-8 text.
func (x *Extractor) Extract(doc model.Document) Result {
	return x.ExtractBytes(doc.Filename, doc.Content)
}

// ExtractBytes is Extract for raw content, such as a company profile.
func (x *Extractor) ExtractBytes(filename string, content []byte) Result {
	if len(content) == 0 {
		return Result{}
	}
	if !isPDF(filename, content) {
		return Result{Text: strings.ToValidUTF8(string(content), "")}
	}

	text, err := pdfText(content)
	if err != nil {
		name := filename
		if name == "" {
			name = "document"
		}
		return Result{Err: &ReadError{Document: name, Err: err}}
	}
	return Result{Text: text}
}

func isPDF(filename string, content []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return bytes.HasPrefix(content, pdfMagic)
}

// pdfText extracts the plain text of every page, pages separated by a
// newline. The pdf package panics on some malformed files.
func pdfText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, pageText)
	}

	out := strings.Join(pages, "\n")
	if !utf8.ValidString(out) {
		out = strings.ToValidUTF8(out, "")
	}
	return out, nil
}
