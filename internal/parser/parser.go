package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"pdf-rag/internal/models"
)

const pdfMIME = "application/pdf"

var (
	ErrNotPDF      = errors.New("not a PDF document")
	ErrExtraction  = errors.New("failed to extract PDF text")
	ErrEmptyUpload = errors.New("empty upload")
)

// Upload is one uploaded document.
type Upload struct {
	Name string
	Data []byte
}

// ExtractPages returns the text of every page with extractable text across
// all uploads, in upload order then page order. Pages are numbered from 1
// within each document. Any unreadable upload fails the whole batch.
func ExtractPages(uploads []Upload) ([]models.PageText, error) {
	var pages []models.PageText
	for _, u := range uploads {
		docPages, err := extractPDF(u)
		if err != nil {
			return nil, err
		}
		pages = append(pages, docPages...)
	}
	return pages, nil
}

func extractPDF(u Upload) (pages []models.PageText, err error) {
	if len(u.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyUpload, u.Name)
	}
	if mtype := mimetype.Detect(u.Data); !mtype.Is(pdfMIME) {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPDF, u.Name, mtype.String())
	}

	// the pdf package panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", ErrExtraction, u.Name, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(u.Data), int64(len(u.Data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtraction, u.Name, err)
	}

	numPages := reader.NumPage()
	skipped := 0
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			skipped++
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %v", ErrExtraction, u.Name, i, err)
		}
		pageText = strings.TrimSpace(pageText)
		// scanned pages without a text layer
		if pageText == "" {
			skipped++
			continue
		}
		pages = append(pages, models.PageText{
			Source:     u.Name,
			PageNumber: i,
			Text:       pageText,
		})
	}

	log.Debug().
		Str("file", u.Name).
		Int("pages", numPages).
		Int("skipped", skipped).
		Msg("Extracted PDF text")
	return pages, nil
}
