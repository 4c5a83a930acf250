// Package testutil holds fixtures shared by package tests: a PDF builder and
// deterministic stand-ins for the remote embedding and chat models.
package testutil

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// BuildPDF writes a PDF with one page per entry in pages. Each page shows its
// text as a single Helvetica line; an empty entry produces a page with no text layer.
func BuildPDF(pages ...string) []byte {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)

	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Text(72, 72, text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		panic(fmt.Sprintf("failed to build PDF fixture: %v", err))
	}
	return buf.Bytes()
}
