// Package extract wraps the external text-extraction and image-recognition
// backends. Every failure here is a normal outcome: callers get nil and fall
// through to the next strategy.
package extract

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultTextTimeout bounds one text-extraction attempt.
const DefaultTextTimeout = 30 // seconds

// TextLines extracts ordered text lines from PDF bytes, trying the in-process
// library first and the pdftotext command second. Returns nil when the
// document carries no extractable text or both extractors are unavailable,
// the caller then falls back to image recognition.
func TextLines(ctx context.Context, data []byte) []string {
	if lines := textLinesFromLibrary(data); len(lines) > 0 {
		return lines
	}
	return textLinesFromPdftotext(ctx, data)
}

// textLinesFromLibrary reads the PDF with ledongthuc/pdf, preserving row
// order per page. The library panics on some malformed documents; that is
// absorbed here.
func textLinesFromLibrary(data []byte) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract: pdf library panicked: %v", r)
			lines = nil
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}
	for p := 1; p <= r.NumPage(); p++ {
		page := r.Page(p)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			if s := strings.TrimSpace(sb.String()); s != "" {
				lines = append(lines, s)
			}
		}
	}
	if !hasUsableText(lines) {
		return nil
	}
	return lines
}

// textLinesFromPdftotext shells out to pdftotext -layout (poppler-utils),
// which keeps the column spacing the statement grammars depend on. The
// context carries the caller's timeout; a timeout or missing binary is
// treated as "no text".
func textLinesFromPdftotext(ctx context.Context, data []byte) []string {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil
	}
	tmp, err := os.CreateTemp("", "stmt-*.pdf")
	if err != nil {
		return nil
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil
	}
	_ = tmp.Close()

	out, err := exec.CommandContext(ctx, "pdftotext", "-layout", tmp.Name(), "-").Output()
	if err != nil {
		log.Printf("extract: pdftotext failed: %v", err)
		return nil
	}
	var lines []string
	for _, l := range strings.Split(string(out), "\n") {
		if s := strings.TrimRight(l, " \t\r"); strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
	}
	if !hasUsableText(lines) {
		return nil
	}
	return lines
}

// hasUsableText rejects output that is too short or digit-free to be a
// statement, so scanned PDFs with a vestigial text layer still reach OCR.
func hasUsableText(lines []string) bool {
	total := 0
	digits := 0
	for _, l := range lines {
		total += len(l)
		for _, r := range l {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
	}
	return total > 50 && digits > 0
}
