package extract

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"be04/pkg/statement"
)

// Detections renders the PDF to page images (pdftoppm) and runs Tesseract
// over each, returning per-region text with recognition confidence. The
// returned error only means the backend itself is unavailable or the document
// could not be rendered; callers record the reason and produce zero rows.
func Detections(data []byte) ([]statement.Detection, int, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, 0, fmt.Errorf("pdftoppm not available: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "stmt-pages-*")
	if err != nil {
		return nil, 0, err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, 0, err
	}
	// 200 DPI is enough for statement body text and keeps pages small.
	if out, err := exec.Command("pdftoppm", "-r", "200", "-png", pdfPath, filepath.Join(tmpDir, "page")).CombinedOutput(); err != nil {
		return nil, 0, fmt.Errorf("pdftoppm: %v (%s)", err, strings.TrimSpace(string(out)))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, 0, err
	}
	var pageFiles []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "page") && strings.HasSuffix(e.Name(), ".png") {
			pageFiles = append(pageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(pageFiles)
	if len(pageFiles) == 0 {
		return nil, 0, fmt.Errorf("pdftoppm produced no page images")
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage("tha", "eng"); err != nil {
		// Thai traineddata missing; English still covers amounts and codes.
		_ = client.SetLanguage("eng")
	}

	var detections []statement.Detection
	for pageIdx, pf := range pageFiles {
		prepared := preprocessPage(pf)
		client.SetImage(prepared)
		boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
		if prepared != pf {
			_ = os.Remove(prepared)
		}
		if err != nil {
			log.Printf("extract: tesseract failed on page %d: %v", pageIdx+1, err)
			continue
		}
		for _, b := range boxes {
			text := strings.TrimSpace(b.Word)
			if text == "" {
				continue
			}
			detections = append(detections, statement.Detection{
				Page:       pageIdx,
				Text:       text,
				Confidence: b.Confidence / 100.0,
			})
		}
	}
	return detections, len(pageFiles), nil
}

// preprocessPage grayscales and upscales small renders before OCR; Tesseract
// accuracy drops sharply below ~1000px page height. Returns the original path
// when preprocessing fails.
func preprocessPage(path string) string {
	img, err := imaging.Open(path)
	if err != nil {
		return path
	}
	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < 1000 {
		gray = imaging.Resize(gray, 0, 1600, imaging.Lanczos)
	}
	out := strings.TrimSuffix(path, ".png") + "-prep.png"
	if err := imaging.Save(gray, out); err != nil {
		return path
	}
	return out
}
