package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/teamventure/itinmd/internal/model"
)

const utf8Family = "itinmd"

// PDFRenderer lays an itinerary out as an A4 schedule.
type PDFRenderer struct {
	fontPath string
}

// NewPDFRenderer creates a PDFRenderer. fontPath may be empty.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{fontPath: fontPath}
}

// pdfWriter hides the difference between a UTF-8 font and the core font.
type pdfWriter struct {
	pdf  *gofpdf.Fpdf
	utf8 bool
	tr   func(string) string
}

func (w *pdfWriter) font(style string, size float64) {
	if w.utf8 {
		// Only the regular style is registered for the TrueType font.
		w.pdf.SetFont(utf8Family, "", size)
		return
	}
	w.pdf.SetFont("Helvetica", style, size)
}

func (w *pdfWriter) text(s string) string {
	if w.utf8 {
		return s
	}
	return w.tr(s)
}

func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	// gofpdf resolves font files relative to its font directory.
	fontDir := ""
	if r.fontPath != "" {
		fontDir = filepath.Dir(r.fontPath)
	}
	pdf := gofpdf.New("P", "mm", "A4", fontDir)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.title(), true)
	pdf.SetCreator("itinmd", true)

	w := &pdfWriter{pdf: pdf}
	if r.fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", filepath.Base(r.fontPath))
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load font %s: %w", r.fontPath, err)
		}
		w.utf8 = true
	} else {
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()

	w.font("B", 18)
	pdf.MultiCell(0, 9, w.text(doc.title()), "", "L", false)
	pdf.Ln(1)

	st := doc.Itinerary.Stats()
	w.font("I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, w.text(fmt.Sprintf("v%d · %d 天 · %d 项", doc.Version, st.Days, st.Items)), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, d := range doc.Itinerary.Days {
		renderDay(w, d)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderDay(w *pdfWriter, d model.Day) {
	heading := fmt.Sprintf("Day %d", d.Day)
	if date := strings.TrimSpace(d.Date); date != "" {
		heading += "（" + date + "）"
	}

	w.pdf.Ln(2)
	w.font("B", 14)
	w.pdf.SetFillColor(235, 241, 250)
	w.pdf.MultiCell(0, 8, w.text(heading), "", "L", true)
	w.pdf.Ln(1)

	for _, a := range d.Items {
		timeRange := strings.TrimSpace(a.TimeStart + " - " + a.TimeEnd)
		w.font("B", 10)
		w.pdf.CellFormat(32, 6, w.text(timeRange), "", 0, "L", false, 0, "")
		w.font("", 10)
		w.pdf.MultiCell(0, 6, w.text(activityLine(a)), "", "L", false)
	}
}

// activityLine joins the descriptive fields of a row for display.
func activityLine(a model.Activity) string {
	s := strings.TrimSpace(a.Activity)
	if loc := strings.TrimSpace(a.Location); loc != "" {
		s += " @ " + loc
	}
	if note := strings.TrimSpace(a.Note); note != "" {
		s += "（" + note + "）"
	}
	return s
}
