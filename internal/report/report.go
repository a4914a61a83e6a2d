package report

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"

	"github.com/usmandev/daraz-catalog/internal/models"
)

const (
	rowPadding   = 3.0 // mm inside each row border
	rowGap       = 4.0 // mm between rows
	lineHeight   = 5.0 // mm per text line
	maxTitleRows = 4
)

// Options sizes the per-record row.
type Options struct {
	// ImageBox is the square (mm) the product image is scaled into,
	// aspect preserved.
	ImageBox float64
}

func DefaultOptions() Options {
	return Options{ImageBox: 42}
}

// Builder renders the accumulated catalog into one PDF: a bordered row
// per record with the image on the left and title, price and a clickable
// product link on the right, in input order.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

func NewBuilder(opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		opts:   opts,
		logger: logger.With("component", "report"),
	}
}

// Build writes records to outputPath. A record without usable image
// bytes gets empty space in the image cell; a failing write is fatal.
func (b *Builder) Build(records []models.Record, outputPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for i, record := range records {
		b.addRow(pdf, i, record, translate)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF to %s: %w", outputPath, err)
	}

	b.logger.Info("report written", "path", outputPath, "records", len(records))
	return nil
}

func (b *Builder) addRow(pdf *fpdf.Fpdf, index int, record models.Record, translate func(string) string) {
	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()

	rowW := pageW - left - right
	rowH := b.opts.ImageBox + 2*rowPadding

	y := pdf.GetY()
	if y+rowH > pageH-bottom {
		pdf.AddPage()
		y = top
	}

	pdf.SetDrawColor(128, 128, 128)
	pdf.Rect(left, y, rowW, rowH, "D")

	b.drawImage(pdf, index, record, left+rowPadding, y+rowPadding)

	textX := left + b.opts.ImageBox + 2*rowPadding
	textW := rowW - b.opts.ImageBox - 3*rowPadding

	pdf.SetXY(textX, y+rowPadding)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	b.drawTitle(pdf, translate(record.Title), textX, textW)

	pdf.SetX(textX)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(textW, lineHeight, translate("Price: "+record.Price), "", 1, "L", false, 0, "")

	pdf.SetX(textX)
	if record.Link != "" {
		pdf.SetTextColor(0, 0, 255)
		pdf.SetFont("Helvetica", "U", 10)
		pdf.CellFormat(textW, lineHeight, "View Product", "", 1, "L", false, 0, record.Link)
	} else {
		pdf.CellFormat(textW, lineHeight, "No product link available", "", 1, "L", false, 0, "")
	}

	pdf.SetY(y + rowH + rowGap)
}

// drawTitle wraps the title inside the text column, clamped so a very
// long title cannot push the row past its border.
func (b *Builder) drawTitle(pdf *fpdf.Fpdf, title string, textX, textW float64) {
	lines := pdf.SplitLines([]byte(title), textW)
	if len(lines) > maxTitleRows {
		lines = lines[:maxTitleRows]
	}
	for _, line := range lines {
		pdf.CellFormat(textW, lineHeight, string(line), "", 1, "L", false, 0, "")
		pdf.SetX(textX)
	}
}

// drawImage embeds the record image scaled into the image box. Bytes the
// stdlib cannot decode are treated the same as a missing image.
func (b *Builder) drawImage(pdf *fpdf.Fpdf, index int, record models.Record, x, y float64) {
	if len(record.Image) == 0 {
		return
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(record.Image))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		b.logger.Debug("skipping undecodable image", "record", index, "error", err)
		return
	}

	imageType := strings.ToUpper(format)
	if imageType == "JPEG" {
		imageType = "JPG"
	}

	w, h := fitBox(float64(cfg.Width), float64(cfg.Height), b.opts.ImageBox)

	opts := fpdf.ImageOptions{ImageType: imageType}
	name := fmt.Sprintf("record-%d", index)
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(record.Image))
	if pdf.Err() {
		b.logger.Debug("skipping unembeddable image", "record", index, "error", pdf.Error())
		pdf.ClearError()
		return
	}

	// Center the scaled image inside its box.
	pdf.ImageOptions(name, x+(b.opts.ImageBox-w)/2, y+(b.opts.ImageBox-h)/2, w, h, false, opts, 0, "")
}

// fitBox scales w x h to fit a square box, preserving aspect ratio.
func fitBox(w, h, box float64) (float64, float64) {
	scale := box / w
	if h > w {
		scale = box / h
	}
	return w * scale, h * scale
}
