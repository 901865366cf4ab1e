// Package export turns a laid-out invoice page into downloadable files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"strings"
	"sync/atomic"

	"github.com/jung-kurt/gofpdf"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"go.uber.org/zap"
)

const (
	// Scale is the oversampling factor applied before encoding.
	Scale = 3
	// JPEGQuality is used for the image export and the image embedded in the PDF.
	JPEGQuality = 98
	// PDFWidthMM is the width of the PDF page; the height follows the page aspect ratio.
	PDFWidthMM = 210.0
)

// ErrExportInProgress is returned while another export is running.
var ErrExportInProgress = errors.New("export_in_progress")

// File is a finished export.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Exporter runs one export at a time. A call made while another is running
// fails with ErrExportInProgress instead of waiting.
type Exporter struct {
	loader render.ImageLoader
	log    *zap.Logger
	busy   atomic.Bool
}

func NewExporter(loader render.ImageLoader, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{loader: loader, log: log}
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool { return e.busy.Load() }

func (e *Exporter) acquire() error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrExportInProgress
	}
	return nil
}

func (e *Exporter) release() { e.busy.Store(false) }

// Image exports page as a JPEG.
func (e *Exporter) Image(ctx context.Context, page *render.Page) (*File, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	body, err := e.jpeg(ctx, page)
	if err != nil {
		e.log.Error("image export failed", zap.String("invoice", page.InvoiceNumber), zap.Error(err))
		return nil, err
	}
	return &File{Filename: Filename(page.InvoiceNumber, "jpg"), ContentType: "image/jpeg", Body: body}, nil
}

// PDF exports page as a single-page PDF holding the rasterized page.
func (e *Exporter) PDF(ctx context.Context, page *render.Page) (*File, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	body, err := e.pdf(ctx, page)
	if err != nil {
		e.log.Error("pdf export failed", zap.String("invoice", page.InvoiceNumber), zap.Error(err))
		return nil, err
	}
	return &File{Filename: Filename(page.InvoiceNumber, "pdf"), ContentType: "application/pdf", Body: body}, nil
}

func (e *Exporter) jpeg(ctx context.Context, page *render.Page) ([]byte, error) {
	if page == nil {
		return nil, errors.New("export: nil page")
	}
	img, err := render.Rasterize(ctx, page, Scale, e.loader)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) pdf(ctx context.Context, page *render.Page) ([]byte, error) {
	raw, err := e.jpeg(ctx, page)
	if err != nil {
		return nil, err
	}

	height := PDFWidthMM * page.Height / page.Width
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Invoice "+page.InvoiceNumber, true)
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("page", opt, bytes.NewReader(raw))
	pdf.ImageOptions("page", 0, 0, PDFWidthMM, height, false, opt, 0, "")
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns invoice-<number>.<ext>, keeping only safe characters of the number.
func Filename(number, ext string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
			return r
		}
		return -1
	}, number)
	if clean == "" {
		clean = "draft"
	}
	return "invoice-" + clean + "." + ext
}
