package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(t *testing.T, logo string) *render.Page {
	t.Helper()
	inv := &models.Invoice{
		InvoiceNumber: "012",
		IssuerName:    "Yazz Studio",
		IssuerLogo:    logo,
		ClientName:    "Acme Corp",
		Items:         []models.LineItem{{ID: 1, Description: "Poster", Quantity: 1, UnitPrice: 120}},
		Currency:      models.DefaultCurrency,
		IssueDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
	}
	page, err := render.Layout(inv, models.TemplateMinimalist, "invoice-export")
	require.NoError(t, err)
	return page
}

func TestExporter_Image(t *testing.T) {
	ex := NewExporter(nil, nil)
	f, err := ex.Image(context.Background(), testPage(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "invoice-012.jpg", f.Filename)
	assert.Equal(t, "image/jpeg", f.ContentType)

	img, err := jpeg.Decode(bytes.NewReader(f.Body))
	require.NoError(t, err)
	assert.Equal(t, int(render.PageWidth)*Scale, img.Bounds().Dx())
	assert.Equal(t, int(render.PageHeight)*Scale, img.Bounds().Dy())

	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Greater(t, r>>8, uint32(245))
	assert.Greater(t, g>>8, uint32(245))
	assert.Greater(t, b>>8, uint32(245))
	assert.False(t, ex.Busy())
}

func TestExporter_PDF(t *testing.T) {
	ex := NewExporter(nil, nil)
	f, err := ex.PDF(context.Background(), testPage(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "invoice-012.pdf", f.Filename)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.True(t, bytes.HasPrefix(f.Body, []byte("%PDF")))
}

type blockingLoader struct {
	called  chan struct{}
	release chan struct{}
}

func (l *blockingLoader) Load(ctx context.Context, _ string) (image.Image, error) {
	close(l.called)
	<-l.release
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func TestExporter_SingleFlight(t *testing.T) {
	loader := &blockingLoader{called: make(chan struct{}), release: make(chan struct{})}
	ex := NewExporter(loader, nil)
	page := testPage(t, "https://cdn.example.com/logo.png")

	done := make(chan error, 1)
	go func() {
		_, err := ex.PDF(context.Background(), page)
		done <- err
	}()
	<-loader.called
	assert.True(t, ex.Busy())

	_, err := ex.Image(context.Background(), page)
	assert.ErrorIs(t, err, ErrExportInProgress)
	_, err = ex.PDF(context.Background(), page)
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(loader.release)
	require.NoError(t, <-done)
	assert.False(t, ex.Busy())

	_, err = ex.Image(context.Background(), testPage(t, ""))
	assert.NoError(t, err)
}

func TestExporter_FailureReleases(t *testing.T) {
	ex := NewExporter(nil, nil)
	_, err := ex.Image(context.Background(), nil)
	assert.Error(t, err)
	assert.False(t, ex.Busy())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-001.pdf", Filename("001", "pdf"))
	assert.Equal(t, "invoice-ab.jpg", Filename("a/../b", "jpg"))
	assert.Equal(t, "invoice-draft.pdf", Filename("", "pdf"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHTTPLoader(t *testing.T) {
	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	l := NewHTTPLoader(nil)
	img, err := l.Load(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = l.Load(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)

	img, err = l.Load(context.Background(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(body))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = l.Load(context.Background(), "data:image/png,raw")
	assert.Error(t, err)
}
