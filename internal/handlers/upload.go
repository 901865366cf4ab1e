package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/media"
	"go.uber.org/zap"
)

const maxUploadBytes = 8 << 20

type UploadHandler struct {
	uploader media.Uploader
	log      *zap.Logger
}

func NewUploadHandler(uploader media.Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

// Upload stores the multipart "file" field and returns its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		notify(w, r, http.StatusBadRequest, "bad_request", map[string]string{"file": "required"})
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		notify(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	contentType := http.DetectContentType(sniff[:n])
	if strings.HasPrefix(contentType, "text/xml") && header.Header.Get("Content-Type") == "image/svg+xml" {
		// sniffing cannot tell SVG apart from other XML
		contentType = "image/svg+xml"
	}
	if _, ok := media.AllowedTypes[contentType]; !ok {
		notify(w, r, http.StatusUnsupportedMediaType, "unsupported_media_type", nil)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		fail(w, r, h.log, err)
		return
	}

	url, err := h.uploader.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		if status, _ := errorStatus(err); status < http.StatusInternalServerError {
			fail(w, r, h.log, err)
			return
		}
		h.log.Error("upload failed", zap.String("filename", header.Filename), zap.Error(err))
		notify(w, r, http.StatusBadGateway, "upload_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"url": url})
}
