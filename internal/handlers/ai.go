package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/i18n"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/ai"
	"go.uber.org/zap"
)

// Assistant is the set of generative flows offered to the admin.
type Assistant interface {
	AnalyzeImage(ctx context.Context, photoDataURI string) (*ai.ImageAnalysis, error)
	DraftReply(ctx context.Context, in ai.ReplyInput) (*ai.ReplyDraft, error)
	Joke(ctx context.Context) string
	RemoveBackground(ctx context.Context, photoDataURI string) (string, error)
	SuggestTags(ctx context.Context, in ai.TagInput) ([]string, error)
}

type AIHandler struct {
	assistant Assistant
	log       *zap.Logger
}

func NewAIHandler(assistant Assistant, log *zap.Logger) *AIHandler {
	return &AIHandler{assistant: assistant, log: log}
}

type imageRequest struct {
	PhotoDataURI string `json:"photoDataUri"`
}

// Run dispatches POST /admin/api/ai/{flow}.
func (h *AIHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.PathValue("flow") {
	case "analyze-image":
		var req imageRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
		out, err := h.assistant.AnalyzeImage(ctx, req.PhotoDataURI)
		h.reply(w, r, out, err)

	case "draft-reply":
		var req ai.ReplyInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
		out, err := h.assistant.DraftReply(ctx, req)
		h.reply(w, r, out, err)

	case "joke":
		httpx.JSON(w, http.StatusOK, map[string]string{"joke": h.assistant.Joke(ctx)})

	case "remove-background":
		var req imageRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
		img, err := h.assistant.RemoveBackground(ctx, req.PhotoDataURI)
		if err != nil {
			// the editor shows this text inline instead of a toast
			status, code := errorStatus(err)
			if !errors.Is(err, ai.ErrRateLimited) {
				h.log.Warn("remove background failed", zap.Error(err))
			}
			httpx.JSON(w, status, map[string]string{"error": i18n.T(lang(r), code)})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"image": img})

	case "suggest-tags":
		var req ai.TagInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
		tags, err := h.assistant.SuggestTags(ctx, req)
		if err != nil {
			h.reply(w, r, nil, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string][]string{"tags": tags})

	default:
		notify(w, r, http.StatusNotFound, "not_found", nil)
	}
}

func (h *AIHandler) reply(w http.ResponseWriter, r *http.Request, out any, err error) {
	if err != nil {
		status, code := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.Warn("ai flow failed", zap.String("flow", r.PathValue("flow")), zap.Error(err))
		}
		notify(w, r, status, code, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
