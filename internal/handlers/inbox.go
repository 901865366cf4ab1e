package handlers

import (
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/gate"
	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

type InboxHandler struct {
	svc   *services.InboxService
	authz Authorizer
	log   *zap.Logger
}

func NewInboxHandler(svc *services.InboxService, authz Authorizer, log *zap.Logger) *InboxHandler {
	return &InboxHandler{svc: svc, authz: authz, log: log}
}

// Index renders the inbox page, newest message first.
func (h *InboxHandler) Index(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.List(r.Context(), ownerID(r))
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	view.Render(w, r, "admin/inbox.html", map[string]any{"Messages": msgs})
}

// ToggleRead flips the read flag and returns the new value.
func (h *InboxHandler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	if err := h.authz.Authorize(r.Context(), gate.ActionUpdate, CollectionMessages, nil); err != nil {
		fail(w, r, h.log, err)
		return
	}
	id := r.PathValue("id")
	read, err := h.svc.ToggleRead(r.Context(), ownerID(r), id)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "is_read": read})
}

type replyRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Reply emails the sender. An empty subject defaults to "Re: <subject>".
func (h *InboxHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		notify(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	if req.Body == "" {
		invalid(w, r, map[string]string{"body": "required"})
		return
	}
	if err := h.authz.Authorize(r.Context(), gate.ActionUpdate, CollectionMessages, nil); err != nil {
		fail(w, r, h.log, err)
		return
	}
	if err := h.svc.Reply(r.Context(), ownerID(r), r.PathValue("id"), req.Subject, req.Body); err != nil {
		fail(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "reply_sent"})
}
