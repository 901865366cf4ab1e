package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/gate"
	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/mhdyaseenvattappara/yazzfolio/validation"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

// resource is the type-erased view of one content collection.
type resource interface {
	list(ctx context.Context, owner string) (any, error)
	get(ctx context.Context, owner, id string) (store.Record, error)
	decode(r io.Reader) (store.Record, error)
	save(ctx context.Context, owner string, rec store.Record) error
	remove(ctx context.Context, owner, id string) error
}

type collection[T any, P store.Doc[T]] struct {
	coll  store.Collection[T]
	order store.Query
}

func (c collection[T, P]) list(ctx context.Context, owner string) (any, error) {
	return c.coll.List(ctx, owner, c.order)
}

func (c collection[T, P]) get(ctx context.Context, owner, id string) (store.Record, error) {
	rec, err := c.coll.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return P(rec), nil
}

func (c collection[T, P]) decode(r io.Reader) (store.Record, error) {
	rec := new(T)
	if err := json.NewDecoder(r).Decode(rec); err != nil {
		return nil, err
	}
	return P(rec), nil
}

func (c collection[T, P]) save(ctx context.Context, owner string, rec store.Record) error {
	return c.coll.Save(ctx, owner, (*T)(rec.(P)))
}

func (c collection[T, P]) remove(ctx context.Context, owner, id string) error {
	return c.coll.Delete(ctx, owner, id)
}

var (
	byOrder  = store.Query{OrderBy: "sort_order"}
	byNewest = store.Query{OrderBy: "created_at", Desc: true}
)

// Content collection names accepted under /admin/api/{collection}.
const (
	CollectionPortfolio    = "portfolio"
	CollectionTestimonials = "testimonials"
	CollectionServices     = "services"
	CollectionTimeline     = "timeline"
	CollectionTools        = "tools"
	CollectionMessages     = "messages"
)

// ContentCollections lists the names served by ContentHandler.
var ContentCollections = []string{
	CollectionPortfolio, CollectionTestimonials, CollectionServices,
	CollectionTimeline, CollectionTools, CollectionMessages,
}

// managedCollections get an editor page; messages have the inbox instead.
var managedCollections = ContentCollections[:5]

// ContentHandler serves JSON CRUD for the site content managers.
type ContentHandler struct {
	resources map[string]resource
	authz     Authorizer
	log       *zap.Logger
}

func NewContentHandler(s *store.Stores, authz Authorizer, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		resources: map[string]resource{
			CollectionPortfolio:    collection[models.PortfolioItem, *models.PortfolioItem]{s.Portfolio, byOrder},
			CollectionTestimonials: collection[models.Testimonial, *models.Testimonial]{s.Testimonials, byNewest},
			CollectionServices:     collection[models.Service, *models.Service]{s.Services, byOrder},
			CollectionTimeline:     collection[models.TimelineEvent, *models.TimelineEvent]{s.Timeline, byOrder},
			CollectionTools:        collection[models.Tool, *models.Tool]{s.Tools, byOrder},
			CollectionMessages:     collection[models.ContactMessage, *models.ContactMessage]{s.Messages, byNewest},
		},
		authz: authz,
		log:   log,
	}
}

// Collection extracts the collection name of a request.
func Collection(r *http.Request) string { return r.PathValue("collection") }

func (h *ContentHandler) resource(w http.ResponseWriter, r *http.Request) (resource, bool) {
	res, ok := h.resources[Collection(r)]
	if !ok {
		notify(w, r, http.StatusNotFound, "unknown_collection", nil)
	}
	return res, ok
}

// load fetches the addressed record and checks the owner may act on it.
func (h *ContentHandler) load(r *http.Request, res resource, action gate.Action) (store.Record, error) {
	rec, err := res.get(r.Context(), ownerID(r), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if err := h.authz.Authorize(r.Context(), action, Collection(r), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	items, err := res.list(r.Context(), ownerID(r))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	rec, err := h.load(r, res, gate.ActionView)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *ContentHandler) decodeValid(w http.ResponseWriter, r *http.Request, res resource) (store.Record, bool) {
	rec, err := res.decode(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		notify(w, r, http.StatusBadRequest, "bad_request", nil)
		return nil, false
	}
	v := make(validation.Violations)
	validation.Struct(rec, v)
	if !v.Empty() {
		invalid(w, r, v)
		return nil, false
	}
	return rec, true
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	if err := h.authz.Authorize(r.Context(), gate.ActionCreate, Collection(r), nil); err != nil {
		fail(w, r, h.log, err)
		return
	}
	rec, ok := h.decodeValid(w, r, res)
	if !ok {
		return
	}
	rec.SetID("")
	rec.SetCreatedAt(time.Time{})
	if err := res.save(r.Context(), ownerID(r), rec); err != nil {
		fail(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

// Replace overwrites every field of an existing record; created_at is kept.
func (h *ContentHandler) Replace(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	if _, err := h.load(r, res, gate.ActionUpdate); err != nil {
		fail(w, r, h.log, err)
		return
	}
	rec, ok := h.decodeValid(w, r, res)
	if !ok {
		return
	}
	rec.SetID(r.PathValue("id"))
	if err := res.save(r.Context(), ownerID(r), rec); err != nil {
		fail(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	if _, err := h.load(r, res, gate.ActionDelete); err != nil {
		fail(w, r, h.log, err)
		return
	}
	if err := res.remove(r.Context(), ownerID(r), r.PathValue("id")); err != nil {
		fail(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Page renders the manager shell for one collection; it talks to the JSON API.
func (h *ContentHandler) Page(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.resources[Collection(r)]; !ok || Collection(r) == CollectionMessages {
		http.NotFound(w, r)
		return
	}
	if err := view.Render(w, r, "admin/content.html", map[string]any{
		"Collection":  Collection(r),
		"Collections": managedCollections,
	}); err != nil {
		h.log.Error("render content manager", zap.Error(err))
	}
}
