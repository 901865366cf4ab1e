package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHandler_CRUD(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, owner, http.MethodPost, "/admin/api/portfolio", map[string]any{
		"title": "Brand refresh", "image_url": "https://img.example.com/a.png", "tags": []string{"brand"}, "order": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.PortfolioItem](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner, created.OwnerID)

	rec = e.do(t, owner, http.MethodPost, "/admin/api/portfolio", map[string]any{
		"title": "Poster", "image_url": "https://img.example.com/b.png", "order": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	list := decode[struct {
		Items []models.PortfolioItem `json:"items"`
	}](t, e.do(t, owner, http.MethodGet, "/admin/api/portfolio", nil))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Poster", list.Items[0].Title)

	rec = e.do(t, owner, http.MethodPut, "/admin/api/portfolio/"+created.ID, map[string]any{
		"title": "Brand refresh v2", "image_url": "https://img.example.com/a2.png",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[models.PortfolioItem](t, e.do(t, owner, http.MethodGet, "/admin/api/portfolio/"+created.ID, nil))
	assert.Equal(t, "Brand refresh v2", got.Title)
	assert.Empty(t, got.Tags)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)

	assert.Equal(t, http.StatusNoContent, e.do(t, owner, http.MethodDelete, "/admin/api/portfolio/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, owner, http.MethodGet, "/admin/api/portfolio/"+created.ID, nil).Code)
}

func TestContentHandler_CreateValidates(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, owner, http.MethodPost, "/admin/api/testimonials", map[string]any{"name": "Ana", "rating": 9})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[httpx.ErrorResponse](t, rec)
	assert.Equal(t, "invalid", body.Error)
	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "quote")
	assert.Contains(t, details, "rating")

	list := decode[struct {
		Items []models.Testimonial `json:"items"`
	}](t, e.do(t, owner, http.MethodGet, "/admin/api/testimonials", nil))
	assert.Empty(t, list.Items)
}

func TestContentHandler_UnknownCollection(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, owner, http.MethodGet, "/admin/api/secrets", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_collection", decode[httpx.ErrorResponse](t, rec).Error)
}

func TestContentHandler_OwnerScoping(t *testing.T) {
	e := newEnv(t, nil)
	created := decode[models.Tool](t, e.do(t, owner, http.MethodPost, "/admin/api/tools", map[string]any{"name": "Figma"}))

	assert.Equal(t, http.StatusNotFound, e.do(t, "owner-2", http.MethodGet, "/admin/api/tools/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, "owner-2", http.MethodDelete, "/admin/api/tools/"+created.ID, nil).Code)

	// a session without an owner is refused by the gate
	assert.Equal(t, http.StatusForbidden, e.do(t, "", http.MethodPost, "/admin/api/tools", map[string]any{"name": "Sketch"}).Code)
}
