// Package http provides http transport for the dictionary
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"pitchfork/internal/modkit/httpkit"
	perr "pitchfork/internal/platform/errors"
	"pitchfork/internal/services/api/dictionary/domain"
	svc "pitchfork/internal/services/api/dictionary/service"
)

// Register mounts dictionary endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PostBindJSON[domain.Entry](r, "/", h.upsert)
	httpkit.Get(r, "/search", h.search)
	httpkit.Delete(r, "/{word}", h.remove)

	httpkit.Get(r, "/voicevox/version", h.engineVersion)
	httpkit.Get(r, "/voicevox/speakers", h.engineSpeakers)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /dictionary Dictionary dictionaryList
// @Summary Full dictionary dump
// @Tags Dictionary
// @Produce json
// @Success 200 {object} domain.ListResponse "ok"
// @Router /dictionary [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route POST /dictionary Dictionary dictionaryUpsert
// @Summary Add or replace a dictionary entry keyed by word
// @Tags Dictionary
// @Accept json
// @Produce json
// @Param payload body domain.Entry true "Entry"
// @Success 200 {object} domain.Entry "ok"
// @Router /dictionary [post]
func (h *handlers) upsert(r *stdhttp.Request, in domain.Entry) (any, error) {
	return h.svc.Upsert(r.Context(), in)
}

// swagger:route GET /dictionary/search Dictionary dictionarySearch
// @Summary Exact word lookup
// @Tags Dictionary
// @Produce json
// @Param word query string true "Surface form to look up"
// @Success 200 {object} domain.ListResponse "ok"
// @Router /dictionary/search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	word := r.URL.Query().Get("word")
	if word == "" {
		return nil, perr.Newf(perr.ErrorCodeValidation, "word query parameter is required")
	}
	return h.svc.Search(r.Context(), word)
}

// swagger:route DELETE /dictionary/{word} Dictionary dictionaryDelete
// @Summary Delete the entry for a word
// @Tags Dictionary
// @Produce json
// @Param word path string true "Surface form to delete"
// @Success 200 {object} domain.DeleteResponse "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /dictionary/{word} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	word := chi.URLParam(r, "word")
	if word == "" {
		return nil, perr.Newf(perr.ErrorCodeValidation, "word path parameter is required")
	}
	return h.svc.Delete(r.Context(), word)
}

// swagger:route GET /dictionary/voicevox/version Dictionary dictionaryEngineVersion
// @Summary Upstream engine version
// @Tags Dictionary
// @Produce json
// @Success 200 {object} domain.EngineVersionResponse "ok"
// @Failure 503 {object} httpkit.Envelope "engine unavailable"
// @Router /dictionary/voicevox/version [get]
func (h *handlers) engineVersion(r *stdhttp.Request) (any, error) {
	return h.svc.EngineVersion(r.Context())
}

// swagger:route GET /dictionary/voicevox/speakers Dictionary dictionaryEngineSpeakers
// @Summary Upstream engine speaker catalog
// @Tags Dictionary
// @Produce json
// @Success 200 {object} domain.EngineSpeakersResponse "ok"
// @Failure 503 {object} httpkit.Envelope "engine unavailable"
// @Router /dictionary/voicevox/speakers [get]
func (h *handlers) engineSpeakers(r *stdhttp.Request) (any, error) {
	return h.svc.EngineSpeakers(r.Context())
}
