// Package http provides http transport for synthesis
package http

import (
	stdhttp "net/http"
	"strconv"

	"pitchfork/internal/modkit/httpkit"
	"pitchfork/internal/services/api/synthesis/domain"
	svc "pitchfork/internal/services/api/synthesis/service"
)

// MatchesFoundHeader carries the dictionary match count on audio responses
const MatchesFoundHeader = "X-Matches-Found"

// Register mounts synthesis endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostBindJSON[domain.SynthesizeRequest](r, "/", h.synthesize)
	httpkit.PostBindJSON[domain.SynthesizeRequest](r, "/debug", h.debug)
	httpkit.PostBindJSONLax[domain.PreviewRequest](r, "/preview", h.preview)
	httpkit.PostBindJSONLax[domain.ApplyRequest](r, "/apply", h.apply)
	httpkit.Get(r, "/health", h.health)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /synthesize Synthesis synthesize
// @Summary Synthesize text to WAV with dictionary overlays
// @Tags Synthesis
// @Accept json
// @Produce audio/wav
// @Param payload body domain.SynthesizeRequest true "Text and speaker"
// @Success 200 {file} binary "WAV audio"
// @Failure 503 {object} httpkit.Envelope "engine unavailable"
// @Router /synthesize [post]
func (h *handlers) synthesize(r *stdhttp.Request, in domain.SynthesizeRequest) (any, error) {
	res, err := h.svc.Synthesize(r.Context(), in)
	if err != nil {
		return nil, err
	}

	resp := httpkit.Raw("audio/wav", res.WAV)
	resp.Header = stdhttp.Header{}
	resp.Header.Set(MatchesFoundHeader, strconv.Itoa(res.MatchesFound))
	resp.Header.Set("Content-Disposition", `attachment; filename="synthesis.wav"`)
	return resp, nil
}

// swagger:route POST /synthesize/debug Synthesis synthesizeDebug
// @Summary Show the overlaid AudioQuery without rendering audio
// @Tags Synthesis
// @Accept json
// @Produce json
// @Param payload body domain.SynthesizeRequest true "Text and speaker"
// @Success 200 {object} domain.DebugResponse "ok"
// @Router /synthesize/debug [post]
func (h *handlers) debug(r *stdhttp.Request, in domain.SynthesizeRequest) (any, error) {
	return h.svc.Debug(r.Context(), in)
}

// swagger:route POST /synthesize/preview Synthesis synthesizePreview
// @Summary Render a caller supplied AudioQuery verbatim
// @Tags Synthesis
// @Accept json
// @Produce audio/wav
// @Param payload body domain.PreviewRequest true "Query and speaker"
// @Success 200 {file} binary "WAV audio"
// @Router /synthesize/preview [post]
func (h *handlers) preview(r *stdhttp.Request, in domain.PreviewRequest) (any, error) {
	wav, err := h.svc.Preview(r.Context(), in)
	if err != nil {
		return nil, err
	}

	resp := httpkit.Raw("audio/wav", wav)
	resp.Header = stdhttp.Header{}
	resp.Header.Set("Content-Disposition", `attachment; filename="preview.wav"`)
	return resp, nil
}

// swagger:route POST /synthesize/apply Synthesis synthesizeApply
// @Summary Overlay dictionary values onto a caller supplied AudioQuery
// @Tags Synthesis
// @Accept json
// @Produce json
// @Param payload body domain.ApplyRequest true "Query, original text, speaker"
// @Success 200 {object} domain.ApplyResponse "ok"
// @Router /synthesize/apply [post]
func (h *handlers) apply(r *stdhttp.Request, in domain.ApplyRequest) (any, error) {
	return h.svc.Apply(r.Context(), in)
}

// swagger:route GET /synthesize/health Synthesis synthesizeHealth
// @Summary Engine reachability and dictionary size
// @Tags Synthesis
// @Produce json
// @Success 200 {object} domain.HealthResponse "ok"
// @Router /synthesize/health [get]
func (h *handlers) health(r *stdhttp.Request) (any, error) {
	return h.svc.Health(r.Context()), nil
}
