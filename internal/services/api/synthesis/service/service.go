// Package service contains the synthesis orchestration workflows
//
// The pipeline is always query first: the engine analyzes text into an
// AudioQuery, dictionary matches overlay pitch and length onto a copy of
// it, and the overlaid query goes back to the engine for rendering
package service

import (
	"context"

	"pitchfork/internal/adapters/engine/voicevox"
	"pitchfork/internal/core/audioquery"
	"pitchfork/internal/core/matcher"
	perr "pitchfork/internal/platform/errors"
	"pitchfork/internal/platform/logger"
	dictdom "pitchfork/internal/services/api/dictionary/domain"
	"pitchfork/internal/services/api/synthesis/domain"
)

// Service defines the service contract for synthesis
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	engine  voicevox.Engine
	entries dictdom.LoaderPort
	log     logger.Logger
}

// New creates a new synthesis service
func New(engine voicevox.Engine, entries dictdom.LoaderPort) *Svc {
	if engine == nil {
		panic("synthesis.Service requires a non nil engine")
	}
	if entries == nil {
		panic("synthesis.Service requires a non nil entry loader")
	}
	return &Svc{engine: engine, entries: entries, log: *logger.Named("synthesis")}
}

// Synthesize renders text to WAV with dictionary overlays applied
func (s *Svc) Synthesize(ctx context.Context, in domain.SynthesizeRequest) (domain.RenderResult, error) {
	q, err := s.engine.BuildQuery(ctx, in.Text, in.Speaker)
	if err != nil {
		return domain.RenderResult{}, err
	}

	modified, matches, _, err := s.overlay(ctx, q, in.Text)
	if err != nil {
		return domain.RenderResult{}, err
	}

	wav, err := s.engine.Render(ctx, modified, in.Speaker)
	if err != nil {
		return domain.RenderResult{}, err
	}
	return domain.RenderResult{WAV: wav, MatchesFound: matches}, nil
}

// Debug runs the overlay pipeline and returns the modified query instead
// of rendering it
func (s *Svc) Debug(ctx context.Context, in domain.SynthesizeRequest) (domain.DebugResponse, error) {
	q, err := s.engine.BuildQuery(ctx, in.Text, in.Speaker)
	if err != nil {
		return domain.DebugResponse{}, err
	}

	modified, matches, _, err := s.overlay(ctx, q, in.Text)
	if err != nil {
		return domain.DebugResponse{}, err
	}

	return domain.DebugResponse{
		Message:       "Debug: Query processed",
		MatchesFound:  matches,
		ModifiedQuery: modified,
	}, nil
}

// Preview renders a caller supplied query verbatim
func (s *Svc) Preview(ctx context.Context, in domain.PreviewRequest) ([]byte, error) {
	return s.engine.Render(ctx, &in.AudioQuery, in.Speaker)
}

// Apply overlays dictionary values onto a caller supplied query
//
// This endpoint sits in an editor's hot path, so it never fails the
// request over dictionary trouble: any load error degrades to returning
// the input query unchanged
func (s *Svc) Apply(ctx context.Context, in domain.ApplyRequest) (domain.ApplyResponse, error) {
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("dictionary load failed, passing query through")
		return domain.ApplyResponse{
			AudioQuery:     &in.AudioQuery,
			MatchesFound:   0,
			AppliedEntries: []string{},
		}, nil
	}

	q := &in.AudioQuery
	matches := matcher.FindMatchesWithText(q, toMatcherEntries(entries), in.Text)

	applied := make([]string, 0, len(matches))
	for _, m := range matches {
		next, err := audioquery.ApplyPartialMatch(q, m.Entry.Overrides, m.PhraseIndex, m.MoraStart, m.MoraEnd)
		if err != nil {
			if perr.Recoverable(err) {
				s.log.Warn().Err(err).Str("word", m.Entry.Word).Msg("skipping dictionary entry")
				continue
			}
			s.log.Warn().Err(err).Str("word", m.Entry.Word).Msg("overlay failed, passing query through")
			return domain.ApplyResponse{
				AudioQuery:     &in.AudioQuery,
				MatchesFound:   0,
				AppliedEntries: []string{},
			}, nil
		}
		q = next
		applied = append(applied, m.Entry.Word)
	}

	return domain.ApplyResponse{
		AudioQuery:     q,
		MatchesFound:   len(matches),
		AppliedEntries: applied,
	}, nil
}

// Health reports engine reachability and the current dictionary size
// It never returns an error; a dead engine or unreadable dictionary is
// an unhealthy payload
func (s *Svc) Health(ctx context.Context) domain.HealthResponse {
	version, err := s.engine.Version(ctx)
	if err != nil {
		return domain.HealthResponse{Status: "unhealthy", Error: err.Error()}
	}

	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return domain.HealthResponse{Status: "unhealthy", Error: err.Error()}
	}

	return domain.HealthResponse{
		Status:            "healthy",
		VoicevoxVersion:   version,
		DictionaryEntries: len(entries),
	}
}

// overlay matches the dictionary against q and applies each match in
// order onto a copy. Per-match range and count failures are skipped so
// one stale entry cannot poison the rest of the query
func (s *Svc) overlay(ctx context.Context, q *audioquery.AudioQuery, text string) (*audioquery.AudioQuery, int, []string, error) {
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return nil, 0, nil, err
	}

	matches := matcher.FindMatchesWithText(q, toMatcherEntries(entries), text)
	s.log.Debug().Int("entries", len(entries)).Int("matches", len(matches)).Msg("dictionary matching done")

	applied := make([]string, 0, len(matches))
	for _, m := range matches {
		next, err := audioquery.ApplyPartialMatch(q, m.Entry.Overrides, m.PhraseIndex, m.MoraStart, m.MoraEnd)
		if err != nil {
			if perr.Recoverable(err) {
				s.log.Warn().Err(err).Str("word", m.Entry.Word).Msg("skipping dictionary entry")
				continue
			}
			s.log.Warn().Err(err).Str("word", m.Entry.Word).Msg("overlay failed, keeping query so far")
			break
		}
		q = next
		applied = append(applied, m.Entry.Word)
	}
	return q, len(matches), applied, nil
}

func toMatcherEntries(entries []dictdom.Entry) []matcher.Entry {
	out := make([]matcher.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, matcher.Entry{
			Word:          e.Word,
			Pronunciation: e.Pronunciation,
			Overrides:     e.Overrides(),
		})
	}
	return out
}
