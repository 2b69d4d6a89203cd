// Package service contains dictionary workflows
package service

import (
	"context"
	"fmt"

	"pitchfork/internal/adapters/engine/voicevox"
	"pitchfork/internal/core/kana"
	"pitchfork/internal/services/api/dictionary/domain"
	"pitchfork/internal/services/api/dictionary/repo"
)

// Service defines the service contract for the dictionary
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	store  *repo.Store
	engine voicevox.Engine
}

// New creates a new dictionary service
func New(store *repo.Store, engine voicevox.Engine) *Svc {
	if store == nil {
		panic("dictionary.Service requires a non nil store")
	}
	return &Svc{store: store, engine: engine}
}

// List returns every entry in the dictionary
func (s *Svc) List(ctx context.Context) (domain.ListResponse, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return domain.ListResponse{}, err
	}
	return domain.ListResponse{Entries: entries, Total: len(entries)}, nil
}

// Upsert inserts or replaces the entry keyed by word
//
// The pronunciation is canonicalized to katakana before storage so the
// matcher never needs to renormalize per lookup
func (s *Svc) Upsert(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	e.Pronunciation = kana.Canonical(e.Pronunciation)
	return s.store.Upsert(ctx, e)
}

// Search returns entries whose word equals the given word
func (s *Svc) Search(ctx context.Context, word string) (domain.ListResponse, error) {
	hits, err := s.store.FindByWord(ctx, word)
	if err != nil {
		return domain.ListResponse{}, err
	}
	return domain.ListResponse{Entries: hits, Total: len(hits)}, nil
}

// Delete removes the entry for word
func (s *Svc) Delete(ctx context.Context, word string) (domain.DeleteResponse, error) {
	if err := s.store.Delete(ctx, word); err != nil {
		return domain.DeleteResponse{}, err
	}
	return domain.DeleteResponse{Message: fmt.Sprintf("Deleted entries for word: %s", word)}, nil
}

// EngineVersion reports the upstream engine version
func (s *Svc) EngineVersion(ctx context.Context) (domain.EngineVersionResponse, error) {
	v, err := s.engine.Version(ctx)
	if err != nil {
		return domain.EngineVersionResponse{}, err
	}
	return domain.EngineVersionResponse{Version: v}, nil
}

// EngineSpeakers returns the engine speaker catalog unmodified
func (s *Svc) EngineSpeakers(ctx context.Context) (domain.EngineSpeakersResponse, error) {
	raw, err := s.engine.Speakers(ctx)
	if err != nil {
		return domain.EngineSpeakersResponse{}, err
	}
	return domain.EngineSpeakersResponse{Speakers: raw}, nil
}

// Entries implements the loader port consumed by the synthesis module
func (s *Svc) Entries(ctx context.Context) ([]domain.Entry, error) {
	return s.store.Load(ctx)
}
