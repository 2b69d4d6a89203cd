// Package domain holds DTOs for synthesis http and service contracts
package domain

import "pitchfork/internal/core/audioquery"

// SynthesizeRequest asks for text to be rendered with dictionary overlays
type SynthesizeRequest struct {
	Text    string `json:"text" validate:"required,min=1,max=1000" example:"ずんだもんです"`
	Speaker int    `json:"speaker" validate:"gte=0" example:"1"`
}

// PreviewRequest renders a caller supplied query without touching the dictionary
type PreviewRequest struct {
	AudioQuery audioquery.AudioQuery `json:"audio_query" validate:"required"`
	Speaker    int                   `json:"speaker" validate:"gte=0" example:"1"`
}

// ApplyRequest overlays dictionary values onto a caller supplied query
// Text is the original input used for match filtering
type ApplyRequest struct {
	AudioQuery audioquery.AudioQuery `json:"audio_query" validate:"required"`
	Text       string                `json:"text" validate:"required,min=1" example:"ずんだもんです"`
	Speaker    int                   `json:"speaker" validate:"gte=0" example:"1"`
}

// ApplyResponse returns the overlaid query and what was applied
type ApplyResponse struct {
	AudioQuery     *audioquery.AudioQuery `json:"audio_query"`
	MatchesFound   int                    `json:"matches_found"`
	AppliedEntries []string               `json:"applied_entries"`
}

// DebugResponse exposes the overlaid query without rendering audio
type DebugResponse struct {
	Message       string                 `json:"message" example:"Debug: Query processed"`
	MatchesFound  int                    `json:"matches_found"`
	ModifiedQuery *audioquery.AudioQuery `json:"modified_query"`
}

// HealthResponse reports engine reachability and dictionary size
type HealthResponse struct {
	Status            string `json:"status" example:"healthy"`
	VoicevoxVersion   string `json:"voicevox_version,omitempty" example:"0.14.7"`
	DictionaryEntries int    `json:"dictionary_entries"`
	Error             string `json:"error,omitempty"`
}

// RenderResult is a finished synthesis: WAV audio plus match metadata
type RenderResult struct {
	WAV          []byte
	MatchesFound int
}
