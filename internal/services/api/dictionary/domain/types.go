// Package domain holds the dictionary entry model and service contracts
package domain

import (
	"encoding/json"

	"pitchfork/internal/core/audioquery"
)

// Entry is one extended dictionary record
//
// Word is the surface form matched against input text. Pronunciation is
// the katakana transcription matched against query moras. PitchValues
// and LengthValues are overlay data, one value per pronunciation mora;
// either may be empty to leave that channel untouched
//
// AccentPhrases is an opaque passthrough: matching and overlay never
// read it, but whole-file rewrites must not strip it from hand-edited
// stores
type Entry struct {
	Word          string          `json:"word" validate:"required,min=1,max=200"`
	Pronunciation string          `json:"pronunciation" validate:"required,min=1,max=200"`
	AccentType    int             `json:"accent_type" validate:"gte=0"`
	MoraCount     *int            `json:"mora_count,omitempty"`
	PitchValues   []float64       `json:"pitch_values,omitempty" validate:"omitempty,dive,gte=0,lte=10"`
	LengthValues  []float64       `json:"length_values,omitempty" validate:"omitempty,dive,gte=0"`
	SpeakerID     *int            `json:"speaker_id,omitempty"`
	AccentPhrases json.RawMessage `json:"accent_phrases,omitempty"`
}

// Overrides returns the entry's overlay values in the typed overlay form
func (e Entry) Overrides() audioquery.Overrides {
	return audioquery.Overrides{
		PitchValues:  e.PitchValues,
		LengthValues: e.LengthValues,
	}
}
