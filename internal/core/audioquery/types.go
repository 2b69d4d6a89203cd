// Package audioquery holds the typed synthesis query model and the
// overlay engine that writes dictionary override values into it
//
// JSON field names mirror the engine wire format exactly so a query
// fetched from the engine round-trips unchanged through copy-and-patch
package audioquery

// Mora is the smallest voiced unit with its own pitch and duration
type Mora struct {
	Text            string   `json:"text"`
	Consonant       *string  `json:"consonant"`
	ConsonantLength *float64 `json:"consonant_length"`
	Vowel           string   `json:"vowel"`
	VowelLength     float64  `json:"vowel_length"`
	Pitch           float64  `json:"pitch"`
}

// AccentPhrase is a maximal run of moras sharing one pitch-accent contour
// Phrases are never merged or split by this system
type AccentPhrase struct {
	Moras           []Mora `json:"moras"`
	Accent          int    `json:"accent"`
	PauseMora       *Mora  `json:"pause_mora"`
	IsInterrogative bool   `json:"is_interrogative"`
}

// AudioQuery is the full synthesis input produced by the engine
type AudioQuery struct {
	AccentPhrases      []AccentPhrase `json:"accent_phrases"`
	SpeedScale         float64        `json:"speedScale"`
	PitchScale         float64        `json:"pitchScale"`
	IntonationScale    float64        `json:"intonationScale"`
	VolumeScale        float64        `json:"volumeScale"`
	PrePhonemeLength   float64        `json:"prePhonemeLength"`
	PostPhonemeLength  float64        `json:"postPhonemeLength"`
	OutputSamplingRate int            `json:"outputSamplingRate"`
	OutputStereo       bool           `json:"outputStereo"`
	Kana               string         `json:"kana,omitempty"`

	// present on newer engine builds only
	PauseLength      *float64 `json:"pauseLength,omitempty"`
	PauseLengthScale *float64 `json:"pauseLengthScale,omitempty"`
}

// Clone returns a deep, independent copy of m
func (m Mora) Clone() Mora {
	out := m
	if m.Consonant != nil {
		c := *m.Consonant
		out.Consonant = &c
	}
	if m.ConsonantLength != nil {
		l := *m.ConsonantLength
		out.ConsonantLength = &l
	}
	return out
}

// Clone returns a deep, independent copy of p
func (p AccentPhrase) Clone() AccentPhrase {
	out := p
	out.Moras = make([]Mora, len(p.Moras))
	for i, m := range p.Moras {
		out.Moras[i] = m.Clone()
	}
	if p.PauseMora != nil {
		pm := p.PauseMora.Clone()
		out.PauseMora = &pm
	}
	return out
}

// Clone returns a deep, independent copy of q
// Every overlay operation works on a clone so callers never observe
// mutation of their input
func (q *AudioQuery) Clone() *AudioQuery {
	if q == nil {
		return nil
	}
	out := *q
	out.AccentPhrases = make([]AccentPhrase, len(q.AccentPhrases))
	for i, p := range q.AccentPhrases {
		out.AccentPhrases[i] = p.Clone()
	}
	if q.PauseLength != nil {
		v := *q.PauseLength
		out.PauseLength = &v
	}
	if q.PauseLengthScale != nil {
		v := *q.PauseLengthScale
		out.PauseLengthScale = &v
	}
	return &out
}

// TotalMoraCount returns the mora count across all accent phrases
// Pause moras are not counted
func (q *AudioQuery) TotalMoraCount() int {
	n := 0
	for _, p := range q.AccentPhrases {
		n += len(p.Moras)
	}
	return n
}
