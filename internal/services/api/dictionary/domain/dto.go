package domain

import "encoding/json"

// ListResponse returns the whole dictionary
type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// DeleteResponse confirms an entry removal
type DeleteResponse struct {
	Message string `json:"message" example:"Deleted entries for word: ずんだもん"`
}

// EngineVersionResponse reports the upstream engine version
type EngineVersionResponse struct {
	Version string `json:"version" example:"0.14.7"`
}

// EngineSpeakersResponse carries the engine speaker catalog verbatim
type EngineSpeakersResponse struct {
	Speakers json.RawMessage `json:"speakers"`
}
