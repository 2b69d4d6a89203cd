// Package matcher locates registered dictionary pronunciations inside an
// AudioQuery and reports their mora spans
//
// Two modes are supported. Exact mode requires a whole accent phrase to
// equal an entry's pronunciation. Partial mode allows an entry to cover a
// portion of a phrase and filters candidates against the original input
// text so homophones spelled differently in the source never match.
// Neither mode matches across accent phrase boundaries
package matcher

import (
	"strings"

	"pitchfork/internal/core/audioquery"
	"pitchfork/internal/core/kana"
)

// Entry is the matcher's view of a dictionary entry
// Word is the display form used for text filtering; Pronunciation is the
// canonical katakana transcription compared against mora text
type Entry struct {
	Word          string
	Pronunciation string
	Overrides     audioquery.Overrides
}

// Match is one located occurrence of an entry inside a single accent phrase
// Mora indices are a half-open range [MoraStart, MoraEnd)
type Match struct {
	Entry       Entry
	PhraseIndex int
	MoraStart   int
	MoraEnd     int
}

// ExtractPronunciation returns the concatenated mora texts of the whole
// query in document order. Pause moras carry no text and are skipped
func ExtractPronunciation(q *audioquery.AudioQuery) string {
	var b strings.Builder
	for _, p := range q.AccentPhrases {
		for _, m := range p.Moras {
			b.WriteString(m.Text)
		}
	}
	return b.String()
}

// phraseText returns the concatenated mora texts of one phrase along with
// each mora's starting byte offset into that string
func phraseText(p audioquery.AccentPhrase) (string, []int) {
	var b strings.Builder
	offsets := make([]int, len(p.Moras))
	for i, m := range p.Moras {
		offsets[i] = b.Len()
		b.WriteString(m.Text)
	}
	return b.String(), offsets
}

// FindMatches runs exact mode: a phrase matches only when its concatenated
// mora texts equal an entry's pronunciation exactly. Partial containment in
// either direction is rejected. The input text is not consulted
//
// Results are ordered by phrase, then by entry-list order for entries that
// share a pronunciation
func FindMatches(q *audioquery.AudioQuery, entries []Entry) []Match {
	if len(entries) == 0 || q == nil || len(q.AccentPhrases) == 0 {
		return nil
	}

	byPronunciation := make(map[string][]Entry, len(entries))
	for _, e := range entries {
		key := kana.Canonical(e.Pronunciation)
		if key == "" {
			continue
		}
		byPronunciation[key] = append(byPronunciation[key], e)
	}

	var results []Match
	for pi, phrase := range q.AccentPhrases {
		if len(phrase.Moras) == 0 {
			continue
		}
		text, _ := phraseText(phrase)
		for _, e := range byPronunciation[text] {
			results = append(results, Match{
				Entry:       e,
				PhraseIndex: pi,
				MoraStart:   0,
				MoraEnd:     len(phrase.Moras),
			})
		}
	}
	return results
}

// FindMatchesWithText runs partial mode: entries whose Word does not occur
// in inputText are discarded, then each surviving entry's pronunciation is
// scanned for as a substring of each phrase's concatenated mora texts
//
// Occurrences within one phrase are found left to right and never overlap;
// the scan cursor advances past each match. A candidate span is accepted
// only when the mora texts it covers reconstruct the pronunciation exactly,
// which guards against moras whose text is longer than one character
//
// Results are ordered by phrase, then entry-list order, then left-to-right
// occurrence order. The orchestrator applies overlays in this sequence
func FindMatchesWithText(q *audioquery.AudioQuery, entries []Entry, inputText string) []Match {
	if len(entries) == 0 || inputText == "" || q == nil || len(q.AccentPhrases) == 0 {
		return nil
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if e.Word != "" && strings.Contains(inputText, e.Word) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	var results []Match
	for pi, phrase := range q.AccentPhrases {
		if len(phrase.Moras) == 0 {
			continue
		}
		text, offsets := phraseText(phrase)

		for _, e := range filtered {
			pron := kana.Canonical(e.Pronunciation)
			if pron == "" {
				continue
			}

			cursor := 0
			for {
				rel := strings.Index(text[cursor:], pron)
				if rel < 0 {
					break
				}
				pos := cursor + rel

				if span, ok := moraSpan(phrase, offsets, pos, pron); ok {
					results = append(results, Match{
						Entry:       e,
						PhraseIndex: pi,
						MoraStart:   span[0],
						MoraEnd:     span[1],
					})
				}

				cursor = pos + len(pron)
			}
		}
	}
	return results
}

// moraSpan translates a byte position of a pronunciation hit into a mora
// index range, verifying that the covered moras reconstruct the
// pronunciation exactly. A hit that starts or ends mid-mora is rejected
func moraSpan(p audioquery.AccentPhrase, offsets []int, pos int, pron string) ([2]int, bool) {
	start := -1
	for i, off := range offsets {
		if off == pos {
			start = i
			break
		}
	}
	if start < 0 {
		return [2]int{}, false
	}

	end := start
	covered := 0
	for i := start; i < len(p.Moras); i++ {
		covered += len(p.Moras[i].Text)
		end = i + 1
		if covered >= len(pron) {
			break
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(p.Moras[i].Text)
	}
	if b.String() != pron {
		return [2]int{}, false
	}
	return [2]int{start, end}, true
}
