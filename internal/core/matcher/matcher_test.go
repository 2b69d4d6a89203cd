package matcher

import (
	"reflect"
	"testing"

	"pitchfork/internal/core/audioquery"
)

// phrase builds an accent phrase with one mora per string
func phrase(texts ...string) audioquery.AccentPhrase {
	moras := make([]audioquery.Mora, len(texts))
	for i, t := range texts {
		moras[i] = audioquery.Mora{Text: t, VowelLength: 0.1, Pitch: 5.0}
	}
	return audioquery.AccentPhrase{Moras: moras, Accent: 1}
}

func query(phrases ...audioquery.AccentPhrase) *audioquery.AudioQuery {
	return &audioquery.AudioQuery{AccentPhrases: phrases, SpeedScale: 1.0}
}

func spans(matches []Match) [][3]int {
	out := make([][3]int, len(matches))
	for i, m := range matches {
		out[i] = [3]int{m.PhraseIndex, m.MoraStart, m.MoraEnd}
	}
	return out
}

func TestExtractPronunciation(t *testing.T) {
	q := query(phrase("コ", "ン"), phrase("ズ", "ン", "ダ"))
	if got := ExtractPronunciation(q); got != "コンズンダ" {
		t.Fatalf("ExtractPronunciation = %q", got)
	}
}

func TestFindMatches_WholePhraseOnly(t *testing.T) {
	entries := []Entry{{Word: "ずんだもん", Pronunciation: "ズンダモン"}}

	// exact phrase matches
	q := query(phrase("ズ", "ン", "ダ", "モ", "ン"))
	got := FindMatches(q, entries)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].PhraseIndex != 0 || got[0].MoraStart != 0 || got[0].MoraEnd != 5 {
		t.Fatalf("match span = %+v", got[0])
	}

	// longer phrase containing the pronunciation does not match
	q2 := query(phrase("ズ", "ン", "ダ", "モ", "ン", "チ", "ャ", "ン"))
	if got := FindMatches(q2, entries); len(got) != 0 {
		t.Fatalf("partial containment matched in exact mode: %+v", got)
	}

	// phrase that is a prefix of the pronunciation does not match
	q3 := query(phrase("ズ", "ン", "ダ"))
	if got := FindMatches(q3, entries); len(got) != 0 {
		t.Fatalf("shorter phrase matched in exact mode: %+v", got)
	}
}

func TestFindMatches_SharedPronunciationAndOrder(t *testing.T) {
	entries := []Entry{
		{Word: "ずんだもん", Pronunciation: "ズンダモン"},
		{Word: "隅田門", Pronunciation: "ズンダモン"},
	}
	q := query(phrase("ズ", "ン", "ダ", "モ", "ン"))

	got := FindMatches(q, entries)
	if len(got) != 2 {
		t.Fatalf("expected one match per entry, got %d", len(got))
	}
	if got[0].Entry.Word != "ずんだもん" || got[1].Entry.Word != "隅田門" {
		t.Fatalf("entry-list order not preserved: %v %v", got[0].Entry.Word, got[1].Entry.Word)
	}

	// running twice yields identical, order-stable results
	again := FindMatches(q, entries)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("exact matching is not idempotent")
	}
}

func TestFindMatches_EmptyInputs(t *testing.T) {
	if got := FindMatches(query(phrase("ア")), nil); got != nil {
		t.Fatalf("nil entries should yield nil")
	}
	if got := FindMatches(query(), []Entry{{Word: "x", Pronunciation: "ア"}}); got != nil {
		t.Fatalf("no phrases should yield nil")
	}
}

func TestFindMatchesWithText_PartialSpan(t *testing.T) {
	entries := []Entry{{Word: "ずんだもん", Pronunciation: "ズンダモン"}}
	q := query(phrase("ズ", "ン", "ダ", "モ", "ン", "デ", "ス"))

	got := FindMatchesWithText(q, entries, "ずんだもんです")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].MoraStart != 0 || got[0].MoraEnd != 5 {
		t.Fatalf("span = [%d,%d), want [0,5)", got[0].MoraStart, got[0].MoraEnd)
	}
}

func TestFindMatchesWithText_DisjointOccurrences(t *testing.T) {
	entries := []Entry{{Word: "ずんだもん", Pronunciation: "ズンダモン"}}
	q := query(phrase("ズ", "ン", "ダ", "モ", "ン", "ト", "ズ", "ン", "ダ", "モ", "ン"))

	got := FindMatchesWithText(q, entries, "ずんだもんとずんだもん")
	want := [][3]int{{0, 0, 5}, {0, 6, 11}}
	if !reflect.DeepEqual(spans(got), want) {
		t.Fatalf("spans = %v, want %v", spans(got), want)
	}
}

func TestFindMatchesWithText_TextFilterBlocksHomophones(t *testing.T) {
	// same phonetic transcription, different source-text spelling
	entries := []Entry{{Word: "ずんだもん", Pronunciation: "ズンダモン"}}
	q := query(phrase("ズ", "ン", "ダ", "モ", "ン", "デ", "ス"))

	if got := FindMatchesWithText(q, entries, "隅田門です"); len(got) != 0 {
		t.Fatalf("text filter failed to block homophone: %+v", got)
	}
}

func TestFindMatchesWithText_NoCrossPhraseMatch(t *testing.T) {
	entries := []Entry{{Word: "ずんだもん", Pronunciation: "ズンダモン"}}
	// pronunciation split across two phrases
	q := query(phrase("ズ", "ン", "ダ"), phrase("モ", "ン"))

	if got := FindMatchesWithText(q, entries, "ずんだもん"); len(got) != 0 {
		t.Fatalf("matched across phrase boundary: %+v", got)
	}
}

func TestFindMatchesWithText_MultiCharMora(t *testing.T) {
	// moras longer than one character must not misalign the span math
	entries := []Entry{{Word: "きょう", Pronunciation: "キョウ"}}
	q := query(phrase("キョ", "ウ", "ワ"))

	got := FindMatchesWithText(q, entries, "きょうは")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].MoraStart != 0 || got[0].MoraEnd != 2 {
		t.Fatalf("span = [%d,%d), want [0,2)", got[0].MoraStart, got[0].MoraEnd)
	}

	// a hit that would start mid-mora is rejected
	entries2 := []Entry{{Word: "ょう", Pronunciation: "ョウ"}}
	if got := FindMatchesWithText(q, entries2, "ょう"); len(got) != 0 {
		t.Fatalf("mid-mora hit accepted: %+v", got)
	}
}

func TestFindMatchesWithText_Ordering(t *testing.T) {
	entries := []Entry{
		{Word: "もん", Pronunciation: "モン"},
		{Word: "ずんだ", Pronunciation: "ズンダ"},
	}
	q := query(
		phrase("ズ", "ン", "ダ", "モ", "ン"),
		phrase("モ", "ン"),
	)

	got := FindMatchesWithText(q, entries, "ずんだもんもん")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	// phrase order first, then entry-list order within a phrase
	if got[0].PhraseIndex != 0 || got[0].Entry.Word != "もん" {
		t.Fatalf("first match = %+v", got[0])
	}
	if got[1].PhraseIndex != 0 || got[1].Entry.Word != "ずんだ" {
		t.Fatalf("second match = %+v", got[1])
	}
	if got[2].PhraseIndex != 1 || got[2].Entry.Word != "もん" {
		t.Fatalf("third match = %+v", got[2])
	}
}

func TestFindMatchesWithText_CanonicalizesPronunciation(t *testing.T) {
	// hiragana pronunciation from a hand-edited store still matches
	entries := []Entry{{Word: "ずんだもん", Pronunciation: "ずんだもん"}}
	q := query(phrase("ズ", "ン", "ダ", "モ", "ン"))

	if got := FindMatchesWithText(q, entries, "ずんだもんです"); len(got) != 1 {
		t.Fatalf("canonicalized pronunciation did not match: %+v", got)
	}
}

func TestFindMatchesWithText_EmptyShortCircuits(t *testing.T) {
	entries := []Entry{{Word: "x", Pronunciation: "ア"}}
	if got := FindMatchesWithText(query(phrase("ア")), entries, ""); got != nil {
		t.Fatalf("empty text should yield nil")
	}
	if got := FindMatchesWithText(query(phrase("ア")), nil, "x"); got != nil {
		t.Fatalf("empty entries should yield nil")
	}
}
