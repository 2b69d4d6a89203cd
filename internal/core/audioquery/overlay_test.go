package audioquery

import (
	"testing"

	perr "pitchfork/internal/platform/errors"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// testQuery builds a 2-phrase query with 2 and 3 moras
func testQuery() *AudioQuery {
	return &AudioQuery{
		AccentPhrases: []AccentPhrase{
			{
				Moras: []Mora{
					{Text: "コ", Consonant: strPtr("k"), ConsonantLength: f64Ptr(0.05), Vowel: "o", VowelLength: 0.1, Pitch: 5.0},
					{Text: "ン", Vowel: "N", VowelLength: 0.1, Pitch: 5.1},
				},
				Accent: 1,
			},
			{
				Moras: []Mora{
					{Text: "ズ", Consonant: strPtr("z"), ConsonantLength: f64Ptr(0.04), Vowel: "u", VowelLength: 0.1, Pitch: 5.2},
					{Text: "ン", Vowel: "N", VowelLength: 0.1, Pitch: 5.3},
					{Text: "ダ", Consonant: strPtr("d"), ConsonantLength: f64Ptr(0.03), Vowel: "a", VowelLength: 0.1, Pitch: 5.4},
				},
				Accent: 3,
			},
		},
		SpeedScale:         1.0,
		PitchScale:         0.0,
		IntonationScale:    1.0,
		VolumeScale:        1.0,
		OutputSamplingRate: 24000,
	}
}

func TestClone_Independent(t *testing.T) {
	q := testQuery()
	c := q.Clone()

	c.AccentPhrases[0].Moras[0].Pitch = 9.9
	*c.AccentPhrases[0].Moras[0].ConsonantLength = 1.0
	c.SpeedScale = 2.0

	if q.AccentPhrases[0].Moras[0].Pitch != 5.0 {
		t.Fatalf("clone shares mora storage with original")
	}
	if *q.AccentPhrases[0].Moras[0].ConsonantLength != 0.05 {
		t.Fatalf("clone shares consonant_length pointer with original")
	}
	if q.SpeedScale != 1.0 {
		t.Fatalf("clone shares scalar fields with original")
	}
}

func TestApplyPartialMatch_WritesRange(t *testing.T) {
	q := testQuery()
	ov := Overrides{
		PitchValues:  []float64{6.0, 6.1},
		LengthValues: []float64{0.2, 0.3},
	}

	out, err := ApplyPartialMatch(q, ov, 1, 0, 2)
	if err != nil {
		t.Fatalf("ApplyPartialMatch: %v", err)
	}

	got := out.AccentPhrases[1].Moras
	if got[0].Pitch != 6.0 || got[1].Pitch != 6.1 {
		t.Fatalf("pitch not written: %v %v", got[0].Pitch, got[1].Pitch)
	}
	if got[0].VowelLength != 0.2 || got[1].VowelLength != 0.3 {
		t.Fatalf("vowel_length not written: %v %v", got[0].VowelLength, got[1].VowelLength)
	}
	// third mora and consonant lengths untouched
	if got[2].Pitch != 5.4 || *got[0].ConsonantLength != 0.04 {
		t.Fatalf("overlay leaked outside range")
	}
	// other phrase untouched
	if out.AccentPhrases[0].Moras[0].Pitch != 5.0 {
		t.Fatalf("overlay leaked into other phrase")
	}
	// original unobserved
	if q.AccentPhrases[1].Moras[0].Pitch != 5.2 || q.AccentPhrases[1].Moras[0].VowelLength != 0.1 {
		t.Fatalf("input query mutated")
	}
}

func TestApplyPartialMatch_RangeErrors(t *testing.T) {
	q := testQuery()
	ov := Overrides{PitchValues: []float64{1}}

	cases := []struct {
		name               string
		phrase, start, end int
	}{
		{name: "phrase index too large", phrase: 2, start: 0, end: 1},
		{name: "phrase index negative", phrase: -1, start: 0, end: 1},
		{name: "mora start negative", phrase: 0, start: -1, end: 0},
		{name: "mora end past phrase", phrase: 0, start: 0, end: 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ApplyPartialMatch(q, ov, c.phrase, c.start, c.end)
			if !perr.IsCode(err, perr.ErrorCodeRange) {
				t.Fatalf("expected range error, got %v", err)
			}
		})
	}
}

func TestApplyPartialMatch_CountMismatch(t *testing.T) {
	q := testQuery()

	_, err := ApplyPartialMatch(q, Overrides{PitchValues: []float64{1, 2, 3}}, 0, 0, 2)
	if !perr.IsCode(err, perr.ErrorCodeCountMismatch) {
		t.Fatalf("expected count mismatch for pitch, got %v", err)
	}

	_, err = ApplyPartialMatch(q, Overrides{LengthValues: []float64{1}}, 0, 0, 2)
	if !perr.IsCode(err, perr.ErrorCodeCountMismatch) {
		t.Fatalf("expected count mismatch for length, got %v", err)
	}

	// failed overlay must leave the input untouched
	if q.AccentPhrases[0].Moras[0].Pitch != 5.0 || q.AccentPhrases[0].Moras[0].VowelLength != 0.1 {
		t.Fatalf("failed overlay mutated input")
	}
}

func TestApplyPartialMatch_EmptyOverridesLeaveValues(t *testing.T) {
	q := testQuery()

	out, err := ApplyPartialMatch(q, Overrides{}, 0, 0, 2)
	if err != nil {
		t.Fatalf("ApplyPartialMatch: %v", err)
	}
	// empty list means "do not override", not "zero out"
	if out.AccentPhrases[0].Moras[0].Pitch != 5.0 || out.AccentPhrases[0].Moras[0].VowelLength != 0.1 {
		t.Fatalf("empty overrides changed values")
	}
}

func TestApplyPitchValues_GlobalWalk(t *testing.T) {
	q := testQuery()

	out, err := ApplyPitchValues(q, []float64{6.0, 6.1, 6.2, 6.3, 6.4}, 0)
	if err != nil {
		t.Fatalf("ApplyPitchValues: %v", err)
	}

	want0 := []float64{6.0, 6.1}
	for i, w := range want0 {
		if out.AccentPhrases[0].Moras[i].Pitch != w {
			t.Fatalf("phrase 0 mora %d pitch = %v, want %v", i, out.AccentPhrases[0].Moras[i].Pitch, w)
		}
	}
	want1 := []float64{6.2, 6.3, 6.4}
	for i, w := range want1 {
		if out.AccentPhrases[1].Moras[i].Pitch != w {
			t.Fatalf("phrase 1 mora %d pitch = %v, want %v", i, out.AccentPhrases[1].Moras[i].Pitch, w)
		}
	}
}

func TestApplyPitchValues_StartOffsetAndMismatch(t *testing.T) {
	q := testQuery()

	out, err := ApplyPitchValues(q, []float64{7.0, 7.1, 7.2}, 2)
	if err != nil {
		t.Fatalf("ApplyPitchValues offset: %v", err)
	}
	if out.AccentPhrases[0].Moras[0].Pitch != 5.0 || out.AccentPhrases[0].Moras[1].Pitch != 5.1 {
		t.Fatalf("moras before start index were written")
	}
	if out.AccentPhrases[1].Moras[0].Pitch != 7.0 || out.AccentPhrases[1].Moras[2].Pitch != 7.2 {
		t.Fatalf("moras from start index not written")
	}

	_, err = ApplyPitchValues(q, []float64{1, 2}, 0)
	if !perr.IsCode(err, perr.ErrorCodeCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
}

func TestApplyLengthValues_EmptyIsNoOpCopy(t *testing.T) {
	q := testQuery()

	out, err := ApplyLengthValues(q, nil, 0)
	if err != nil {
		t.Fatalf("ApplyLengthValues: %v", err)
	}
	out.AccentPhrases[0].Moras[0].VowelLength = 9.9
	if q.AccentPhrases[0].Moras[0].VowelLength != 0.1 {
		t.Fatalf("no-op copy shares storage with input")
	}
}

func TestApplyOverrides_BothDimensions(t *testing.T) {
	q := testQuery()

	out, err := ApplyOverrides(q, Overrides{
		PitchValues:  []float64{6.0, 6.1, 6.2, 6.3, 6.4},
		LengthValues: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
	}, 0)
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if out.AccentPhrases[1].Moras[2].Pitch != 6.4 || out.AccentPhrases[1].Moras[2].VowelLength != 0.2 {
		t.Fatalf("overrides not applied across both dimensions")
	}
}

func TestTotalMoraCount(t *testing.T) {
	if got := testQuery().TotalMoraCount(); got != 5 {
		t.Fatalf("TotalMoraCount = %d, want 5", got)
	}
}
