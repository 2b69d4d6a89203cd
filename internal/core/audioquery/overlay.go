package audioquery

import (
	perr "pitchfork/internal/platform/errors"
)

// Overrides carries the per-mora values an entry wants written into a query
// A nil or empty list means "leave that dimension untouched", never "zero out"
type Overrides struct {
	// PitchValues go to Mora.Pitch, one per target mora in order
	PitchValues []float64
	// LengthValues go to Mora.VowelLength, one per target mora in order
	// Consonant length is never written by this path
	LengthValues []float64
}

// ApplyPartialMatch returns a copy of q with ov written into the mora range
// [moraStart, moraEnd) of the accent phrase at phraseIdx
//
// Fails with a Range error when phraseIdx or the mora range falls outside
// the query's shape, and with a CountMismatch error when a non-empty
// override list's length differs from the target mora count. The input is
// never mutated on any path
func ApplyPartialMatch(q *AudioQuery, ov Overrides, phraseIdx, moraStart, moraEnd int) (*AudioQuery, error) {
	out := q.Clone()

	if phraseIdx < 0 || phraseIdx >= len(out.AccentPhrases) {
		return nil, perr.Rangef("accent phrase index %d out of range (phrases=%d)", phraseIdx, len(out.AccentPhrases))
	}

	moras := out.AccentPhrases[phraseIdx].Moras
	if moraStart < 0 || moraEnd > len(moras) {
		return nil, perr.Rangef("mora range [%d,%d) out of range (moras=%d)", moraStart, moraEnd, len(moras))
	}

	targetCount := moraEnd - moraStart

	if len(ov.PitchValues) > 0 {
		if len(ov.PitchValues) != targetCount {
			return nil, perr.CountMismatchf("pitch values %d do not match target moras %d", len(ov.PitchValues), targetCount)
		}
		for i, pitch := range ov.PitchValues {
			moras[moraStart+i].Pitch = pitch
		}
	}

	if len(ov.LengthValues) > 0 {
		if len(ov.LengthValues) != targetCount {
			return nil, perr.CountMismatchf("length values %d do not match target moras %d", len(ov.LengthValues), targetCount)
		}
		for i, length := range ov.LengthValues {
			moras[moraStart+i].VowelLength = length
		}
	}

	return out, nil
}

// ApplyPitchValues returns a copy of q with values written positionally
// into Mora.Pitch, walking phrases and moras in document order starting at
// the global mora index startMora
//
// An empty list is a no-op copy. Otherwise the list length must equal the
// mora count from startMora to the end of the query
func ApplyPitchValues(q *AudioQuery, values []float64, startMora int) (*AudioQuery, error) {
	return applyGlobal(q, values, startMora, "pitch", func(m *Mora, v float64) { m.Pitch = v })
}

// ApplyLengthValues returns a copy of q with values written positionally
// into Mora.VowelLength, same walk and length rule as ApplyPitchValues
func ApplyLengthValues(q *AudioQuery, values []float64, startMora int) (*AudioQuery, error) {
	return applyGlobal(q, values, startMora, "length", func(m *Mora, v float64) { m.VowelLength = v })
}

func applyGlobal(q *AudioQuery, values []float64, startMora int, kind string, set func(*Mora, float64)) (*AudioQuery, error) {
	out := q.Clone()
	if len(values) == 0 {
		return out, nil
	}

	available := out.TotalMoraCount() - startMora
	if len(values) != available {
		return nil, perr.CountMismatchf("%s values %d do not match available moras %d", kind, len(values), available)
	}

	moraIdx := 0
	valueIdx := 0
	for pi := range out.AccentPhrases {
		moras := out.AccentPhrases[pi].Moras
		for mi := range moras {
			if moraIdx >= startMora && valueIdx < len(values) {
				set(&moras[mi], values[valueIdx])
				valueIdx++
			}
			moraIdx++
		}
	}

	return out, nil
}

// ApplyOverrides applies both override lists via the whole-query walk
// starting at startMora; the integration path for whole-phrase matches
func ApplyOverrides(q *AudioQuery, ov Overrides, startMora int) (*AudioQuery, error) {
	out := q.Clone()
	var err error
	if len(ov.PitchValues) > 0 {
		out, err = ApplyPitchValues(out, ov.PitchValues, startMora)
		if err != nil {
			return nil, err
		}
	}
	if len(ov.LengthValues) > 0 {
		out, err = ApplyLengthValues(out, ov.LengthValues, startMora)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
