// Package kana canonicalizes pronunciation strings before matching
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization (folds halfwidth katakana to fullwidth)
// 3 Hiragana to katakana mapping
// 4 Trim surrounding whitespace
package kana

import (
	"strings"
	"sync"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// hiragana ぁ..ゖ and katakana ァ..ヶ are parallel blocks 0x60 apart
const (
	hiraganaLo = 0x3041
	hiraganaHi = 0x3096
	kataShift  = 0x60
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			runes.Map(func(r rune) rune {
				if r >= hiraganaLo && r <= hiraganaHi {
					return r + kataShift
				}
				return r
			}),
		)
	},
}

// Canonical returns the canonical fullwidth-katakana form of s
// Engine moras are already in this form; canonicalizing registered
// pronunciations keeps hand-edited dictionary files matchable
func Canonical(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return strings.TrimSpace(ns)
}
