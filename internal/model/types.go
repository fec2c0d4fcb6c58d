package model

import "fmt"

// POS is a part-of-speech tag used by the dictionaries and the tokenizer.
type POS int

const (
	Unknown POS = iota
	Noun
	Verb
	Adjective
	Adverb
	Determiner
	Exclamation
	Josa
	Eomi
	PreEomi
	Conjunction
	Modifier
	VerbPrefix
	Suffix
)

var posNames = [...]string{
	Unknown:     "Unknown",
	Noun:        "Noun",
	Verb:        "Verb",
	Adjective:   "Adjective",
	Adverb:      "Adverb",
	Determiner:  "Determiner",
	Exclamation: "Exclamation",
	Josa:        "Josa",
	Eomi:        "Eomi",
	PreEomi:     "PreEomi",
	Conjunction: "Conjunction",
	Modifier:    "Modifier",
	VerbPrefix:  "VerbPrefix",
	Suffix:      "Suffix",
}

func (p POS) String() string {
	if p < 0 || int(p) >= len(posNames) {
		return fmt.Sprintf("POS(%d)", int(p))
	}
	return posNames[p]
}

// IsPredicate reports whether p is a verb or adjective (용언).
func (p POS) IsPredicate() bool { return p == Verb || p == Adjective }

// ParsePOS maps a tag name (case-sensitive, as printed by String) to a POS.
func ParsePOS(s string) (POS, bool) {
	for i, name := range posNames {
		if name == s {
			return POS(i), true
		}
	}
	return Unknown, false
}

// Token is one tokenizer output unit.
type Token struct {
	Text   string `json:"text"`
	POS    POS    `json:"pos"`
	Offset int    `json:"offset"` // rune offset
	Length int    `json:"length"` // rune length
}

// TypoGroup holds misspelling → canonical pairs whose keys share a rune length.
// Keys are lower-cased.
type TypoGroup struct {
	Length  int
	Entries map[string]string
}

// Result is JSON-serialisable as-is.
type Result struct {
	Original     string    `json:"original"`     // 원본 텍스트
	Normalized   string    `json:"normalized"`   // 정규화 결과 텍스트
	EditDistance int       `json:"editDistance"` // Levenshtein(original, normalized)
	CharCount    int       `json:"charCount"`    // UTF-8 rune length
	ChunkCount   int       `json:"chunkCount"`   // Korean runs found
	Rewrites     []Rewrite `json:"rewrites"`     // nil if nothing changed
	RewriteCount int       `json:"rewriteCount"`
}

// Rewrite describes one Korean run that the pipeline changed.
type Rewrite struct {
	Idx        int      `json:"idx"`        // chunk index
	Start      int      `json:"start"`      // rune offsets into Original
	End        int      `json:"end"`        // exclusive
	Origin     string   `json:"origin"`     // run as found
	Normalized string   `json:"normalized"` // run after the pipeline
	Distance   int      `json:"distance"`   // Levenshtein(origin, normalized)
	Rules      []string `json:"rules"`      // rules that changed the run, in pipeline order
}
