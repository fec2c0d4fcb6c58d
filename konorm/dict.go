package konorm

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/Alfex4936/konorm/internal/model"
)

// Dict is a user dictionary layered over the base Dictionary.
// Nouns count as recognized nouns for every guard; Typos are merged into the
// typo groups and win over base entries with the same key.
type Dict struct {
	Nouns []string          `json:"nouns"`
	Typos map[string]string `json:"typos,omitempty"`
}

// NewDict creates a Dict from the given nouns.
func NewDict(nouns ...string) *Dict {
	return &Dict{Nouns: nouns}
}

// LoadDict reads a JSON file of the form
// {"nouns": ["버스", ...], "typos": {"하겟다": "하겠다"}}.
func LoadDict(path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &d, nil
}

// Merge returns a new Dict holding the entries of d and other.
// other's typos win on conflicting keys.
func (d *Dict) Merge(other *Dict) *Dict {
	out := &Dict{}
	for _, src := range []*Dict{d, other} {
		if src == nil {
			continue
		}
		out.Nouns = append(out.Nouns, src.Nouns...)
		for k, v := range src.Typos {
			if out.Typos == nil {
				out.Typos = make(map[string]string)
			}
			out.Typos[k] = v
		}
	}
	return out
}

func (d *Dict) empty() bool {
	return len(d.Nouns) == 0 && len(d.Typos) == 0
}

func (d *Dict) overlay(base Dictionary) Dictionary {
	nouns := make(map[string]struct{}, len(d.Nouns))
	for _, w := range d.Nouns {
		if w = strings.TrimSpace(w); w != "" {
			nouns[w] = struct{}{}
		}
	}
	return &userDictionary{
		base:  base,
		nouns: nouns,
		typos: mergeTypos(base.TyposByLength(), d.Typos),
	}
}

// mergeTypos folds user entries into copies of the base groups.
func mergeTypos(base []TypoGroup, user map[string]string) []TypoGroup {
	if len(user) == 0 {
		return base
	}
	byLen := make(map[int]map[string]string, len(base))
	for _, g := range base {
		byLen[g.Length] = lo.Assign(g.Entries)
	}
	for k, v := range user {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		l := utf8.RuneCountInString(k)
		if byLen[l] == nil {
			byLen[l] = make(map[string]string)
		}
		byLen[l][k] = v
	}

	lengths := lo.Keys(byLen)
	sort.Ints(lengths)
	return lo.Map(lengths, func(l int, _ int) TypoGroup {
		return TypoGroup{Length: l, Entries: byLen[l]}
	})
}

type userDictionary struct {
	base  Dictionary
	nouns map[string]struct{}
	typos []TypoGroup
}

func (u *userDictionary) Contains(pos POS, text string) bool {
	if pos == model.Noun {
		if _, ok := u.nouns[text]; ok {
			return true
		}
	}
	return u.base.Contains(pos, text)
}

func (u *userDictionary) TyposByLength() []TypoGroup { return u.typos }
