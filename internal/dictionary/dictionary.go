// Package dictionary holds part-of-speech word sets and the typo list the
// normalizer and tokenizer consult.
package dictionary

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/Alfex4936/konorm/internal/model"
)

var (
	// ErrUnknownPOS is returned for a manifest or store entry naming no known POS.
	ErrUnknownPOS = errors.New("dictionary: unknown part of speech")

	// ErrMalformedTypo is returned for a typo line that is not "misspelling canonical".
	ErrMalformedTypo = errors.New("dictionary: malformed typo line")
)

// Dictionary is an in-memory, POS-keyed word store. The zero value is not
// usable; call New. All methods are safe for concurrent use.
type Dictionary struct {
	mu     sync.RWMutex
	words  map[model.POS]map[string]struct{}
	typos  map[string]string
	groups []model.TypoGroup // rebuilt whenever typos change
	maxLen int               // longest word in runes, any POS
}

func New() *Dictionary {
	return &Dictionary{
		words: make(map[model.POS]map[string]struct{}),
		typos: make(map[string]string),
	}
}

// Add inserts words under pos. Blank entries are ignored.
func (d *Dictionary) Add(pos model.POS, words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	set := d.words[pos]
	if set == nil {
		set = make(map[string]struct{}, len(words))
		d.words[pos] = set
	}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		set[w] = struct{}{}
		if l := utf8.RuneCountInString(w); l > d.maxLen {
			d.maxLen = l
		}
	}
}

// AddTypos inserts misspelling → canonical pairs. Keys are lower-cased.
func (d *Dictionary) AddTypos(typos map[string]string) {
	if len(typos) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, v := range typos {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		d.typos[k] = v
	}
	d.groups = groupTypos(d.typos)
}

func (d *Dictionary) Contains(pos model.POS, text string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.words[pos][text]
	return ok
}

// TyposByLength returns the typo list grouped by key rune length, shortest first.
// The returned groups must not be modified.
func (d *Dictionary) TyposByLength() []model.TypoGroup {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.groups
}

// Words returns the words stored under pos, sorted.
func (d *Dictionary) Words(pos model.POS) []string {
	d.mu.RLock()
	words := lo.Keys(d.words[pos])
	d.mu.RUnlock()
	sort.Strings(words)
	return words
}

// Typos returns a copy of the typo list.
func (d *Dictionary) Typos() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.Assign(d.typos)
}

// POS returns every tag with at least one word, in tag order.
func (d *Dictionary) POS() []model.POS {
	d.mu.RLock()
	tags := lo.Filter(lo.Keys(d.words), func(p model.POS, _ int) bool { return len(d.words[p]) > 0 })
	d.mu.RUnlock()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func (d *Dictionary) Len(pos model.POS) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words[pos])
}

// MaxWordLen is the rune length of the longest stored word.
func (d *Dictionary) MaxWordLen() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.maxLen
}

// Merge copies every word and typo of other into d.
func (d *Dictionary) Merge(other *Dictionary) {
	for _, pos := range other.POS() {
		d.Add(pos, other.Words(pos)...)
	}
	d.AddTypos(other.Typos())
}

func groupTypos(typos map[string]string) []model.TypoGroup {
	byLen := lo.GroupBy(lo.Keys(typos), func(k string) int { return utf8.RuneCountInString(k) })
	lengths := lo.Keys(byLen)
	sort.Ints(lengths)

	groups := make([]model.TypoGroup, 0, len(lengths))
	for _, l := range lengths {
		groups = append(groups, model.TypoGroup{
			Length:  l,
			Entries: lo.SliceToMap(byLen[l], func(k string) (string, string) { return k, typos[k] }),
		})
	}
	return groups
}
