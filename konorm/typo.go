package konorm

import (
	"regexp"
	"strings"
)

// CorrectTypo applies the typo dictionary to chunk, one key length at a
// time in ascending order. Every window of the text as it stood at the start
// of a pass is looked up lower-cased; a hit replaces all case-insensitive
// occurrences of that window. Later passes see earlier substitutions.
func (n *Normalizer) CorrectTypo(chunk string) string {
	out := chunk
	for _, g := range n.dict.TyposByLength() {
		if g.Length <= 0 || len(g.Entries) == 0 {
			continue
		}
		rs := []rune(out)
		for i := 0; i+g.Length <= len(rs); i++ {
			slice := string(rs[i : i+g.Length])
			fixed, ok := g.Entries[strings.ToLower(slice)]
			if !ok {
				continue
			}
			n.log.Debug("typo check", "from", slice, "to", fixed)
			out = replaceFold(out, slice, fixed)
		}
	}
	return out
}

func replaceFold(s, old, repl string) string {
	if !strings.Contains(strings.ToLower(s), strings.ToLower(old)) {
		return s
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(old))
	return re.ReplaceAllLiteralString(s, repl)
}
