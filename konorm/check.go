package konorm

import (
	"context"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Alfex4936/konorm/internal/chunk"
	"github.com/Alfex4936/konorm/internal/util"
)

// partWords is how many 어절 NormalizeParallel puts into one part.
const partWords = 300

// Explain normalizes input and reports every Korean run that changed,
// with the rules that changed it.
//
// Result.Original is the text the pipeline actually scanned, i.e. after NFC
// composition when WithNFC is set. Rewrite offsets are rune offsets into it.
func (n *Normalizer) Explain(input string) *Result {
	if n.nfc {
		input = composeNFC(input)
	}
	res := &Result{
		Original:   input,
		Normalized: input,
		CharCount:  utf8.RuneCountInString(input),
	}
	if strings.TrimSpace(input) == "" {
		return res
	}

	spans := chunk.Korean(input)
	res.ChunkCount = len(spans)

	var b strings.Builder
	b.Grow(len(input))
	last, runeOff := 0, 0
	for i, sp := range spans {
		gap := input[last:sp.Start]
		b.WriteString(gap)
		runeOff += utf8.RuneCountInString(gap)

		out, rules := n.normalizeChunk(sp.Text)
		b.WriteString(out)

		width := utf8.RuneCountInString(sp.Text)
		if out != sp.Text {
			res.Rewrites = append(res.Rewrites, Rewrite{
				Idx:        i,
				Start:      runeOff,
				End:        runeOff + width,
				Origin:     sp.Text,
				Normalized: out,
				Distance:   util.EditDistance(sp.Text, out),
				Rules:      ruleNames(rules),
			})
		}
		runeOff += width
		last = sp.End
	}
	b.WriteString(input[last:])

	res.Normalized = b.String()
	res.RewriteCount = len(res.Rewrites)
	res.EditDistance = util.EditDistance(res.Original, res.Normalized)
	return res
}

func ruleNames(rules []Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = string(r)
	}
	return names
}

// NormalizeAll normalizes every text concurrently, bounded by GOMAXPROCS.
// out[i] always corresponds to texts[i]. It stops early when ctx is done.
func (n *Normalizer) NormalizeAll(ctx context.Context, texts []string) ([]string, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	out := make([]string, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = n.Normalize(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeParallel splits text into ≤300-어절 parts, normalizes them in
// parallel and joins the outcome. Parts are cut after a space or newline,
// so no Korean run is ever split and the result equals Normalize(text).
func (n *Normalizer) NormalizeParallel(ctx context.Context, text string) (string, error) {
	if ctx == nil {
		return "", ErrNilContext
	}
	if n.nfc {
		text = composeNFC(text)
	}
	parts := chunk.SplitWords(text, partWords)
	if len(parts) == 1 {
		return n.Normalize(text), nil
	}
	out, err := n.NormalizeAll(ctx, parts)
	if err != nil {
		return "", err
	}
	return strings.Join(out, ""), nil
}
