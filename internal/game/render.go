package game

import "github.com/robalobadob/wikiguess/internal/words"

// Project turns segments into render units against the current reveal state.
// It never mutates its inputs and gives the same output for the same inputs.
func Project(segs []words.Segment, ix *Index, rs *RevealState, titleWords []string) []RenderUnit {
	keys := make([]string, len(segs))
	for i, s := range segs {
		if s.Kind == words.Word {
			keys[i] = words.Key(s.Text)
		}
	}
	return project(segs, keys, ix, rs, titleSet(titleWords))
}

// project is Project with segment keys already computed; keys[i] is empty
// for every segment that is not a guessable word.
func project(segs []words.Segment, keys []string, ix *Index, rs *RevealState, inTitle map[string]struct{}) []RenderUnit {
	out := make([]RenderUnit, 0, len(segs))
	for i, s := range segs {
		key := keys[i]
		if s.Kind != words.Word || key == "" || !ix.Has(key) {
			out = append(out, RenderUnit{Kind: UnitLiteral, Text: s.Text})
			continue
		}
		_, title := inTitle[key]
		out = append(out, RenderUnit{
			Kind:     UnitToken,
			Text:     s.Text,
			Key:      key,
			ID:       s.Ordinal,
			Revealed: rs.Revealed(key),
			InTitle:  title,
		})
	}
	return out
}

func titleSet(keys []string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}
