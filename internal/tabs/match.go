package tabs

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxMatchDistance caps how far a typo may stray from a label prefix.
const maxMatchDistance = 2

// Match ranks candidates against a typed query. Prefix hits come first,
// then labels within a small edit distance of the query; the rest are
// dropped. An empty query returns candidates unchanged.
func Match(query string, candidates []Kind) []Kind {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Kind, len(candidates))
		copy(out, candidates)
		return out
	}

	allowed := min(len(q)/2, maxMatchDistance)

	type scored struct {
		kind  Kind
		score int
		order int
	}
	var hits []scored
	for i, k := range candidates {
		label := strings.ToLower(k.Label())
		if strings.HasPrefix(label, q) {
			hits = append(hits, scored{kind: k, score: 0, order: i})
			continue
		}
		// compare against the label cut to the query length so partial
		// input with a typo still lands
		cut := label
		if len(cut) > len(q) {
			cut = cut[:len(q)]
		}
		if d := levenshtein.ComputeDistance(q, cut); d <= allowed {
			hits = append(hits, scored{kind: k, score: d, order: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].order < hits[j].order
	})
	out := make([]Kind, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.kind)
	}
	return out
}
