// Package ranker implements exhaustive cosine-similarity ranking over the
// item vector corpus. The scan is O(N·D) per query by design: the corpus is
// small enough that no index is maintained, and callers hydrate item payloads
// separately in the order returned here.
package ranker

import (
	"math"
	"sort"
	"time"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/metrics"
)

type scored struct {
	itemID string
	score  float64
}

// Rank returns the ids of the min(topK, |corpus|) records most similar to the
// query vector, scores descending. Ties keep corpus iteration order (stable
// sort) — an explicit policy, not an accident. A degenerate vector on either
// side scores 0. Duplicate corpus ids keep their first occurrence. An empty
// corpus or topK <= 0 yields an empty result.
func Rank(query []float32, corpus []domain.ItemVectorRecord, topK int) []string {
	if len(corpus) == 0 || topK <= 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.RankDuration.WithLabelValues("rank").Observe(time.Since(start).Seconds())
		metrics.RankCorpusSize.Observe(float64(len(corpus)))
	}()

	queryNorm := norm(query)

	scores := make([]scored, 0, len(corpus))
	seen := make(map[string]struct{}, len(corpus))
	for _, rec := range corpus {
		if _, dup := seen[rec.ItemID]; dup {
			continue
		}
		seen[rec.ItemID] = struct{}{}
		scores = append(scores, scored{
			itemID: rec.ItemID,
			score:  cosine(query, queryNorm, rec.Embedding),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if topK > len(scores) {
		topK = len(scores)
	}
	ids := make([]string, topK)
	for i := range ids {
		ids[i] = scores[i].itemID
	}
	return ids
}

// cosine computes (query · v) / (‖query‖·‖v‖), with 0 for zero norms so
// degenerate vectors rank as maximally dissimilar instead of dividing by zero.
func cosine(query []float32, queryNorm float64, v []float32) float64 {
	if queryNorm == 0 || len(query) != len(v) {
		return 0
	}
	vNorm := norm(v)
	if vNorm == 0 {
		return 0
	}

	var dot float64
	for i, q := range query {
		dot += float64(q) * float64(v[i])
	}
	return dot / (queryNorm * vNorm)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
