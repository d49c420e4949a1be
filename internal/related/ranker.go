// Package related ranks photos from a pool by how closely they relate to a
// focal photo.
package related

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/gitkarasune/pix/internal/photo"
)

// DefaultLimit is the number of related photos returned when no limit is given.
const DefaultLimit = 6

const (
	authorScore   = 3
	tagScore      = 2
	likesPerPoint = 100
	maxLikesScore = 2
)

// Source picks backfill positions. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Ranker scores a pool against a focal photo.
type Ranker struct {
	src    Source
	logger hclog.Logger
}

// NewRanker creates a Ranker that backfills with src. A nil src uses the
// global math/rand/v2 generator.
func NewRanker(src Source) *Ranker {
	return &Ranker{src: src, logger: hclog.NewNullLogger()}
}

// WithLogger sets the ranker logger.
func (r *Ranker) WithLogger(l hclog.Logger) *Ranker {
	r.logger = l
	return r
}

type scored struct {
	photo photo.Photo
	score int
}

// Rank returns up to limit photos from pool, best match first. The focal
// photo is never included and no photo id appears twice. When fewer than
// limit candidates remain after scoring, the rest of the pool is shuffled in
// to fill the gap. A limit below one selects DefaultLimit.
func (r *Ranker) Rank(pool []photo.Photo, focal *photo.Photo, limit int) []photo.Photo {
	if focal == nil || len(pool) == 0 {
		return []photo.Photo{}
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	tags := make(map[string]struct{}, len(focal.Tags))
	for _, label := range focal.Labels() {
		tags[label] = struct{}{}
	}
	author := focal.Username()

	unique := dedupe(pool)
	candidates := make([]scored, 0, len(unique))
	for _, p := range unique {
		if p.ID == focal.ID {
			continue
		}
		candidates = append(candidates, scored{photo: p, score: Score(p, author, tags)})
	}

	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	top := make([]photo.Photo, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		top = append(top, c.photo)
	}
	if len(top) >= limit {
		return top
	}
	// The pool is deduped, so a short top already holds every candidate and
	// the backfill below finds nothing left to shuffle.

	used := make(map[string]struct{}, len(top)+1)
	used[focal.ID] = struct{}{}
	for _, p := range top {
		used[p.ID] = struct{}{}
	}
	var remaining []photo.Photo
	for _, p := range unique {
		if _, ok := used[p.ID]; !ok {
			remaining = append(remaining, p)
		}
	}
	r.shuffle(remaining)

	r.logger.Debug("backfilling related photos", "ranked", len(top), "remaining", len(remaining), "limit", limit)
	fill := min(limit-len(top), len(remaining))
	return append(top, remaining[:fill]...)
}

// Score is the relatedness score of candidate against a focal author and tag
// set. Repeated labels on the candidate each count.
func Score(candidate photo.Photo, author string, tags map[string]struct{}) int {
	score := 0
	if author != "" && candidate.Username() == author {
		score += authorScore
	}
	for _, label := range candidate.Labels() {
		if _, ok := tags[label]; ok {
			score += tagScore
		}
	}
	score += min(maxLikesScore, int(math.Round(float64(candidate.Likes)/likesPerPoint)))
	return score
}

// shuffle is an in-place Fisher-Yates shuffle walking down from the end.
func (r *Ranker) shuffle(ps []photo.Photo) {
	for i := len(ps) - 1; i > 0; i-- {
		j := r.intN(i + 1)
		ps[i], ps[j] = ps[j], ps[i]
	}
}

func (r *Ranker) intN(n int) int {
	if r.src == nil {
		return rand.IntN(n)
	}
	return r.src.IntN(n)
}

// dedupe drops later photos that repeat an earlier id.
func dedupe(pool []photo.Photo) []photo.Photo {
	seen := make(map[string]struct{}, len(pool))
	out := make([]photo.Photo, 0, len(pool))
	for _, p := range pool {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
