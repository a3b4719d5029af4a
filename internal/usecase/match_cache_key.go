package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"gigmatch/internal/domain/matching"

	"github.com/google/uuid"
)

const matchCachePrefix = "match:"

type matchCacheKeyInput struct {
	Candidate matching.Candidate `json:"candidate"`
	Job       matching.Job       `json:"job"`
	Policy    matching.Policy    `json:"policy"`
}

// MatchCacheKey addresses one scored pair. The hash covers every input the
// engine reads, so any profile, job or policy change misses the cache.
func MatchCacheKey(c matching.Candidate, j matching.Job, p matching.Policy) string {
	b, _ := json.Marshal(matchCacheKeyInput{Candidate: c, Job: j, Policy: p})
	sum := sha256.Sum256(b)
	return matchCachePrefix + c.ID.String() + ":" + j.ID.String() + ":" + hex.EncodeToString(sum[:])
}

func MatchCachePattern(candidateID uuid.UUID) string {
	return matchCachePrefix + candidateID.String() + ":*"
}
