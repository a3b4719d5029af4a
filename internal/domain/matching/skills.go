package matching

import (
	"strings"

	"github.com/google/uuid"
)

const maxListedSkills = 3

type skillIndex struct {
	ids   map[uuid.UUID]struct{}
	names map[string]struct{}
}

func newSkillIndex(skills []Skill) skillIndex {
	idx := skillIndex{
		ids:   make(map[uuid.UUID]struct{}, len(skills)),
		names: make(map[string]struct{}, len(skills)),
	}
	for _, s := range skills {
		if s.ID != uuid.Nil {
			idx.ids[s.ID] = struct{}{}
		}
		if n := canonicalSkillName(s.Name); n != "" {
			idx.names[n] = struct{}{}
		}
	}
	return idx
}

func (idx skillIndex) has(s Skill) bool {
	if s.ID != uuid.Nil {
		if _, ok := idx.ids[s.ID]; ok {
			return true
		}
	}
	n := canonicalSkillName(s.Name)
	if n == "" {
		return false
	}
	_, ok := idx.names[n]
	return ok
}

// partition splits reqs into the skills the candidate has and the ones they
// lack. Duplicate job skills are counted once.
func (idx skillIndex) partition(reqs []Skill) (have, missing []Skill) {
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		key := skillKey(r)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if idx.has(r) {
			have = append(have, r)
		} else {
			missing = append(missing, r)
		}
	}
	return have, missing
}

func skillKey(s Skill) string {
	if s.ID != uuid.Nil {
		return s.ID.String()
	}
	return canonicalSkillName(s.Name)
}

// SkillsScore weights required skills at 70% and preferred skills at 30%.
// When the job lists only one kind, that kind carries the full weight.
func SkillsScore(c Candidate, j Job) Feature {
	idx := newSkillIndex(c.Skills)
	reqHave, reqMissing := idx.partition(j.RequiredSkills)
	prefHave, prefMissing := idx.partition(j.PreferredSkills)

	reqTotal := len(reqHave) + len(reqMissing)
	prefTotal := len(prefHave) + len(prefMissing)

	f := Feature{Dimension: DimensionSkills}
	if reqTotal == 0 && prefTotal == 0 {
		f.Score = 50
		f.Reason = Reason{Key: ReasonSkillsUnspecified}
		return f
	}

	matchedRequired := float64(len(reqHave)) / float64(maxInt(reqTotal, 1))
	matchedPreferred := float64(len(prefHave)) / float64(maxInt(prefTotal, 1))

	var raw float64
	switch {
	case reqTotal == 0:
		raw = matchedPreferred
	case prefTotal == 0:
		raw = matchedRequired
	default:
		raw = 0.7*matchedRequired + 0.3*matchedPreferred
	}

	f.Score = roundScore(100 * raw)
	if reqTotal == 0 {
		// Only preferred skills listed: they stand in for the required set.
		f.Matched = matchedPreferred >= 0.5
		if !f.Matched {
			f.Reason = Reason{Key: ReasonSkillsPreferredMissing, Params: map[string]string{"skills": joinSkillNames(prefMissing)}}
			return f
		}
	} else {
		f.Matched = matchedRequired >= 0.5
	}

	if f.Matched {
		overlap := append(append([]Skill{}, reqHave...), prefHave...)
		f.Reason = Reason{Key: ReasonSkillsMatched, Params: map[string]string{"skills": joinSkillNames(overlap)}}
		return f
	}
	f.Reason = Reason{Key: ReasonSkillsMissing, Params: map[string]string{"skills": joinSkillNames(reqMissing)}}
	return f
}

func joinSkillNames(skills []Skill) string {
	names := make([]string, 0, maxListedSkills)
	for _, s := range skills {
		if len(names) == maxListedSkills {
			break
		}
		n := strings.TrimSpace(s.Name)
		if n == "" {
			n = s.ID.String()
		}
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}
