package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSkillsScore(t *testing.T) {
	goID := uuid.New()

	cases := []struct {
		name      string
		candidate []Skill
		required  []Skill
		preferred []Skill
		want      int
		matched   bool
		reason    string
	}{
		{
			name:      "all required and preferred",
			candidate: []Skill{{Name: "Go"}, {Name: "SQL"}},
			required:  []Skill{{Name: "go"}},
			preferred: []Skill{{Name: "sql"}},
			want:      100,
			matched:   true,
			reason:    ReasonSkillsMatched,
		},
		{
			name:      "half required no preferred overlap",
			candidate: []Skill{{Name: "Go"}},
			required:  []Skill{{Name: "Go"}, {Name: "Rust"}},
			preferred: []Skill{{Name: "Kafka"}},
			want:      35,
			matched:   true,
			reason:    ReasonSkillsMatched,
		},
		{
			name:      "below half required",
			candidate: []Skill{{Name: "Go"}},
			required:  []Skill{{Name: "Go"}, {Name: "Rust"}, {Name: "C"}},
			preferred: []Skill{{Name: "Zig"}},
			want:      23,
			matched:   false,
			reason:    ReasonSkillsMissing,
		},
		{
			name:      "matches by id when names differ",
			candidate: []Skill{{ID: goID, Name: "Golang"}},
			required:  []Skill{{ID: goID, Name: "Go"}},
			want:      100,
			matched:   true,
			reason:    ReasonSkillsMatched,
		},
		{
			name:      "only preferred skills listed",
			candidate: []Skill{{Name: "Docker"}},
			preferred: []Skill{{Name: "Docker"}, {Name: "Helm"}},
			want:      50,
			matched:   true,
			reason:    ReasonSkillsMatched,
		},
		{
			name:      "only preferred skills, none held",
			candidate: []Skill{{Name: "React"}},
			preferred: []Skill{{Name: "Rust"}, {Name: "Go"}},
			want:      0,
			matched:   false,
			reason:    ReasonSkillsPreferredMissing,
		},
		{
			name:      "job lists no skills",
			candidate: []Skill{{Name: "Docker"}},
			want:      50,
			matched:   false,
			reason:    ReasonSkillsUnspecified,
		},
		{
			name:      "duplicate required skills counted once",
			candidate: []Skill{{Name: "Go"}},
			required:  []Skill{{Name: "Go"}, {Name: " GO "}, {Name: "Rust"}},
			want:      50,
			matched:   true,
			reason:    ReasonSkillsMatched,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := SkillsScore(Candidate{Skills: tc.candidate}, Job{RequiredSkills: tc.required, PreferredSkills: tc.preferred})
			if f.Score != tc.want {
				t.Fatalf("score = %d, want %d", f.Score, tc.want)
			}
			if f.Matched != tc.matched {
				t.Fatalf("matched = %v, want %v", f.Matched, tc.matched)
			}
			if f.Reason.Key != tc.reason {
				t.Fatalf("reason = %q, want %q", f.Reason.Key, tc.reason)
			}
		})
	}
}

func TestSkillsScore_ReasonCapsListedSkills(t *testing.T) {
	f := SkillsScore(Candidate{}, Job{RequiredSkills: []Skill{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}})
	if got := f.Reason.Params["skills"]; got != "A, B, C" {
		t.Fatalf("skills param = %q", got)
	}
}

func TestRateScore(t *testing.T) {
	cases := []struct {
		name    string
		cand    RateRange
		job     RateRange
		want    int
		matched bool
		reason  string
	}{
		{"job covers candidate", RateRange{Min: 80, Max: 120}, RateRange{Min: 70, Max: 150}, 100, true, ReasonRateMatched},
		{"partial overlap", RateRange{Min: 80, Max: 120}, RateRange{Min: 90, Max: 130}, 75, true, ReasonRateMatched},
		{"small overlap", RateRange{Min: 80, Max: 120}, RateRange{Min: 110, Max: 160}, 25, false, ReasonRatePartial},
		{"point ranges equal", RateRange{Min: 100, Max: 100}, RateRange{Min: 100, Max: 100}, 100, true, ReasonRateMatched},
		{"job below candidate", RateRange{Min: 80, Max: 120}, RateRange{Min: 40, Max: 60}, 80, true, ReasonRateNearBelow},
		{"job just above candidate", RateRange{Min: 40, Max: 60}, RateRange{Min: 65, Max: 80}, 90, true, ReasonRateNearAbove},
		{"job far below", RateRange{Min: 80, Max: 120}, RateRange{Min: 10, Max: 20}, 40, false, ReasonRateBelow},
		{"job above candidate", RateRange{Min: 40, Max: 60}, RateRange{Min: 100, Max: 150}, 20, false, ReasonRateAbove},
		{"gap floors at zero", RateRange{Min: 10, Max: 20}, RateRange{Min: 200, Max: 300}, 0, false, ReasonRateAbove},
		{"candidate unset", RateRange{}, RateRange{Min: 10, Max: 20}, 50, false, ReasonRateUnspecified},
		{"job unset", RateRange{Min: 10, Max: 20}, RateRange{}, 50, false, ReasonRateUnspecified},
		{"currency mismatch", RateRange{Min: 80, Max: 120, Currency: "usd"}, RateRange{Min: 80, Max: 120, Currency: "EUR"}, 0, false, ReasonRateCurrencyMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := RateScore(Candidate{Rate: tc.cand}, Job{Rate: tc.job}, DefaultRateGapSlope)
			if f.Score != tc.want {
				t.Fatalf("score = %d, want %d", f.Score, tc.want)
			}
			if f.Matched != tc.matched {
				t.Fatalf("matched = %v, want %v", f.Matched, tc.matched)
			}
			if f.Reason.Key != tc.reason {
				t.Fatalf("reason = %q, want %q", f.Reason.Key, tc.reason)
			}
		})
	}
}

func TestRateScore_DisjointRangeNeverFits(t *testing.T) {
	c := Candidate{Rate: RateRange{Min: 80, Max: 120}}
	j := Job{Rate: RateRange{Min: 40, Max: 60}}

	f := RateScore(c, j, DefaultRateGapSlope)
	if !f.Matched {
		t.Fatalf("expected a gap of 20 to stay within tolerance, score %d", f.Score)
	}
	got := DefaultCatalog().Render(f.Reason)
	if want := "Rate 40-60 is 20 below your range 80-120, within tolerance"; got != want {
		t.Fatalf("reason = %q, want %q", got, want)
	}
}

func TestRateScore_SlopeSteepensDecay(t *testing.T) {
	c := Candidate{Rate: RateRange{Min: 80, Max: 120}}
	j := Job{Rate: RateRange{Min: 40, Max: 60}}
	if got := RateScore(c, j, 5).Score; got != 0 {
		t.Fatalf("score with slope 5 = %d, want 0", got)
	}
}

func TestLocationScore(t *testing.T) {
	cases := []struct {
		name    string
		cand    Candidate
		job     Job
		want    int
		matched bool
	}{
		{"remote job", Candidate{Location: "Berlin"}, Job{Remote: true, Location: "Paris"}, 100, true},
		{"remote only vs onsite", Candidate{RemoteOnly: true, Location: "Berlin"}, Job{Location: "Berlin"}, 0, false},
		{"same city case insensitive", Candidate{Location: "austin, tx"}, Job{Location: "Austin, TX"}, 100, true},
		{"same region", Candidate{Location: "Dallas, TX"}, Job{Location: "Austin, TX"}, 40, true},
		{"different region", Candidate{Location: "Dallas, TX"}, Job{Location: "Berlin, Germany"}, 0, false},
		{"no region part", Candidate{Location: "Lisbon"}, Job{Location: "Porto"}, 0, false},
		{"empty job location", Candidate{Location: "Lisbon"}, Job{}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := LocationScore(tc.cand, tc.job)
			if f.Score != tc.want || f.Matched != tc.matched {
				t.Fatalf("got (%d, %v), want (%d, %v)", f.Score, f.Matched, tc.want, tc.matched)
			}
		})
	}
}

func TestPreferenceScore(t *testing.T) {
	cases := []struct {
		name    string
		cand    Candidate
		job     Job
		want    int
		matched bool
	}{
		{
			name:    "no preferences",
			cand:    Candidate{},
			job:     Job{Type: JobTypeFullTime, Duration: DurationOverTwelve},
			want:    100,
			matched: true,
		},
		{
			name:    "exact match",
			cand:    Candidate{JobTypes: []JobType{JobTypeContract}, ContractDurations: []DurationBucket{DurationOneToThree}},
			job:     Job{Type: JobTypeContract, Duration: DurationOneToThree},
			want:    100,
			matched: true,
		},
		{
			name:    "adjacent duration",
			cand:    Candidate{JobTypes: []JobType{JobTypeContract}, ContractDurations: []DurationBucket{DurationOneToThree}},
			job:     Job{Type: JobTypeContract, Duration: DurationThreeToSix},
			want:    83,
			matched: true,
		},
		{
			name:    "wrong type",
			cand:    Candidate{JobTypes: []JobType{JobTypeContract}},
			job:     Job{Type: JobTypeFullTime},
			want:    67,
			matched: false,
		},
		{
			name:    "distant duration",
			cand:    Candidate{ContractDurations: []DurationBucket{DurationUnderOneMonth}},
			job:     Job{Duration: DurationOverTwelve},
			want:    67,
			matched: false,
		},
		{
			name:    "remote only onsite job",
			cand:    Candidate{RemoteOnly: true},
			job:     Job{},
			want:    67,
			matched: false,
		},
		{
			name:    "unknown job duration",
			cand:    Candidate{ContractDurations: []DurationBucket{DurationSixToTwelve}},
			job:     Job{Remote: true},
			want:    83,
			matched: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := PreferenceScore(tc.cand, tc.job)
			if f.Score != tc.want || f.Matched != tc.matched {
				t.Fatalf("got (%d, %v), want (%d, %v)", f.Score, f.Matched, tc.want, tc.matched)
			}
		})
	}
}

func TestAvailabilityScore(t *testing.T) {
	cases := []struct {
		state   Availability
		want    int
		matched bool
		reason  string
	}{
		{AvailabilityAvailable, 100, true, ReasonAvailabilityAvailable},
		{AvailabilityBusy, 40, true, ReasonAvailabilityBusy},
		{AvailabilityUnavailable, 0, false, ReasonAvailabilityUnavailable},
		{"", 0, false, ReasonAvailabilityUnavailable},
	}
	for _, tc := range cases {
		f := AvailabilityScore(Candidate{Availability: tc.state}, Job{})
		if f.Score != tc.want || f.Matched != tc.matched || f.Reason.Key != tc.reason {
			t.Errorf("AvailabilityScore(%q) = (%d, %v, %s)", tc.state, f.Score, f.Matched, f.Reason.Key)
		}
	}
}

func TestCompetitionScore(t *testing.T) {
	cases := []struct {
		apps       int
		saturation int
		want       int
		matched    bool
	}{
		{0, 25, 100, true},
		{2, 25, 92, true},
		{12, 25, 52, true},
		{13, 25, 48, false},
		{25, 25, 0, false},
		{80, 25, 0, false},
		{5, 10, 50, true},
		{5, 0, 80, true},
	}
	for _, tc := range cases {
		f := CompetitionScore(Candidate{}, Job{ApplicationsCount: tc.apps}, tc.saturation)
		if f.Score != tc.want || f.Matched != tc.matched {
			t.Errorf("CompetitionScore(apps=%d, K=%d) = (%d, %v), want (%d, %v)", tc.apps, tc.saturation, f.Score, f.Matched, tc.want, tc.matched)
		}
		if f.Reason.Key == "" {
			t.Errorf("CompetitionScore(apps=%d) returned no reason", tc.apps)
		}
	}
}

func TestProfileScore(t *testing.T) {
	full := Candidate{
		Bio:      "Go engineer",
		Rate:     RateRange{Min: 50, Max: 90},
		Skills:   []Skill{{Name: "Go"}, {Name: "SQL"}, {Name: "Docker"}},
		Location: "Lisbon",
	}
	if f := ProfileScore(full, Job{}); f.Score != 100 || !f.Matched || f.Reason.Key != ReasonProfileComplete {
		t.Fatalf("full profile = %+v", f)
	}

	partial := full
	partial.Bio = ""
	partial.Location = " "
	f := ProfileScore(partial, Job{})
	if f.Score != 50 || f.Matched {
		t.Fatalf("partial profile = %+v", f)
	}
	if f.Reason.Params["missing"] != "bio, location" {
		t.Fatalf("missing = %q", f.Reason.Params["missing"])
	}
}

func TestJob_OpenAtAndValidate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if (Job{Active: true, ExpiresAt: &past}).OpenAt(now) {
		t.Fatalf("expired job reported open")
	}
	if !(Job{Active: true, ExpiresAt: &future}).OpenAt(now) {
		t.Fatalf("unexpired job reported closed")
	}
	if (Job{Active: false}).OpenAt(now) {
		t.Fatalf("inactive job reported open")
	}

	bad := []Job{
		{},
		{ID: uuid.New(), ApplicationsCount: -1},
		{ID: uuid.New(), Rate: RateRange{Min: 100, Max: 50}},
		{ID: uuid.New(), Type: "gig"},
		{ID: uuid.New(), Duration: "forever"},
	}
	for i, j := range bad {
		if err := j.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if err := (Job{ID: uuid.New(), Type: JobTypeContract, Duration: DurationOneToThree}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
