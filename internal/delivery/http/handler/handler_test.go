package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gigmatch/internal/database"
	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/domain/matching"
	"gigmatch/internal/repository"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type mockMatching struct {
	scores []matching.MatchScore
	err    error

	gotLimit    int
	gotMinScore int
	gotJobID    uuid.UUID
}

func (m *mockMatching) GetMatchesForUser(_ context.Context, _ uuid.UUID, limit, minScore int) ([]matching.MatchScore, error) {
	m.gotLimit, m.gotMinScore = limit, minScore
	return m.scores, m.err
}

func (m *mockMatching) GetMatchForJob(_ context.Context, _ uuid.UUID, jobID uuid.UUID) (matching.MatchScore, error) {
	m.gotJobID = jobID
	if m.err != nil {
		return matching.MatchScore{}, m.err
	}
	if len(m.scores) == 0 {
		return matching.MatchScore{}, usecase.ErrJobNotFound
	}
	return m.scores[0], nil
}

type mockPreferences struct {
	prefs repository.Preferences
	err   error
	got   repository.PreferencesUpdate
	calls int
}

func (m *mockPreferences) GetPreferences(_ context.Context, _ uuid.UUID) (repository.Preferences, error) {
	return m.prefs, m.err
}

func (m *mockPreferences) UpdatePreferences(_ context.Context, _ uuid.UUID, upd repository.PreferencesUpdate) (repository.Preferences, error) {
	m.calls++
	m.got = upd
	return m.prefs, m.err
}

func newApp(candidateID uuid.UUID, register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if candidateID != uuid.Nil {
			c.Locals(middleware.CtxCandidateIDKey, candidateID)
		}
		return c.Next()
	})
	register(app.Group("/me"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, env
}

func TestMatchHandler_ListMatches(t *testing.T) {
	jobID := uuid.New()
	uc := &mockMatching{scores: []matching.MatchScore{{
		JobID:          jobID,
		OverallScore:   81,
		Confidence:     matching.ConfidenceHigh,
		ReasonsMatched: []string{"Has 3/3 required skills"},
		WeightsVersion: "v1",
	}}}
	app := newApp(uuid.New(), NewMatchHandler(uc).RegisterRoutes)

	resp, env := do(t, app, http.MethodGet, "/me/matches?limit=5&min_score=60", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if uc.gotLimit != 5 || uc.gotMinScore != 60 {
		t.Fatalf("query not forwarded: limit=%d min_score=%d", uc.gotLimit, uc.gotMinScore)
	}

	var got []dto.MatchScoreResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	want := []dto.MatchScoreResponse{dto.NewMatchScoreResponse(uc.scores[0])}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if got[0].ReasonsNotMatched == nil {
		t.Fatalf("reason lists must serialize as arrays")
	}
}

func TestMatchHandler_Defaults(t *testing.T) {
	uc := &mockMatching{}
	app := newApp(uuid.New(), NewMatchHandler(uc).RegisterRoutes)

	resp, env := do(t, app, http.MethodGet, "/me/matches", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if uc.gotLimit != usecase.DefaultMatchLimit || uc.gotMinScore != 0 {
		t.Fatalf("unexpected defaults limit=%d min_score=%d", uc.gotLimit, uc.gotMinScore)
	}
	if string(env.Data) != "[]" {
		t.Fatalf("expected empty array, got %s", env.Data)
	}
}

func TestMatchHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		uid    uuid.UUID
		ucErr  error
		status int
	}{
		{"no candidate", "/me/matches", uuid.Nil, nil, fiber.StatusUnauthorized},
		{"bad limit", "/me/matches?limit=ten", uuid.New(), nil, fiber.StatusBadRequest},
		{"candidate missing", "/me/matches", uuid.New(), usecase.ErrCandidateNotFound, fiber.StatusNotFound},
		{"infrastructure", "/me/matches", uuid.New(), &usecase.InfrastructureError{Op: "load jobs", Err: errors.New("down")}, fiber.StatusServiceUnavailable},
		{"unexpected", "/me/matches", uuid.New(), errors.New("bug"), fiber.StatusInternalServerError},
		{"bad job id", "/me/matches/jobs/nope", uuid.New(), nil, fiber.StatusBadRequest},
		{"job missing", "/me/matches/jobs/" + uuid.NewString(), uuid.New(), nil, fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp(tc.uid, NewMatchHandler(&mockMatching{err: tc.ucErr}).RegisterRoutes)
			resp, _ := do(t, app, http.MethodGet, tc.path, "")
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if tc.status == fiber.StatusServiceUnavailable && resp.Header.Get(fiber.HeaderRetryAfter) == "" {
				t.Fatalf("expected Retry-After on 503")
			}
		})
	}
}

func TestPreferenceHandler_Update(t *testing.T) {
	uc := &mockPreferences{prefs: repository.Preferences{
		RemoteOnly:   true,
		JobTypes:     []matching.JobType{matching.JobTypeContract},
		Availability: matching.AvailabilityAvailable,
	}}
	app := newApp(uuid.New(), NewPreferenceHandler(uc).RegisterRoutes)

	resp, env := do(t, app, http.MethodPut, "/me/preferences", `{"remote_only":true,"job_types":["contract"],"rate_min":50}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if uc.got.RemoteOnly == nil || !*uc.got.RemoteOnly {
		t.Fatalf("remote_only not forwarded")
	}
	if uc.got.RateMin == nil || *uc.got.RateMin != 50 || uc.got.RateMax != nil {
		t.Fatalf("rate fields not forwarded as partial update: %+v", uc.got)
	}
	if uc.got.ContractDurations != nil || uc.got.Availability != nil {
		t.Fatalf("omitted fields must stay nil")
	}

	var got dto.PreferencesResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if diff := cmp.Diff([]string{"contract"}, got.JobTypes); diff != "" {
		t.Fatalf("job types mismatch (-want +got):\n%s", diff)
	}
	if got.ContractDurations == nil {
		t.Fatalf("expected empty array for durations")
	}
}

func TestPreferenceHandler_Validation(t *testing.T) {
	uc := &mockPreferences{err: &usecase.ValidationError{Field: "rate_min", Message: "must not exceed rate_max"}}
	app := newApp(uuid.New(), NewPreferenceHandler(uc).RegisterRoutes)

	resp, env := do(t, app, http.MethodPut, "/me/preferences", `{"rate_min":200,"rate_max":100}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var fe fieldError
	if err := json.Unmarshal(env.Data, &fe); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if fe.Field != "rate_min" {
		t.Fatalf("unexpected field error %+v", fe)
	}

	calls := uc.calls
	resp, _ = do(t, app, http.MethodPut, "/me/preferences", `{}`)
	if resp.StatusCode != fiber.StatusBadRequest || uc.calls != calls {
		t.Fatalf("empty body must be rejected before the usecase, status=%d", resp.StatusCode)
	}
}

func TestPreferenceHandler_Get(t *testing.T) {
	id := uuid.New()
	uc := &mockPreferences{prefs: repository.Preferences{CandidateID: id}}
	app := newApp(id, NewPreferenceHandler(uc).RegisterRoutes)

	resp, env := do(t, app, http.MethodGet, "/me/preferences", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got dto.PreferencesResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.CandidateID != id || got.UpdatedAt != nil {
		t.Fatalf("unexpected preferences %+v", got)
	}

	uc.err = usecase.ErrCandidateNotFound
	if resp, _ := do(t, app, http.MethodGet, "/me/preferences", ""); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

type fakeDatabase struct {
	err   error
	stats database.PoolStats
}

func (d fakeDatabase) Ping(context.Context) error { return d.err }
func (d fakeDatabase) Stats() database.PoolStats  { return d.stats }

func TestHealthHandler(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{
		{nil, fiber.StatusOK},
		{&database.UnavailableError{Op: "ping", Err: errors.New("connection refused")}, fiber.StatusServiceUnavailable},
	} {
		app := fiber.New()
		app.Use(middleware.NewErrorMiddleware(nil).Middleware())
		NewHealthHandler(fakeDatabase{err: tc.err}).RegisterRoutes(app)

		resp, _ := do(t, app, http.MethodGet, "/health", "")
		if resp.StatusCode != tc.status {
			t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
		}
	}
}

func TestHealthHandler_ReportsPoolStats(t *testing.T) {
	stats := database.PoolStats{MaxConns: 10, TotalConns: 4, IdleConns: 3, AcquiredConns: 1}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewHealthHandler(fakeDatabase{stats: stats}).RegisterRoutes(app)

	resp, env := do(t, app, http.MethodGet, "/health", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		Database string             `json:"database"`
		Pool     database.PoolStats `json:"pool"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.Database != "up" {
		t.Fatalf("database = %q", got.Database)
	}
	if diff := cmp.Diff(stats, got.Pool); diff != "" {
		t.Fatalf("pool stats mismatch (-want +got):\n%s", diff)
	}
}
