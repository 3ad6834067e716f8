package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/casefile/internal/core/generator"
	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/core/narrator"
	"github.com/agenthands/casefile/internal/graph"
)

// memStore serves reads straight from the loaded case.
type memStore struct {
	inactive bool
	loadErr  error
	c        *model.Case
	resets   int
}

func (m *memStore) IsActive() bool { return !m.inactive }

func (m *memStore) LoadCase(ctx context.Context, c *model.Case) error {
	if m.inactive {
		return graph.ErrInactive
	}
	if m.loadErr != nil {
		return m.loadErr
	}
	m.c = c.Clone()
	return nil
}

func (m *memStore) Reset(ctx context.Context) error {
	m.resets++
	m.c = nil
	return nil
}

func (m *memStore) CluesAt(ctx context.Context, location string) ([]model.ClueView, error) {
	var out []model.ClueView
	if m.c == nil {
		return out, nil
	}
	for _, it := range m.c.Clues {
		if it.Location == location {
			out = append(out, model.ClueView{Name: it.Name, Description: it.Description, Location: it.Location})
		}
	}
	return out, nil
}

func (m *memStore) WitnessesAt(ctx context.Context, location, time string) ([]model.PersonView, error) {
	var out []model.PersonView
	if m.c == nil {
		return out, nil
	}
	roles := make(map[string]model.Role)
	for _, p := range m.c.People() {
		roles[p.Name] = p.Role
	}
	for _, a := range m.c.Alibis {
		if a.Location == location && a.Time == time {
			out = append(out, model.PersonView{Name: a.Person, Role: roles[a.Person], Time: a.Time})
		}
	}
	return out, nil
}

func (m *memStore) RelationshipsOf(ctx context.Context, person string) ([]model.RelationshipView, error) {
	var out []model.RelationshipView
	if m.c == nil {
		return out, nil
	}
	for _, r := range m.c.Relationships {
		if r.From == person {
			out = append(out, model.RelationshipView{Type: r.Type, Target: r.To, Detail: r.Detail})
		}
	}
	return out, nil
}

func (m *memStore) Killer(ctx context.Context) (string, bool, error) {
	if m.c == nil {
		return "", false, nil
	}
	k, ok := m.c.KillerSuspect()
	return k.Name, ok, nil
}

func (m *memStore) Locations(ctx context.Context) ([]string, error) {
	if m.c == nil {
		return nil, nil
	}
	return m.c.Locations, nil
}

func (m *memStore) People(ctx context.Context) ([]model.Person, error) {
	if m.c == nil {
		return nil, nil
	}
	return m.c.People(), nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type harness struct {
	router *gin.Engine
	stores map[string]*memStore
	clock  *fakeClock
	remark *narrator.MockLLMClient
}

func newHarness(t *testing.T, template memStore) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &harness{
		stores: make(map[string]*memStore),
		clock:  &fakeClock{t: time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)},
		remark: &narrator.MockLLMClient{Response: "Interesting..."},
	}
	gen := generator.NewGenerator(
		&generator.MockLLMClient{Err: errors.New("offline")},
		generator.WithRand(rand.New(rand.NewPCG(1, 2))),
		generator.WithLogger(logger),
	)
	nar := narrator.NewNarrator(h.remark, narrator.WithLogger(logger))
	factory := func(caseID string) CaseStore {
		st := template
		h.stores[caseID] = &st
		return &st
	}
	srv := NewServer(gen, nar, factory,
		WithTimeLimit(10*time.Minute),
		WithClock(h.clock.Now),
		WithLogger(logger),
	)
	h.router = srv.SetupRouter()
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) open(t *testing.T) Brief {
	t.Helper()
	w := h.do(t, http.MethodPost, "/cases", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b Brief
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNewCase_BriefHidesKiller(t *testing.T) {
	h := newHarness(t, memStore{})
	w := h.do(t, http.MethodPost, "/cases", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	b := decode[Brief](t, w)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Mystery at the Manor", b.Title)
	assert.Equal(t, "Henry Ashworth", b.Victim.Name)
	assert.Len(t, b.Suspects, 4)
	assert.Equal(t, 600, b.TimeLimit)
	assert.True(t, b.Degraded)
	assert.True(t, b.GraphActive)

	assert.NotContains(t, w.Body.String(), "is_killer")
	assert.NotContains(t, w.Body.String(), "true_motive")
	require.Contains(t, h.stores, b.ID)
	assert.NotNil(t, h.stores[b.ID].c, "case loaded under the session id")
}

func TestFullInvestigation(t *testing.T) {
	h := newHarness(t, memStore{})
	id := h.open(t).ID
	base := "/cases/" + id

	w := h.do(t, http.MethodPost, base+"/search", gin.H{"location": "Garden"})
	require.Equal(t, http.StatusOK, w.Code)
	search := decode[struct {
		Clues   []model.ClueView `json:"clues"`
		Remarks []string         `json:"remarks"`
	}](t, w)
	require.Len(t, search.Clues, 2)
	assert.Equal(t, "Bloody Dagger", search.Clues[0].Name)
	assert.Equal(t, []string{"Interesting...", "Interesting..."}, search.Remarks)

	w = h.do(t, http.MethodPost, base+"/search", gin.H{"location": "Garden"})
	search = decode[struct {
		Clues   []model.ClueView `json:"clues"`
		Remarks []string         `json:"remarks"`
	}](t, w)
	assert.Len(t, search.Clues, 2)
	assert.Empty(t, search.Remarks, "nothing new the second time")

	w = h.do(t, http.MethodPost, base+"/witnesses", gin.H{"location": "Garden", "time": "10:00 PM"})
	require.Equal(t, http.StatusOK, w.Code)
	wits := decode[struct {
		Witnesses []model.PersonView `json:"witnesses"`
	}](t, w)
	var names []string
	for _, p := range wits.Witnesses {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Thomas Reed", "Henry Ashworth"}, names)

	h.remark.Response = "I was tending the roses, I swear it!"
	w = h.do(t, http.MethodPost, base+"/interview", gin.H{"person": "thomas reed", "question": "Where were you?"})
	require.Equal(t, http.StatusOK, w.Code)
	iv := decode[map[string]string](t, w)
	assert.Equal(t, "Thomas Reed", iv["person"])
	assert.Equal(t, "I was tending the roses, I swear it!", iv["reply"])

	w = h.do(t, http.MethodGet, base+"/relationships/Thomas%20Reed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rels := decode[struct {
		Relationships []model.RelationshipView `json:"relationships"`
	}](t, w)
	require.NotEmpty(t, rels.Relationships)
	assert.Equal(t, "Henry Ashworth", rels.Relationships[0].Target)

	w = h.do(t, http.MethodGet, base+"/evidence", nil)
	ev := decode[map[string]json.RawMessage](t, w)
	assert.NotContains(t, ev, "analysis")
	var evidence []model.ClueView
	require.NoError(t, json.Unmarshal(ev["evidence"], &evidence))
	assert.Len(t, evidence, 2)

	w = h.do(t, http.MethodGet, base+"/summary", nil)
	sum := decode[struct {
		Summary model.GameSummary `json:"summary"`
		Expired bool              `json:"expired"`
		Closed  bool              `json:"closed"`
	}](t, w)
	assert.Equal(t, 2, sum.Summary.EvidenceCount)
	assert.Equal(t, []string{"Garden"}, sum.Summary.VisitedLocations)
	assert.Contains(t, sum.Summary.Interviewed, "Thomas Reed")
	assert.False(t, sum.Expired)

	w = h.do(t, http.MethodPost, base+"/accuse", gin.H{"suspect": "THOMAS REED"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[model.AccusationResult](t, w)
	assert.True(t, res.Correct)
	assert.Equal(t, "Thomas Reed", res.ActualKiller)
	assert.Equal(t, 2, res.EvidenceCollected)
	assert.Equal(t, 1, res.LocationsVisited)

	assert.Equal(t, http.StatusConflict, h.do(t, http.MethodPost, base+"/accuse", gin.H{"suspect": "Mary Collins"}).Code)
	assert.Equal(t, http.StatusConflict, h.do(t, http.MethodPost, base+"/search", gin.H{"location": "Library"}).Code)
}

func TestWrongAccusation(t *testing.T) {
	h := newHarness(t, memStore{})
	id := h.open(t).ID

	res := decode[model.AccusationResult](t, h.do(t, http.MethodPost, "/cases/"+id+"/accuse", gin.H{"suspect": "Mary Collins"}))
	assert.False(t, res.Correct)
	assert.False(t, res.Indeterminate)
	assert.Equal(t, "Thomas Reed", res.ActualKiller)
}

func TestInactiveGraph(t *testing.T) {
	h := newHarness(t, memStore{inactive: true})
	b := h.open(t)
	assert.False(t, b.GraphActive)
	base := "/cases/" + b.ID

	w := h.do(t, http.MethodPost, base+"/search", gin.H{"location": "Garden"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clues": [], "remarks": []}`, w.Body.String())

	res := decode[model.AccusationResult](t, h.do(t, http.MethodPost, base+"/accuse", gin.H{"suspect": "Thomas Reed"}))
	assert.False(t, res.Correct)
	assert.True(t, res.Indeterminate)

	// an indeterminate accusation leaves the case open
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, base+"/accuse", gin.H{"suspect": "Thomas Reed"}).Code)
}

func TestPartialLoadStillOpens(t *testing.T) {
	h := newHarness(t, memStore{loadErr: &graph.LoadError{Failed: 1, Total: 20, Err: errors.New("timeout")}})
	assert.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/cases", nil).Code)
}

func TestLoadFailure(t *testing.T) {
	h := newHarness(t, memStore{loadErr: errors.New("connection reset")})
	assert.Equal(t, http.StatusInternalServerError, h.do(t, http.MethodPost, "/cases", nil).Code)
}

func TestTimeLimit(t *testing.T) {
	h := newHarness(t, memStore{})
	base := "/cases/" + h.open(t).ID

	h.clock.t = h.clock.t.Add(11 * time.Minute)

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, base+"/search", gin.H{"location": "Garden"}).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, base+"/witnesses", gin.H{"location": "Garden", "time": "10:00 PM"}).Code)

	res := decode[model.AccusationResult](t, h.do(t, http.MethodPost, base+"/accuse", gin.H{"suspect": "Thomas Reed"}))
	assert.True(t, res.Correct)
	assert.Zero(t, res.TimeRemaining)
}

func TestInterview_Rejections(t *testing.T) {
	h := newHarness(t, memStore{})
	base := "/cases/" + h.open(t).ID

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, base+"/interview", gin.H{"person": "Henry Ashworth"}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPost, base+"/interview", gin.H{"person": "Moriarty"}).Code)

	w := h.do(t, http.MethodPost, base+"/interview", gin.H{"person": "Mary Collins"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "reply")
}

func TestBadRequestsAndUnknownCase(t *testing.T) {
	h := newHarness(t, memStore{})
	base := "/cases/" + h.open(t).ID

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, base+"/search", gin.H{}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, base+"/accuse", gin.H{}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, base+"/ask", gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/cases/nope/summary", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPost, "/cases/nope/search", gin.H{"location": "Garden"}).Code)
}

func TestAssistantEndpoints(t *testing.T) {
	h := newHarness(t, memStore{})
	base := "/cases/" + h.open(t).ID
	h.remark.Response = "Consider the boots."

	w := h.do(t, http.MethodGet, base+"/hint", nil)
	require.Equal(t, http.StatusOK, w.Code)
	hint := decode[struct {
		Hint      string   `json:"hint"`
		Unvisited []string `json:"unvisited"`
	}](t, w)
	assert.Equal(t, "Consider the boots.", hint.Hint)
	assert.Equal(t, []string{"Garden", "Library", "Kitchen", "Bedroom"}, hint.Unvisited)

	w = h.do(t, http.MethodPost, base+"/ask", gin.H{"question": "Who lied?", "archive": true})
	require.Equal(t, http.StatusOK, w.Code)
	ask := decode[map[string]string](t, w)
	assert.Equal(t, "Consider the boots.", ask["answer"])
	assert.Equal(t, narrator.EmptyArchiveText, ask["archive"])

	w = h.do(t, http.MethodGet, base+"/evidence?analyze=true", nil)
	ev := decode[map[string]json.RawMessage](t, w)
	assert.JSONEq(t, `"`+narrator.NoEvidenceText+`"`, string(ev["analysis"]))
	assert.JSONEq(t, `[]`, string(ev["evidence"]))
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t, memStore{})
	a := h.open(t).ID
	b := h.open(t).ID
	require.NotEqual(t, a, b)

	h.do(t, http.MethodPost, "/cases/"+a+"/search", gin.H{"location": "Garden"})

	sa := decode[struct {
		Summary model.GameSummary `json:"summary"`
	}](t, h.do(t, http.MethodGet, "/cases/"+a+"/summary", nil))
	sb := decode[struct {
		Summary model.GameSummary `json:"summary"`
	}](t, h.do(t, http.MethodGet, "/cases/"+b+"/summary", nil))
	assert.Equal(t, 2, sa.Summary.EvidenceCount)
	assert.Zero(t, sb.Summary.EvidenceCount)
	assert.Empty(t, sb.Summary.VisitedLocations)
}

func TestCloseCase(t *testing.T) {
	h := newHarness(t, memStore{})
	id := h.open(t).ID

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodDelete, "/cases/"+id, nil).Code)
	assert.Equal(t, 1, h.stores[id].resets)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/cases/"+id+"/summary", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodDelete, "/cases/"+id, nil).Code)
}

func TestHealth(t *testing.T) {
	h := newHarness(t, memStore{})
	h.open(t)

	w := h.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "sessions": 1}`, w.Body.String())
}
