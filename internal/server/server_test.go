package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/config"
	"github.com/jonathan/groepsplan/internal/db"
	"github.com/jonathan/groepsplan/internal/experiments"
	"github.com/jonathan/groepsplan/internal/llm"
	"github.com/jonathan/groepsplan/internal/llm/llmtest"
	"github.com/jonathan/groepsplan/internal/metrics"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/prompts"
	"github.com/jonathan/groepsplan/internal/types"
	"github.com/jonathan/groepsplan/internal/validation"
)

// fakeGenerator records requests and answers with RunFunc.
type fakeGenerator struct {
	mu       sync.Mutex
	requests []pipeline.Request
	RunFunc  func(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

func (g *fakeGenerator) Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	return g.RunFunc(ctx, req)
}

// fakeStore is an in-memory DocumentStore.
type fakeStore struct {
	mu       sync.Mutex
	docs     map[uuid.UUID]*db.Document
	lastList db.ListDocumentsOptions
	pingErr  error
}

func newFakeStore(docs ...*db.Document) *fakeStore {
	s := &fakeStore{docs: make(map[uuid.UUID]*db.Document)}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *fakeStore) GetDocument(_ context.Context, id uuid.UUID) (*db.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id], nil
}

func (s *fakeStore) ListDocuments(_ context.Context, opts db.ListDocumentsOptions) ([]db.DocumentSummary, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastList = opts
	var out []db.DocumentSummary
	for _, d := range s.docs {
		if d.TeacherID == opts.TeacherID {
			out = append(out, d.Summary())
		}
	}
	return out, len(out), nil
}

func (s *fakeStore) DeleteDocument(_ context.Context, id uuid.UUID, teacherID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok || d.TeacherID != teacherID {
		return false, nil
	}
	delete(s.docs, id)
	return true, nil
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			CORSOrigins:  []string{"*"},
		},
		JWT: config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 1},
	}
}

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()
	if deps.Config == nil {
		deps.Config = testConfig()
	}
	s, err := New(deps)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) tokenFor(t *testing.T, teacherID uuid.UUID) string {
	t.Helper()
	token, err := s.JWT().GenerateToken(teacherID)
	require.NoError(t, err)
	return token
}

func do(s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func scratchInputs() types.ScratchInputs {
	return types.ScratchInputs{
		Groep:            5,
		Vakgebied:        types.VakRekenen,
		Challenge:        types.ChallengeNiveauverschillen,
		AantalLeerlingen: 28,
		Groepsindeling:   types.Groepsindeling{Basis: 18, Intensief: 6, Meer: 4},
		StartingPoint:    types.StartNaMiddentoets,
	}
}

func compliantPlan(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../parsing/testdata/groepsplan.md")
	require.NoError(t, err)
	return string(data)
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""
	_, err := New(Deps{Config: cfg})
	assert.Error(t, err)

	_, err = New(Deps{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("without store", func(t *testing.T) {
		w := do(newTestServer(t, Deps{}), http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string]string](t, w)
		assert.Equal(t, "ok", resp["status"])
		assert.Equal(t, "disabled", resp["database"])
	})

	t.Run("database down", func(t *testing.T) {
		store := newFakeStore()
		store.pingErr = errors.New("connection refused")
		w := do(newTestServer(t, Deps{Store: store}), http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unreachable", decode[map[string]string](t, w)["database"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	w := do(newTestServer(t, Deps{Metrics: metrics.New()}), http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = do(newTestServer(t, Deps{}), http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestScratchPrompt(t *testing.T) {
	s := newTestServer(t, Deps{})
	in := scratchInputs()

	t.Run("base prompt", func(t *testing.T) {
		w := do(s, http.MethodPost, "/api/prompts/scratch", in, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[map[string]any](t, w)
		assert.Equal(t, prompts.BuildScratchPrompt(in), resp["prompt"])
		assert.NotContains(t, resp, "variant")
		assert.Greater(t, resp["length"], float64(0))
	})

	t.Run("with variant", func(t *testing.T) {
		w := do(s, http.MethodPost, "/api/prompts/scratch?experiment=prompt-tone&variant=warm_collegiaal", in, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "warm_collegiaal", resp["variant"])
		assert.Contains(t, resp["prompt"], prompts.BuildScratchPrompt(in))
	})

	t.Run("errors", func(t *testing.T) {
		bad := scratchInputs()
		bad.Groepsindeling.Meer = 10

		tests := []struct {
			name string
			path string
			body any
			code string
		}{
			{"sum mismatch", "/api/prompts/scratch", bad, validation.CodeSumMismatch},
			{"malformed json", "/api/prompts/scratch", "{", CodeInvalidRequest},
			{"unknown experiment", "/api/prompts/scratch?experiment=nope", in, CodeUnknownExperiment},
			{"unknown variant", "/api/prompts/scratch?experiment=prompt-tone&variant=nope", in, CodeUnknownExperiment},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := do(s, http.MethodPost, tt.path, tt.body, "")
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, tt.code, decode[errorBody](t, w).Code)
			})
		}
	})
}

func TestScratchPrompt_SumMismatchDetails(t *testing.T) {
	bad := scratchInputs()
	bad.Groepsindeling.Meer = 10

	w := do(newTestServer(t, Deps{}), http.MethodPost, "/api/prompts/scratch", bad, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string                  `json:"error"`
		Code    string                  `json:"code"`
		Details []validation.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "groepsindeling", resp.Details[0].Field)
	assert.EqualValues(t, 28, resp.Details[0].Expected)
	assert.EqualValues(t, 34, resp.Details[0].Actual)
}

func TestUploadPrompt(t *testing.T) {
	s := newTestServer(t, Deps{})

	in := types.UploadPromptInputs{
		ExtractedText:        strings.Repeat("Het vorige groepsplan beschrijft de aanpak voor rekenen in groep 5. ", 30),
		Groep:                5,
		NewVakgebied:         "spelling",
		ChallengeDescription: "Werkwoordspelling blijft achter.",
	}
	w := do(s, http.MethodPost, "/api/prompts/upload", in, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[map[string]any](t, w)
	assert.Contains(t, resp["prompt"], "Geüploade Document Context")
	assert.Contains(t, resp["prompt"], "Nieuwe Context")

	in.NewVakgebied = ""
	w = do(s, http.MethodPost, "/api/prompts/upload", in, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, validation.CodeRequiredFieldMissing, decode[errorBody](t, w).Code)
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := do(s, http.MethodPost, "/api/groepsplannen/analyze", analyzeRequest{Markdown: compliantPlan(t)}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a := decode[pipeline.Analysis](t, w)
	assert.True(t, a.Document.ComplianceChecks.InspectieProof)
	assert.GreaterOrEqual(t, len(a.Document.Sections), 6)
	assert.Len(t, a.Quality, 4)

	strict := true
	w = do(s, http.MethodPost, "/api/groepsplannen/analyze", analyzeRequest{Markdown: "# Beginsituatie\nDe groep scoort gemiddeld.", Strict: &strict}, "")
	require.Equal(t, http.StatusOK, w.Code)
	a = decode[pipeline.Analysis](t, w)
	assert.False(t, a.Document.ComplianceChecks.InspectieProof)

	w = do(s, http.MethodPost, "/api/groepsplannen/analyze", analyzeRequest{Markdown: "  "}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExperiments(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := do(s, http.MethodGet, "/api/experiments", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[map[string][]experiments.Experiment](t, w)
	assert.Len(t, list["experiments"], len(experiments.Experiments()))

	in := scratchInputs()
	want, err := experiments.SelectVariant("prompt-length", in.SubjectKey())
	require.NoError(t, err)

	w = do(s, http.MethodGet, "/api/experiments/prompt-length?subject="+in.SubjectKey(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[experimentResponse](t, w)
	assert.Equal(t, "prompt-length", resp.ID)
	assert.NotEmpty(t, resp.Variants)
	require.NotNil(t, resp.Assigned)
	assert.Equal(t, want.Name, resp.Assigned.Name)

	w = do(s, http.MethodGet, "/api/experiments/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartUpload(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestExtract(t *testing.T) {
	s := newTestServer(t, Deps{})

	t.Run("markdown", func(t *testing.T) {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, multipartUpload(t, "/api/uploads/extract", "plan.md", []byte(compliantPlan(t))))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[map[string]any](t, w)
		assert.Contains(t, resp["text"], "Beginsituatie")
		prefill := resp["prefill"].(map[string]any)
		assert.EqualValues(t, 5, prefill["groep"])
		assert.Equal(t, "rekenen", prefill["vakgebied"])
	})

	tests := []struct {
		name     string
		filename string
		content  []byte
		status   int
	}{
		{"unsupported", "plan.pdf", []byte("%PDF"), http.StatusUnsupportedMediaType},
		{"empty document", "plan.txt", []byte("   \n"), http.StatusUnprocessableEntity},
		{"missing file", "", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, multipartUpload(t, "/api/uploads/extract", tt.filename, tt.content))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestExtract_Enrich(t *testing.T) {
	client := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierLite, tier)
			return `{"groep": 4, "vakgebied": "spelling"}`, nil
		},
	}
	s := newTestServer(t, Deps{Enricher: client})
	content := []byte("# Plan\n\nDe leerlingen oefenen dagelijks met werkwoorden.")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, multipartUpload(t, "/api/uploads/extract?enrich=true", "plan.md", content))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	prefill := decode[map[string]any](t, w)["prefill"].(map[string]any)
	assert.EqualValues(t, 4, prefill["groep"])
	assert.Equal(t, "spelling", prefill["vakgebied"])

	// without the flag the model is not asked
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, multipartUpload(t, "/api/uploads/extract", "plan.md", content))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, client.Prompts(), 1)
}

func TestGenerate(t *testing.T) {
	teacherID := uuid.New()
	gen := &fakeGenerator{RunFunc: func(_ context.Context, req pipeline.Request) (*pipeline.Result, error) {
		return &pipeline.Result{RunID: "run-1", Prompt: "p", Attempts: 1}, nil
	}}
	s := newTestServer(t, Deps{Generator: gen})
	token := s.tokenFor(t, teacherID)
	in := scratchInputs()
	body := map[string]any{"scratch": in, "variant": "control", "experiment": "prompt-tone"}

	w := do(s, http.MethodPost, "/api/groepsplannen/generate", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, gen.requests)

	w = do(s, http.MethodPost, "/api/groepsplannen/generate", body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "run-1", decode[pipeline.Result](t, w).RunID)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, teacherID.String(), req.TeacherID)
	require.NotNil(t, req.Scratch)
	assert.Equal(t, in, *req.Scratch)
	assert.Equal(t, "control", req.Variant)
	assert.Equal(t, "prompt-tone", req.Experiment)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input", &validation.InputError{Code: validation.CodeSumMismatch}, http.StatusBadRequest, validation.CodeSumMismatch},
		{"model down", &pipeline.GenerationError{Attempts: 3, Reason: "model returned no text"}, http.StatusBadGateway, CodeGenerationFailed},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout},
		{"internal", errors.New("secret detail"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{RunFunc: func(context.Context, pipeline.Request) (*pipeline.Result, error) {
				return nil, tt.err
			}}
			s := newTestServer(t, Deps{Generator: gen})

			w := do(s, http.MethodPost, "/api/groepsplannen/generate", map[string]any{"scratch": scratchInputs()}, s.tokenFor(t, uuid.New()))
			assert.Equal(t, tt.status, w.Code)
			body := decode[errorBody](t, w)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "secret detail")
		})
	}
}

func TestGenerate_Unavailable(t *testing.T) {
	s := newTestServer(t, Deps{})
	w := do(s, http.MethodPost, "/api/groepsplannen/generate", map[string]any{}, s.tokenFor(t, uuid.New()))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// sseEvent is one parsed Server-Sent Event.
type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, body io.Reader) []sseEvent {
	t.Helper()
	var (
		events  []sseEvent
		current sseEvent
	)
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.name != "" {
				events = append(events, current)
			}
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestGenerateStream(t *testing.T) {
	plan := compliantPlan(t)
	p, err := pipeline.New(pipeline.Options{Client: llmtest.Responses(plan), Mode: compliance.ModeDefault})
	require.NoError(t, err)
	s := newTestServer(t, Deps{Generator: p})

	w := do(s, http.MethodPost, "/api/groepsplannen/generate/stream", map[string]any{"scratch": scratchInputs()}, s.tokenFor(t, uuid.New()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	events := readEvents(t, w.Body)
	require.NotEmpty(t, events)

	var steps []string
	for _, e := range events[:len(events)-1] {
		assert.Equal(t, eventProgress, e.name)
		var pe pipeline.ProgressEvent
		require.NoError(t, json.Unmarshal([]byte(e.data), &pe))
		steps = append(steps, pe.Step)
	}
	assert.Equal(t, []string{
		pipeline.StepValidate, pipeline.StepPrompt, pipeline.StepGenerate, pipeline.StepParse, pipeline.StepAnalyze,
	}, steps)

	last := events[len(events)-1]
	assert.Equal(t, eventResult, last.name)
	var res pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(last.data), &res))
	assert.True(t, res.Document.ComplianceChecks.InspectieProof)
}

func TestGenerateStream_Error(t *testing.T) {
	p, err := pipeline.New(pipeline.Options{Client: llmtest.Responses("unused")})
	require.NoError(t, err)
	s := newTestServer(t, Deps{Generator: p})

	bad := scratchInputs()
	bad.AantalLeerlingen = 29
	w := do(s, http.MethodPost, "/api/groepsplannen/generate/stream", map[string]any{"scratch": bad}, s.tokenFor(t, uuid.New()))
	require.Equal(t, http.StatusOK, w.Code)

	events := readEvents(t, w.Body)
	require.Len(t, events, 1)
	assert.Equal(t, eventError, events[0].name)
	var body errorBody
	require.NoError(t, json.Unmarshal([]byte(events[0].data), &body))
	assert.Equal(t, validation.CodeSumMismatch, body.Code)

	w = do(s, http.MethodPost, "/api/groepsplannen/generate/stream", "{", s.tokenFor(t, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocuments(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	groep := 5
	doc := &db.Document{
		ID:              uuid.New(),
		TeacherID:       owner.String(),
		Kind:            db.KindGroepsplan,
		Groep:           &groep,
		Parsed:          &types.ParsedGroepsplan{},
		ComplianceScore: 9,
		InspectieProof:  true,
	}
	store := newFakeStore(doc)
	s := newTestServer(t, Deps{Store: store})
	ownerToken, otherToken := s.tokenFor(t, owner), s.tokenFor(t, other)

	t.Run("list", func(t *testing.T) {
		w := do(s, http.MethodGet, "/api/groepsplannen?kind=groepsplan&inspectie_proof=true&limit=500&offset=0", nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[listDocumentsResponse](t, w)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, db.MaxListLimit, resp.Limit)
		require.Len(t, resp.Documents, 1)
		assert.Equal(t, doc.ID, resp.Documents[0].ID)

		assert.Equal(t, owner.String(), store.lastList.TeacherID)
		assert.Equal(t, db.KindGroepsplan, store.lastList.Kind)
		require.NotNil(t, store.lastList.InspectieProof)
		assert.True(t, *store.lastList.InspectieProof)
	})

	t.Run("list for other teacher is empty", func(t *testing.T) {
		w := do(s, http.MethodGet, "/api/groepsplannen", nil, otherToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"documents":[],"total":0,"limit":20,"offset":0}`, w.Body.String())
	})

	t.Run("list rejects bad filters", func(t *testing.T) {
		for _, q := range []string{"kind=rapport", "inspectie_proof=misschien", "limit=-1", "offset=x"} {
			w := do(s, http.MethodGet, "/api/groepsplannen?"+q, nil, ownerToken)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})

	t.Run("get", func(t *testing.T) {
		w := do(s, http.MethodGet, "/api/groepsplannen/"+doc.ID.String(), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, doc.ID, decode[db.Document](t, w).ID)

		w = do(s, http.MethodGet, "/api/groepsplannen/"+doc.ID.String(), nil, otherToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(s, http.MethodGet, "/api/groepsplannen/not-a-uuid", nil, ownerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(s, http.MethodGet, "/api/groepsplannen/"+doc.ID.String(), nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(s, http.MethodDelete, "/api/groepsplannen/"+doc.ID.String(), nil, otherToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(s, http.MethodDelete, "/api/groepsplannen/"+doc.ID.String(), nil, ownerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(s, http.MethodDelete, "/api/groepsplannen/"+doc.ID.String(), nil, ownerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDocuments_WithoutStore(t *testing.T) {
	s := newTestServer(t, Deps{})
	w := do(s, http.MethodGet, "/api/groepsplannen", nil, s.tokenFor(t, uuid.New()))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		w := do(newTestServer(t, Deps{}), http.MethodOptions, "/api/prompts/scratch", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("allow list", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.CORSOrigins = []string{"https://app.example.nl"}
		s := newTestServer(t, Deps{Config: cfg})

		for origin, want := range map[string]string{
			"https://app.example.nl":   "https://app.example.nl",
			"https://evil.example.com": "",
		} {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", origin)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)
			assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	})
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{
		Enabled:          true,
		DefaultRequests:  2,
		DefaultWindow:    time.Minute,
		GenerateRequests: 1,
		GenerateWindow:   time.Minute,
	}
	s := newTestServer(t, Deps{Config: cfg})

	for i := 0; i < 2; i++ {
		w := do(s, http.MethodGet, "/api/experiments", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(s, http.MethodGet, "/api/experiments", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decode[map[string]any](t, w)["code"])

	// health is never limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health", nil, "").Code)
	}
}
