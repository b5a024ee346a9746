package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matrukan/tricog/internal/app/config"
	"github.com/matrukan/tricog/internal/app/database"
	"github.com/matrukan/tricog/internal/app/ds"
	"github.com/matrukan/tricog/internal/app/intake"
	"github.com/matrukan/tricog/internal/app/matcher"
	"github.com/matrukan/tricog/internal/app/repository"
	"github.com/matrukan/tricog/internal/app/seed"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DBConfig{Driver: database.DriverSQLite, Path: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := repository.New(db)
	require.NoError(t, repo.Migrate())
	_, err = repo.Seed(context.Background(), seed.Defaults())
	require.NoError(t, err)

	m := matcher.New()
	return NewRouter(NewHandler(repo, m, intake.NewService(repo, m, nil)), testOrigin)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListSymptoms(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/symptoms", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rules []ds.SymptomRule
	decode(t, w, &rules)
	require.Len(t, rules, 5)
	var keys []string
	for _, rule := range rules {
		keys = append(keys, rule.Symptom)
	}
	assert.Equal(t, []string{"chest pain", "dizziness", "fatigue", "palpitations", "shortness of breath"}, keys)
}

func TestGetFollowUps(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/followups/Chest%20Pain", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Symptom           string   `json:"symptom"`
		FollowUpQuestions []string `json:"follow_up_questions"`
	}
	decode(t, w, &body)
	assert.Equal(t, "chest pain", body.Symptom)
	require.Len(t, body.FollowUpQuestions, 6)
	assert.Equal(t, "When did the chest pain start?", body.FollowUpQuestions[0])

	w = do(t, r, http.MethodGet, "/followups/unknownsymptom", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Unknown symptom"}`, w.Body.String())
}

func TestMapText(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		body string
		want string
	}{
		{`{"text":"I have dizziness and palpitations"}`, `{"symptoms":["dizziness","palpitations"]}`},
		{`{"text":""}`, `{"symptoms":[]}`},
		{`{"text":"SHORTNESS OF BREATH, chest pain"}`, `{"symptoms":["chest pain","shortness of breath"]}`},
		{`{"text":"fatigued and dizzy"}`, `{"symptoms":[]}`},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodPost, "/map", tc.body)
		require.Equal(t, http.StatusOK, w.Code, tc.body)
		assert.JSONEq(t, tc.want, w.Body.String(), tc.body)
	}
}

func TestMapText_Validation(t *testing.T) {
	r := newTestRouter(t)
	for _, body := range []string{`{}`, `{"txt":"chest pain"}`, `not json`, `{"text": 5}`} {
		w := do(t, r, http.MethodPost, "/map", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"status":"error"`)
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/map", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIntakeEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/intake", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var turn intake.Turn
	decode(t, w, &turn)
	require.NotEmpty(t, turn.SessionID)
	assert.Equal(t, ds.StageName, turn.Stage)

	path := "/intake/" + turn.SessionID + "/messages"
	for _, msg := range []string{"Ada", "ada@example.org", "Female"} {
		w = do(t, r, http.MethodPost, path, `{"message":"`+msg+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, path, `{"message":"palpitations since Monday"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &turn)
	assert.Equal(t, ds.StageFollowUp, turn.Stage)
	assert.Equal(t, []string{"palpitations"}, turn.Symptoms)
	assert.True(t, strings.HasSuffix(turn.Reply, "When do you notice your heart racing?"))

	w = do(t, r, http.MethodPost, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/intake/"+turn.SessionID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var p ds.PatientIntake
	decode(t, w, &p)
	assert.Equal(t, "Ada", p.Name)

	w = do(t, r, http.MethodGet, "/intake/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodPost, "/intake/does-not-exist/messages", `{"message":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/patients", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []ds.PatientIntake
	decode(t, w, &list)
	assert.Len(t, list, 1)
}
