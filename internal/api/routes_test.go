package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/course"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/models"
	"github.com/playmatatu/minigolf/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScores struct {
	cards []models.Scorecard
	err   error
	mode  string
}

func (f *fakeScores) Best(_ context.Context, mode, _ string, _ int) ([]models.Scorecard, error) {
	f.mode = mode
	return f.cards, f.err
}

func newTestRouter(t *testing.T, scores *fakeScores) (*gin.Engine, *game.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	set, err := course.Builtin()
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:       "production",
		FrontendURL:       "http://localhost:5173",
		JWTSecret:         "test-secret",
		SessionTimeoutMin: 10,
	}
	mgr := game.NewSessionManager(set, nil, nil, cfg)
	router := gin.New()
	if scores == nil {
		SetupRoutes(router, mgr, ws.NewHub(), nil, cfg)
	} else {
		SetupRoutes(router, mgr, ws.NewHub(), scores, cfg)
	}
	return router, mgr
}

func do(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type created struct {
	SessionID string        `json:"session_id"`
	Token     string        `json:"token"`
	State     game.Snapshot `json:"state"`
}

func createSession(t *testing.T, router *gin.Engine, body any) created {
	t.Helper()
	w := do(router, http.MethodPost, "/api/v1/sessions", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out created
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.SessionID)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, out.SessionID, w.Header().Get("X-Session-ID"))
	return out
}

func TestHealthAndCourses(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = do(router, http.MethodGet, "/api/v1/courses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Holes    []map[string]any `json:"holes"`
		TotalPar int              `json:"total_par"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Holes, 5)
	assert.Positive(t, resp.TotalPar)
}

func TestCampaignSessionOverHTTP(t *testing.T) {
	router, mgr := newTestRouter(t, nil)
	s := createSession(t, router, nil)
	assert.Equal(t, game.ModeCampaign, s.State.Mode)
	assert.Equal(t, game.StatusPlaying, s.State.Status)
	require.NotNil(t, s.State.Hole)

	base := "/api/v1/sessions/" + s.SessionID
	ball := s.State.Ball.Position

	w := do(router, http.MethodPost, base+"/aim", s.Token, gin.H{"action": "press", "x": ball.X, "y": ball.Y})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(router, http.MethodPost, base+"/aim", s.Token, gin.H{"action": "release", "x": ball.X - 120, "y": ball.Y})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var aim struct {
		Result game.AimResult `json:"result"`
		State  game.Snapshot  `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &aim))
	assert.True(t, aim.Result.Accepted)
	assert.Equal(t, 1, aim.State.Score.Strokes)

	// The ball is rolling until the tick worker runs.
	w = do(router, http.MethodPost, base+"/club", s.Token, gin.H{"club": "wedge"})
	assert.Equal(t, http.StatusConflict, w.Code)

	live, err := mgr.Get(context.Background(), s.SessionID)
	require.NoError(t, err)
	for i := 0; i < 5000 && live.Moving(); i++ {
		live.Tick()
	}

	w = do(router, http.MethodPost, base+"/club", s.Token, gin.H{"club": "wedge"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(router, http.MethodPost, base+"/hole", s.Token, gin.H{"hole": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, http.MethodPost, base+"/restart", s.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 0, snap.Score.TotalStrokes)
}

func TestFreePlaySelectAndResize(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	s := createSession(t, router, gin.H{"mode": "free-play"})
	assert.Equal(t, game.StatusHoleSelect, s.State.Status)
	base := "/api/v1/sessions/" + s.SessionID

	w := do(router, http.MethodPost, base+"/hole", s.Token, gin.H{"hole": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, base+"/hole", s.Token, gin.H{"hole": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.NotNil(t, snap.Hole)
	assert.Equal(t, 2, snap.Hole.Index)

	w = do(router, http.MethodPost, base+"/resize", s.Token, gin.H{"width": 350, "height": 225})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, game.Size{Width: 350, Height: 225}, snap.Field)
}

func TestCreateSessionValidation(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := do(router, http.MethodPost, "/api/v1/sessions", "", gin.H{"mode": "arcade"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/api/v1/sessions", "", gin.H{"mode": "campaign", "hole": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s := createSession(t, router, gin.H{"mode": "free-play", "hole": 0})
	assert.Equal(t, game.StatusPlaying, s.State.Status)
}

func TestSessionRoutesRequireMatchingToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	a := createSession(t, router, nil)
	b := createSession(t, router, nil)

	w := do(router, http.MethodGet, "/api/v1/sessions/"+a.SessionID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, "/api/v1/sessions/"+a.SessionID, b.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(router, http.MethodGet, "/api/v1/sessions/"+a.SessionID, a.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/api/v1/sessions/"+a.SessionID+"/aim", a.Token, gin.H{"action": "wiggle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScores(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	w := do(router, http.MethodGet, "/api/v1/scores", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	fake := &fakeScores{cards: []models.Scorecard{{ID: 1, Mode: "campaign", TotalStrokes: 12, TotalPar: 14, FinalScore: "-2"}}}
	router, _ = newTestRouter(t, fake)
	w = do(router, http.MethodGet, "/api/v1/scores?mode=campaign", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"-2"`)
	assert.Equal(t, "campaign", fake.mode)

	fake.err = errors.New("db down")
	w = do(router, http.MethodGet, "/api/v1/scores", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
