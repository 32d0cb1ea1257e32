package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"communication-service/src/middleware"
	"communication-service/src/models"
	"communication-service/src/rooms"
	"communication-service/src/service"

	"github.com/gin-gonic/gin"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.CommunicationSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*models.CommunicationSession)}
}

func (m *memorySessionStore) CreateSession(ctx context.Context, s *models.CommunicationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.sessions[s.SessionID] = &copied
	return nil
}

func (m *memorySessionStore) GetSession(ctx context.Context, id string) (*models.CommunicationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memorySessionStore) TouchAndGetStatus(ctx context.Context, id string) (models.SessionStatus, *time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return "", nil, models.ErrSessionNotFound
	}
	return s.Status, s.EndedAt, nil
}

func (m *memorySessionStore) TransitionStatus(ctx context.Context, id string, to models.SessionStatus, endedAt *time.Time, allowedFrom ...models.SessionStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false, nil
	}
	for _, from := range allowedFrom {
		if s.Status == from {
			s.Status = to
			s.EndedAt = endedAt
			return true, nil
		}
	}
	return false, nil
}

func (m *memorySessionStore) ListSessionsByCase(ctx context.Context, caseID string) ([]*models.CommunicationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CommunicationSession
	for _, s := range m.sessions {
		if s.CaseID == caseID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memorySessionStore) CleanupStaleSessions(ctx context.Context, threshold time.Duration) (int64, error) {
	return 0, nil
}

type memoryCaseStore struct{ cases map[string]*models.Case }

func (m *memoryCaseStore) GetCase(ctx context.Context, id string) (*models.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, models.ErrCaseNotFound
	}
	return c, nil
}

type noopRecordingStore struct{}

func (noopRecordingStore) PurgeExpiredRecordings(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

type staticProvisioner struct{}

func (staticProvisioner) CreateRoom(ctx context.Context, req rooms.RoomRequest) (*rooms.Room, error) {
	return &rooms.Room{Name: req.Name, URL: "https://rooms.example/" + req.Name}, nil
}

// identityMiddleware stands in for JWT auth in tests.
func identityMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, userID)
		c.Next()
	}
}

func newTestRouter(store *memorySessionStore, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	lawyer := "lawyer-1"
	cases := &memoryCaseStore{cases: map[string]*models.Case{
		"case-1": {CaseID: "case-1", ClientID: "client-1", AssignedLawyerID: &lawyer},
	}}
	svc := service.NewSessionService(store, cases, noopRecordingStore{}, staticProvisioner{}, nil, 2*time.Hour)
	sc := NewSessionController(svc)

	r := gin.New()
	r.Use(middleware.CORSMiddleware())

	authorized := r.Group("/", identityMiddleware(userID))
	authorized.POST("/sessions", sc.CreateSession)
	authorized.POST("/sessions/:id/activate", sc.ActivateSession)
	authorized.POST("/sessions/:id/end", sc.EndSession)
	authorized.GET("/cases/:caseId/sessions", sc.ListCaseSessions)

	r.GET("/sessions/:id/status", sc.GetSessionStatus)
	r.POST("/session-cleanup", sc.EmergencyCleanup)
	r.GET("/session-reclaim", sc.ReclaimStaleSessions)

	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSessionEndpoint(t *testing.T) {
	store := newMemorySessionStore()
	r := newTestRouter(store, "client-1")

	w := doJSON(r, http.MethodPost, "/sessions", `{"case_id":"case-1","kind":"video"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id"`
		RoomURL   string `json:"room_url"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Success || resp.RoomURL == "" || resp.Status != "pending" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateSessionEndpointForbidden(t *testing.T) {
	store := newMemorySessionStore()
	r := newTestRouter(store, "stranger")

	w := doJSON(r, http.MethodPost, "/sessions", `{"case_id":"case-1","kind":"video"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("unexpected error body: %+v", resp)
	}
	if len(store.sessions) != 0 {
		t.Error("session persisted for forbidden request")
	}
}

func TestCreateSessionEndpointBadJSON(t *testing.T) {
	r := newTestRouter(newMemorySessionStore(), "client-1")

	w := doJSON(r, http.MethodPost, "/sessions", `{"case_id":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSessionStatusEndpointMissing(t *testing.T) {
	r := newTestRouter(newMemorySessionStore(), "client-1")

	w := doJSON(r, http.MethodGet, "/sessions/ghost/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Exists  bool `json:"exists"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Success || resp.Exists {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestEndSessionEndpointIdempotent(t *testing.T) {
	store := newMemorySessionStore()
	store.sessions["s1"] = &models.CommunicationSession{
		SessionID: "s1", CaseID: "case-1", Status: models.StatusActive,
		Kind: models.KindVideo, CreatedAt: time.Now(),
	}
	r := newTestRouter(store, "client-1")

	first := doJSON(r, http.MethodPost, "/sessions/s1/end", "")
	if first.Code != http.StatusOK {
		t.Fatalf("first end status = %d, want 200", first.Code)
	}
	var firstResp struct {
		EndedAt string `json:"ended_at"`
	}
	json.Unmarshal(first.Body.Bytes(), &firstResp)
	if firstResp.EndedAt == "" {
		t.Fatal("ended_at missing after first end")
	}

	second := doJSON(r, http.MethodPost, "/sessions/s1/end", "")
	if second.Code != http.StatusOK {
		t.Fatalf("second end status = %d, want 200", second.Code)
	}
	var secondResp struct {
		EndedAt string `json:"ended_at"`
	}
	json.Unmarshal(second.Body.Bytes(), &secondResp)
	if secondResp.EndedAt != firstResp.EndedAt {
		t.Errorf("ended_at changed on repeat: %s -> %s", firstResp.EndedAt, secondResp.EndedAt)
	}
}

func TestEmergencyCleanupEndpointNoop(t *testing.T) {
	store := newMemorySessionStore()
	store.sessions["s1"] = &models.CommunicationSession{
		SessionID: "s1", CaseID: "case-1", Status: models.StatusPending,
		Kind: models.KindVoice, CreatedAt: time.Now(),
	}
	r := newTestRouter(store, "client-1")

	w := doJSON(r, http.MethodPost, "/session-cleanup", `{"session_id":"s1","end_time":"2026-01-01T00:00:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Applied bool `json:"applied"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Success || resp.Applied {
		t.Errorf("cleanup of non-active session should be a no-op: %+v", resp)
	}
	if store.sessions["s1"].Status != models.StatusPending {
		t.Error("non-active session status changed by emergency cleanup")
	}
}

func TestReclaimEndpoint(t *testing.T) {
	r := newTestRouter(newMemorySessionStore(), "client-1")

	w := doJSON(r, http.MethodGet, "/session-reclaim", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestPreflightReturnsNoContent(t *testing.T) {
	r := newTestRouter(newMemorySessionStore(), "client-1")

	req := httptest.NewRequest(http.MethodOptions, "/session-cleanup", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("preflight missing CORS headers")
	}
}
