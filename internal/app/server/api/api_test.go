package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"artha/internal/domain/feedback"
	"artha/internal/domain/history"
	"artha/internal/domain/token"
	"artha/internal/domain/translate"
	"artha/internal/domain/user"
)

// store backs users, their ledgers and feedback in memory for the wiring test.
type store struct {
	mu       sync.Mutex
	users    map[string]user.User
	ledgers  map[string][]history.Record
	feedback []feedback.Entry
}

func newStore() *store {
	return &store{users: map[string]user.User{}, ledgers: map[string][]history.Record{}}
}

type userRepo struct{ *store }

func (r userRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrDuplicate
		}
	}
	r.users[u.ID] = u
	r.ledgers[u.ID] = nil
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r userRepo) FindByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r userRepo) UpdatePreferences(_ context.Context, id string, prefs user.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Preferences = prefs
	r.users[id] = u
	return nil
}

func (r userRepo) SetRole(_ context.Context, email string, role user.Role) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == email {
			u.Role = role
			r.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

type historyRepo struct{ *store }

func (r historyRepo) Update(_ context.Context, userID string, fn func(*history.Ledger) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.ledgers[userID]
	if !ok {
		return history.ErrNotFound
	}
	l := history.NewLedger(stored)
	if err := fn(l); err != nil {
		return err
	}
	r.ledgers[userID] = l.Entries()
	return nil
}

func (r historyRepo) List(_ context.Context, userID string) ([]history.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.ledgers[userID]
	if !ok {
		return nil, history.ErrNotFound
	}
	return history.NewLedger(stored).Entries(), nil
}

type feedbackRepo struct{ *store }

func (r feedbackRepo) Create(_ context.Context, e feedback.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append([]feedback.Entry{e}, r.feedback...)
	return nil
}

func (r feedbackRepo) List(context.Context) ([]feedback.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]feedback.Entry(nil), r.feedback...), nil
}

func (r feedbackRepo) GroupCounts(context.Context) ([]feedback.Count, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var counts []feedback.Count
	for _, e := range r.feedback {
		counts = append(counts, feedback.Count{Type: e.Type, Status: e.Status, N: 1})
	}
	return counts, nil
}

func (r feedbackRepo) UpdateStatus(_ context.Context, id string, status feedback.Status) (feedback.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.feedback {
		if r.feedback[i].ID == id {
			r.feedback[i].Status = status
			return r.feedback[i], nil
		}
	}
	return feedback.Entry{}, feedback.ErrNotFound
}

func (r feedbackRepo) AppendReply(_ context.Context, id string, reply feedback.Reply) (feedback.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.feedback {
		if r.feedback[i].ID == id {
			r.feedback[i].Replies = append(r.feedback[i].Replies, reply)
			return r.feedback[i], nil
		}
	}
	return feedback.Entry{}, feedback.ErrNotFound
}

type alwaysUp struct{}

func (alwaysUp) Ping(context.Context) error { return nil }

type testServer struct {
	*httptest.Server
	users    *user.Service
	recorder *history.Recorder
}

func holaProvider(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(`[[["Hola","Hello"]],null,"en"]`))
}

func newTestServer(t *testing.T, opts Options, providerHandler http.HandlerFunc) *testServer {
	t.Helper()

	if providerHandler == nil {
		providerHandler = holaProvider
	}
	provider := httptest.NewServer(providerHandler)
	t.Cleanup(provider.Close)

	log := slog.Default()
	st := newStore()

	users := user.NewService(userRepo{st}, user.NewCredentialsValidator(), log, user.WithHashCost(bcrypt.MinCost))
	historyService := history.NewService(historyRepo{st}, log)
	recorder := history.NewRecorder(historyService, history.RecorderConfig{Workers: 1, QueueSize: 8, Timeout: time.Second}, log)
	t.Cleanup(func() { _ = recorder.Close(context.Background()) })

	translator := translate.NewService(translate.NewGoogleProvider(provider.URL, time.Second), time.Second, log)

	mux := New(Services{
		Users:     users,
		Tokens:    token.NewService("test-secret", time.Hour, log),
		Translate: translator,
		History:   historyService,
		Feedback:  feedback.NewService(feedbackRepo{st}, log),
		Recorder:  recorder,
		DB:        alwaysUp{},
		Provider:  "google-translate",
	}, opts, log)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, users: users, recorder: recorder}
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAPI_EndToEnd(t *testing.T) {
	srv := newTestServer(t, Options{CORSOrigins: []string{"*"}}, nil)

	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Asha", "email": "Asha@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, body)
	userToken := body["token"].(string)

	status, _ = srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status, "email uniqueness ignores case")

	status, body = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "asha@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user", body["user"].(map[string]any)["role"])

	status, body = srv.do(t, http.MethodPost, "/translate", "", map[string]any{
		"text": "Hello", "sourceLang": "en", "targetLang": "es", "saveToHistory": true, "authToken": userToken,
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Hola", body["translatedText"])

	assert.Eventually(t, func() bool {
		return srv.recorder.Stats().Saved == 1
	}, 2*time.Second, 10*time.Millisecond)

	status, body = srv.do(t, http.MethodGet, "/api/translations/history", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	entries := body["history"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "Hello", entries[0].(map[string]any)["originalText"])

	status, body = srv.do(t, http.MethodPost, "/api/feedback", "", map[string]any{"message": "Great", "type": "feature"})
	require.Equal(t, http.StatusCreated, status, body)
	feedbackID := body["feedbackId"].(string)

	status, _ = srv.do(t, http.MethodGet, "/api/feedback", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	_, err := srv.users.PromoteToAdmin(context.Background(), "asha@example.com")
	require.NoError(t, err)

	status, _ = srv.do(t, http.MethodGet, "/api/feedback", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status, "role is read from the token, so promotion applies after re-login")

	_, body = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "asha@example.com", "password": "secret1",
	})
	adminToken := body["token"].(string)

	status, body = srv.do(t, http.MethodGet, "/api/feedback/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["byType"].(map[string]any)["feature"])
	assert.Equal(t, float64(0), body["byType"].(map[string]any)["bug"])

	status, body = srv.do(t, http.MethodPost, "/api/feedback/"+feedbackID+"/replies", adminToken, map[string]any{"message": "Thanks"})
	require.Equal(t, http.StatusCreated, status, body)
	replies := body["feedback"].(map[string]any)["replies"].([]any)
	assert.Equal(t, "Asha", replies[0].(map[string]any)["adminName"])

	status, body = srv.do(t, http.MethodPost, "/api/feedback", "", map[string]any{
		"name": "", "email": "", "type": "", "message": "hi",
	})
	require.Equal(t, http.StatusCreated, status, body)
	anonymousID := body["feedbackId"].(string)

	status, body = srv.do(t, http.MethodGet, "/api/feedback", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var anonymous map[string]any
	for _, e := range body["feedback"].([]any) {
		if entry := e.(map[string]any); entry["id"] == anonymousID {
			anonymous = entry
		}
	}
	require.NotNil(t, anonymous)
	assert.Equal(t, "general", anonymous["type"])
	assert.Equal(t, "Anonymous", anonymous["name"])
}

func TestAPI_HealthAndCORS(t *testing.T) {
	srv := newTestServer(t, Options{CORSOrigins: []string{"http://localhost:5173"}}, nil)

	status, body := srv.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Connected", body["database"])

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/translate", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAPI_TranslateRateLimit(t *testing.T) {
	srv := newTestServer(t, Options{RateLimit: 0.001, RateBurst: 2}, nil)

	req := map[string]any{"text": "Hello", "sourceLang": "en", "targetLang": "es"}
	for i := 0; i < 2; i++ {
		status, _ := srv.do(t, http.MethodPost, "/translate", "", req)
		require.Equal(t, http.StatusOK, status)
	}

	status, body := srv.do(t, http.MethodPost, "/translate", "", req)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.NotEmpty(t, body["error"])
}

func TestAPI_ProviderFailureSkipsHistory(t *testing.T) {
	srv := newTestServer(t, Options{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, body)
	userToken := body["token"].(string)

	status, body = srv.do(t, http.MethodPost, "/translate", "", map[string]any{
		"text": "Hello", "sourceLang": "en", "targetLang": "es", "saveToHistory": true, "authToken": userToken,
	})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, translate.ErrProviderUnavailable.Error(), body["error"])

	assert.Zero(t, srv.recorder.Stats().Enqueued)

	status, body = srv.do(t, http.MethodGet, "/api/translations/history", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["history"])
}

func TestNew_DocumentsEveryResource(t *testing.T) {
	var mux http.Handler
	require.NotPanics(t, func() {
		mux = New(Services{}, Options{}, slog.Default())
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	for _, name := range []string{
		"UserMessageResponse",
		"HistoryMessageResponse",
		"HistoryListResponse",
		"FeedbackListResponse",
	} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}
