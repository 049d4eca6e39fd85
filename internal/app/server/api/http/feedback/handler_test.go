package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/api/http/middleware/auth"
	"artha/internal/app/server/api/http/openapi"
	"artha/internal/domain/feedback"
	"artha/internal/domain/token"
	"artha/internal/domain/user"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, req feedback.SubmitRequest) (feedback.Entry, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(feedback.Entry), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]feedback.Entry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]feedback.Entry), args.Error(1)
}

func (m *MockService) Stats(ctx context.Context) (feedback.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(feedback.Stats), args.Error(1)
}

func (m *MockService) UpdateStatus(ctx context.Context, id string, status feedback.Status) (feedback.Entry, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(feedback.Entry), args.Error(1)
}

func (m *MockService) Reply(ctx context.Context, id string, admin feedback.Admin, message string) (feedback.Entry, error) {
	args := m.Called(ctx, id, admin, message)
	return args.Get(0).(feedback.Entry), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) FindByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

const entryID = "3f0c6a2e-8a7d-4c55-9a5e-0d7c1f1b2a10"

var (
	admin  = user.User{ID: "a1", Name: "Root", Email: "root@example.com", Role: user.RoleAdmin}
	member = user.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: user.RoleUser}
)

func setup(t *testing.T, service feedback.Servicer, users Users) (humatest.TestAPI, func(u user.User) string) {
	tokens := token.NewService("test-secret", time.Hour, slog.Default())
	authMW := auth.New(tokens, slog.Default())

	_, api := humatest.New(t, openapi.Config())
	NewHandler(service, users, slog.Default(),
		huma.Middlewares{},
		huma.Middlewares{authMW.Middleware(), authMW.RequireRole(user.RoleAdmin)},
	).SetupRoutes(api)

	bearer := func(u user.User) string {
		raw, err := tokens.Issue(u)
		require.NoError(t, err)
		return "Authorization: Bearer " + raw
	}
	return api, bearer
}

func TestHandler_submit(t *testing.T) {
	service := new(MockService)
	service.On("Submit", mock.Anything, feedback.SubmitRequest{Message: "Nice app"}).
		Return(feedback.Entry{ID: entryID}, nil)
	service.On("Submit", mock.Anything, feedback.SubmitRequest{Message: " "}).
		Return(feedback.Entry{}, feedback.ErrMessageMissing)
	service.On("Submit", mock.Anything, feedback.SubmitRequest{Type: "praise", Message: "hi"}).
		Return(feedback.Entry{}, fmt.Errorf("%w: unknown feedback type: praise", feedback.ErrInvalidInput))
	api, _ := setup(t, service, new(MockUsers))

	resp := api.Post("/api/feedback", map[string]any{"message": "Nice app"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"message":"Thank you for your feedback!","feedbackId":"`+entryID+`"}`, resp.Body.String())

	resp = api.Post("/api/feedback", map[string]any{"message": " "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Feedback message is required"}`, resp.Body.String())

	resp = api.Post("/api/feedback", map[string]any{"message": "hi", "type": "praise"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "unknown feedback type")
}

func TestHandler_submit_EmptyOptionalFields(t *testing.T) {
	service := new(MockService)
	service.On("Submit", mock.Anything, feedback.SubmitRequest{Message: "hi"}).
		Return(feedback.Entry{ID: entryID, Name: feedback.DefaultName, Type: feedback.CategoryGeneral}, nil)
	api, _ := setup(t, service, new(MockUsers))

	resp := api.Post("/api/feedback", map[string]any{"name": "", "email": "", "type": "", "message": "hi"})

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	service.AssertExpectations(t)
}

func TestHandler_AdminOnly(t *testing.T) {
	service := new(MockService)
	service.On("List", mock.Anything).Return([]feedback.Entry{{ID: entryID, Type: feedback.CategoryBug, Status: feedback.StatusNew}}, nil)
	service.On("Stats", mock.Anything).Return(feedback.Stats{
		Total:    1,
		ByType:   map[feedback.Category]int{feedback.CategoryBug: 1},
		ByStatus: map[feedback.Status]int{feedback.StatusNew: 1},
	}, nil)
	api, bearer := setup(t, service, new(MockUsers))

	for _, path := range []string{"/api/feedback", "/api/feedback/stats"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, api.Get(path).Code)

			resp := api.Get(path, bearer(member))
			assert.Equal(t, http.StatusForbidden, resp.Code)
			assert.JSONEq(t, `{"error":"Admin access required"}`, resp.Body.String())

			resp = api.Get(path, bearer(admin))
			assert.Equal(t, http.StatusOK, resp.Code)
		})
	}
}

func TestHandler_stats(t *testing.T) {
	service := new(MockService)
	service.On("Stats", mock.Anything).Return(feedback.Stats{
		Total:    3,
		ByType:   map[feedback.Category]int{feedback.CategoryBug: 2, feedback.CategoryGeneral: 1},
		ByStatus: map[feedback.Status]int{feedback.StatusNew: 3},
	}, nil)
	api, bearer := setup(t, service, new(MockUsers))

	resp := api.Get("/api/feedback/stats", bearer(admin))
	require.Equal(t, http.StatusOK, resp.Code)

	var body feedback.Stats
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.ByType[feedback.CategoryBug])
}

func TestHandler_updateStatus(t *testing.T) {
	service := new(MockService)
	service.On("UpdateStatus", mock.Anything, entryID, feedback.StatusResolved).
		Return(feedback.Entry{ID: entryID, Status: feedback.StatusResolved}, nil)
	api, bearer := setup(t, service, new(MockUsers))

	resp := api.Patch("/api/feedback/"+entryID+"/status", bearer(admin), map[string]any{"status": "resolved"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"status":"resolved"`)

	resp = api.Patch("/api/feedback/"+entryID+"/status", bearer(admin), map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = api.Patch("/api/feedback/"+entryID+"/status", bearer(member), map[string]any{"status": "resolved"})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	service.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestHandler_reply(t *testing.T) {
	service := new(MockService)
	service.On("Reply", mock.Anything, entryID, feedback.Admin{Name: "Root", Email: "root@example.com"}, "Thanks!").
		Return(feedback.Entry{ID: entryID, Replies: []feedback.Reply{{AdminName: "Root", Message: "Thanks!"}}}, nil)
	service.On("Reply", mock.Anything, "9b2f4c1e-1111-4c55-9a5e-0d7c1f1b2a10", mock.Anything, "Thanks!").
		Return(feedback.Entry{}, feedback.ErrNotFound)
	users := new(MockUsers)
	users.On("FindByID", mock.Anything, "a1").Return(admin, nil)
	api, bearer := setup(t, service, users)

	resp := api.Post("/api/feedback/"+entryID+"/replies", bearer(admin), map[string]any{"message": "Thanks!"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"adminName":"Root"`)

	resp = api.Post("/api/feedback/9b2f4c1e-1111-4c55-9a5e-0d7c1f1b2a10/replies", bearer(admin), map[string]any{"message": "Thanks!"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"error":"Feedback not found"}`, resp.Body.String())
}
