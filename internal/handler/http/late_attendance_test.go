package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fspro/attendance-backend-go/internal/domain/user"
	"github.com/fspro/attendance-backend-go/internal/pkg/docstore"
	"github.com/fspro/attendance-backend-go/internal/pkg/jwt"
	"github.com/fspro/attendance-backend-go/internal/pkg/sse"
	repo "github.com/fspro/attendance-backend-go/internal/repository/docstore"
	authService "github.com/fspro/attendance-backend-go/internal/service/auth"
	lateAttendanceService "github.com/fspro/attendance-backend-go/internal/service/lateattendance"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type testServer struct {
	router     http.Handler
	jwtService jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := docstore.NewMemoryStore()
	records := repo.NewLateCheckInRepository(store)
	timeTables := repo.NewTimeTableRepository(store)
	users := repo.NewUserRepository(store)

	hub := sse.NewHub()
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	authSvc := authService.NewAuthService(users, jwtSvc)
	lateSvc := lateAttendanceService.NewLateAttendanceService(records, timeTables, hub)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []user.User{
		{ID: uuid.NewString(), Employee: "Ana", Email: "ana@example.com", PasswordHash: string(hash)},
		{ID: uuid.NewString(), Employee: "Root", Email: "admin@example.com", PasswordHash: string(hash), IsAdmin: true},
	} {
		_, err := users.Create(context.Background(), u)
		require.NoError(t, err)
	}

	router := NewRouter(
		jwtSvc,
		NewAuthHandler(authSvc, jwtSvc),
		NewLateAttendanceHandler(lateSvc, jwtSvc, hub),
		"http://localhost:3000",
		"test",
	)

	return &testServer{router: router, jwtService: jwtSvc}
}

func (s *testServer) token(t *testing.T, employee string, isAdmin bool) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken(uuid.NewString(), employee+"@example.com", employee, isAdmin)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "body: %s", rec.Body.String())
	return envelope.Data
}

func TestLateAttendanceHandler_Submit(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Ana", false)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", token, map[string]string{
		"date":          "2026-08-26",
		"check_in_time": "09:30",
		"reason":        "traffic",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "Ana", data["employee"])
	assert.Equal(t, "09:30:00", data["check_in_time"])
	assert.Equal(t, "pending", data["status"])
	assert.NotEmpty(t, data["id"])
}

func TestLateAttendanceHandler_Submit_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", "", map[string]string{
		"check_in_time": "09:30:00",
		"reason":        "traffic",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLateAttendanceHandler_Submit_MissingReason(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Ana", false)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", token, map[string]string{
		"date":          "2026-08-26",
		"check_in_time": "09:30:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLateAttendanceHandler_Submit_InvalidTime(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Ana", false)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", token, map[string]string{
		"date":          "2026-08-26",
		"check_in_time": "25:99",
		"reason":        "traffic",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLateAttendanceHandler_CheckOut_NoOpenRecord(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Ana", false)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins/check-out", token, map[string]string{
		"date":           "2026-08-26",
		"check_out_time": "17:00:00",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLateAttendanceHandler_SubmitThenCheckOut(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Ana", false)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", token, map[string]string{
		"date":          "2026-08-26",
		"check_in_time": "09:00:00",
		"reason":        "traffic",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/late-check-ins/check-out", token, map[string]string{
		"date":           "2026-08-26",
		"check_out_time": "17:30:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.Equal(t, "17:30:00", data["check_out_time"])
	assert.Equal(t, "8h 30m", data["working_hours"])
}

func TestLateAttendanceHandler_AdminDecision(t *testing.T) {
	s := newTestServer(t)
	employeeToken := s.token(t, "Ana", false)
	adminToken := s.token(t, "Root", true)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", employeeToken, map[string]string{
		"date":          "2026-08-26",
		"check_in_time": "09:30:00",
		"reason":        "traffic",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	recordID := decodeData(t, rec)["id"].(string)

	// Non-admin cannot decide.
	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/late-check-ins/%s/approve", recordID), employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/late-check-ins/%s/approve", recordID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "approved", decodeData(t, rec)["status"])

	// A second decision on the same record conflicts.
	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/late-check-ins/%s/reject", recordID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLateAttendanceHandler_AdminDecision_UnknownRecord(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.token(t, "Root", true)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins/"+uuid.NewString()+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLateAttendanceHandler_ListFilters(t *testing.T) {
	s := newTestServer(t)
	anaToken := s.token(t, "Ana", false)
	benToken := s.token(t, "Ben", false)
	adminToken := s.token(t, "Root", true)

	for _, tc := range []struct {
		token string
		date  string
	}{
		{anaToken, "2026-08-25"},
		{anaToken, "2026-08-26"},
		{benToken, "2026-08-26"},
	} {
		rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", tc.token, map[string]string{
			"date":          tc.date,
			"check_in_time": "09:30:00",
			"reason":        "traffic",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Employees only see their own records.
	rec := s.do(t, http.MethodGet, "/api/v1/late-check-ins/my", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeData(t, rec)["total_count"])

	// Admin sees everything, optionally filtered.
	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decodeData(t, rec)["total_count"])

	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins?employee=Ben", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeData(t, rec)["total_count"])

	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decodeData(t, rec)["total_count"])

	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins?status=archived", adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The admin listing is forbidden for employees.
	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins", anaToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLateAttendanceHandler_Summary(t *testing.T) {
	s := newTestServer(t)
	anaToken := s.token(t, "Ana", false)
	adminToken := s.token(t, "Root", true)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins", anaToken, map[string]string{
		"date":          "2026-08-26",
		"check_in_time": "09:30:00",
		"reason":        "traffic",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	recordID := decodeData(t, rec)["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins/my/summary", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec)["approved_late_check_ins"])

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/late-check-ins/%s/approve", recordID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins/my/summary", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeData(t, rec)["approved_late_check_ins"])
}

func TestAuthHandler_LoginAndLogout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	token, ok := data["access_token"].(string)
	require.True(t, ok)
	assert.Equal(t, "Ana", data["employee"])

	// The issued token works until it is revoked.
	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins/my", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/late-check-ins/my", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLateAttendanceHandler_SSEToken(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Ana", false)

	rec := s.do(t, http.MethodPost, "/api/v1/late-check-ins/events/token", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, float64(300), data["expires_in"])
}

func TestLateAttendanceHandler_Stream_MissingToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/late-check-ins/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
