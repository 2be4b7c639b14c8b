package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/fspro/attendance-backend-go/internal/domain/lateattendance"
	"github.com/fspro/attendance-backend-go/internal/handler/http/response"
	"github.com/fspro/attendance-backend-go/internal/pkg/jwt"
	"github.com/fspro/attendance-backend-go/internal/pkg/sse"
)

type LateAttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Eligibility(w http.ResponseWriter, r *http.Request)

	// Admin
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type lateAttendanceHandlerImpl struct {
	lateAttendanceService lateattendance.LateAttendanceService
	jwtService            jwt.Service
	hub                   *sse.Hub
}

func NewLateAttendanceHandler(
	lateAttendanceService lateattendance.LateAttendanceService,
	jwtService jwt.Service,
	hub *sse.Hub,
) LateAttendanceHandler {
	return &lateAttendanceHandlerImpl{
		lateAttendanceService: lateAttendanceService,
		jwtService:            jwtService,
		hub:                   hub,
	}
}

// getEmployeeFromContext extracts the employee claim from the JWT context.
func getEmployeeFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employee, ok := claims["employee"].(string); ok {
		return employee
	}
	return ""
}

func isAdminFromContext(r *http.Request) bool {
	_, claims, _ := jwtauth.FromContext(r.Context())
	admin, _ := claims["is_admin"].(bool)
	return admin
}

// Submit implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employee := getEmployeeFromContext(r)
	if employee == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lateattendance.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Employee = employee

	result, err := h.lateAttendanceService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Late check-in submitted", result)
}

// CheckOut implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employee := getEmployeeFromContext(r)
	if employee == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req lateattendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Employee = employee

	result, err := h.lateAttendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out recorded", result)
}

// ListMine implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employee := getEmployeeFromContext(r)
	if employee == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.lateAttendanceService.ListMine(r.Context(), employee)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employee := getEmployeeFromContext(r)
	if employee == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.lateAttendanceService.CountApproved(r.Context(), employee)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Eligibility implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) Eligibility(w http.ResponseWriter, r *http.Request) {
	employee := getEmployeeFromContext(r)
	if employee == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.lateAttendanceService.Eligibility(r.Context(), lateattendance.EligibilityRequest{
		Employee: employee,
		Date:     r.URL.Query().Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter lateattendance.ListFilter
	if employee := r.URL.Query().Get("employee"); employee != "" {
		filter.Employee = &employee
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	result, err := h.lateAttendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.lateAttendanceService.Approve(r.Context(), lateattendance.DecisionRequest{
		ID: chi.URLParam(r, "id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late check-in approved", result)
}

// Reject implements LateAttendanceHandler.
func (h *lateAttendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	result, err := h.lateAttendanceService.Reject(r.Context(), lateattendance.DecisionRequest{
		ID: chi.URLParam(r, "id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late check-in rejected", result)
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *lateAttendanceHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	employee := getEmployeeFromContext(r)
	if employee == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(employee, isAdminFromContext(r))
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the SSE connection for real-time record updates
func (h *lateAttendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (EventSource doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employee, isAdmin, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	stream := employee
	if isAdmin {
		stream = sse.AdminStream
	}
	events, cleanup := h.hub.Subscribe(stream)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"stream\":%q}\n\n", stream)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
