package controller

import (
	"log/slog"
	"net/http"
	"time"

	"communication-service/src/middleware"
	"communication-service/src/models"
	"communication-service/src/schemas"
	"communication-service/src/service"

	"github.com/gin-gonic/gin"
)

// SessionController exposes the session lifecycle over HTTP.
type SessionController struct {
	Service *service.SessionService
}

// NewSessionController creates a new session controller.
func NewSessionController(svc *service.SessionService) *SessionController {
	return &SessionController{
		Service: svc,
	}
}

// @Summary Create a communication session
// @Description Provisions a call room for a case and persists the session as pending
// @Tags sessions
// @Accept json
// @Produce json
// @Param CreateSessionRequest body schemas.CreateSessionRequest true "Create Session Request"
// @Success 201 {object} schemas.CreateSessionResponse
// @Failure 400 {object} schemas.APIError
// @Failure 403 {object} schemas.APIError
// @Failure 404 {object} schemas.APIError
// @Failure 502 {object} schemas.APIError
// @Router /sessions [post]
func (sc *SessionController) CreateSession(ctx *gin.Context) {
	var req schemas.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error()))
		return
	}

	requester := middleware.RequesterID(ctx)
	session, err := sc.Service.CreateSession(ctx.Request.Context(), req.CaseID, models.SessionKind(req.Kind), requester)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, schemas.CreateSessionResponse{
		Success:   true,
		SessionID: session.SessionID,
		RoomURL:   session.RoomURL,
		Status:    string(session.Status),
	})
}

// @Summary Read session status
// @Description Returns the current status; pollers use this to detect termination. A missing session is reported as exists=false, not as an error.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} schemas.SessionStatusResponse
// @Failure 500 {object} schemas.APIError
// @Router /sessions/{id}/status [get]
func (sc *SessionController) GetSessionStatus(ctx *gin.Context) {
	status, endedAt, exists, err := sc.Service.ValidateSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := schemas.SessionStatusResponse{
		Success: true,
		Exists:  exists,
		Status:  string(status),
	}
	if endedAt != nil {
		resp.EndedAt = endedAt.UTC().Format(time.RFC3339)
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Activate a session
// @Description Marks a join as observed, moving the session from pending/scheduled to active
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} schemas.EndSessionResponse
// @Failure 404 {object} schemas.APIError
// @Failure 409 {object} schemas.APIError
// @Router /sessions/{id}/activate [post]
func (sc *SessionController) ActivateSession(ctx *gin.Context) {
	sessionID := ctx.Param("id")
	if err := sc.Service.ActivateSession(ctx.Request.Context(), sessionID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, schemas.EndSessionResponse{
		Success:   true,
		SessionID: sessionID,
		Status:    string(models.StatusActive),
	})
}

// @Summary End a session
// @Description Terminates a session; idempotent, ending an already terminal session succeeds unchanged
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} schemas.EndSessionResponse
// @Failure 404 {object} schemas.APIError
// @Failure 500 {object} schemas.APIError
// @Router /sessions/{id}/end [post]
func (sc *SessionController) EndSession(ctx *gin.Context) {
	session, err := sc.Service.EndSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := schemas.EndSessionResponse{
		Success:   true,
		SessionID: session.SessionID,
		Status:    string(session.Status),
	}
	if session.EndedAt != nil {
		resp.EndedAt = session.EndedAt.UTC().Format(time.RFC3339)
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Emergency session cleanup
// @Description Best-effort termination delivered by the browser beacon as the page unloads. Ends the session only if it is currently active.
// @Tags sessions
// @Accept json
// @Produce json
// @Param EmergencyCleanupRequest body schemas.EmergencyCleanupRequest true "Beacon payload"
// @Success 200 {object} schemas.EmergencyCleanupResponse
// @Failure 400 {object} schemas.APIError
// @Failure 500 {object} schemas.APIError
// @Router /session-cleanup [post]
func (sc *SessionController) EmergencyCleanup(ctx *gin.Context) {
	var req schemas.EmergencyCleanupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error()))
		return
	}

	applied, err := sc.Service.EmergencyCleanup(ctx.Request.Context(), req.SessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if req.EndTime != "" {
		slog.Debug("Beacon reported client-side end time",
			"session_id", req.SessionID,
			"end_time", req.EndTime)
	}

	ctx.JSON(http.StatusOK, schemas.EmergencyCleanupResponse{
		Success: true,
		Applied: applied,
	})
}

// @Summary Reclaim stale sessions
// @Description Runs one reclamation sweep; also purges expired recording metadata. Triggered by external schedulers (GET) or operators (POST).
// @Tags sessions
// @Produce json
// @Success 200 {object} schemas.ReclaimResponse
// @Failure 500 {object} schemas.APIError
// @Router /session-reclaim [get]
func (sc *SessionController) ReclaimStaleSessions(ctx *gin.Context) {
	reclaimed, purged, err := sc.Service.ReclaimStaleSessions(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, schemas.ReclaimResponse{
		Success:           true,
		SessionsReclaimed: reclaimed,
		RecordingsPurged:  purged,
	})
}

// @Summary List a case's sessions
// @Description Returns the call history of a case, newest first
// @Tags sessions
// @Produce json
// @Param caseId path string true "Case ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} schemas.APIError
// @Failure 404 {object} schemas.APIError
// @Router /cases/{caseId}/sessions [get]
func (sc *SessionController) ListCaseSessions(ctx *gin.Context) {
	requester := middleware.RequesterID(ctx)
	sessions, err := sc.Service.ListCaseSessions(ctx.Request.Context(), ctx.Param("caseId"), requester)
	if err != nil {
		respondError(ctx, err)
		return
	}

	views := make([]schemas.SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, schemas.NewSessionView(s))
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sessions": views,
	})
}
