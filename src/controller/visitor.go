package controller

import (
	"net/http"

	"communication-service/src/models"
	"communication-service/src/schemas"
	"communication-service/src/service"

	"github.com/gin-gonic/gin"
)

// VisitorController accepts advisory browsing telemetry.
type VisitorController struct {
	Service *service.VisitorService
}

// NewVisitorController creates a new visitor controller.
func NewVisitorController(svc *service.VisitorService) *VisitorController {
	return &VisitorController{
		Service: svc,
	}
}

// @Summary Track a visitor page view
// @Tags visitors
// @Accept json
// @Produce json
// @Param TrackVisitorRequest body schemas.TrackVisitorRequest true "Track Visitor Request"
// @Success 200 {object} schemas.VisitorResponse
// @Failure 400 {object} schemas.APIError
// @Router /visitors/track [post]
func (vc *VisitorController) Track(ctx *gin.Context) {
	var req schemas.TrackVisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error()))
		return
	}

	// Telemetry is advisory: the write may fail internally and the client
	// is still acknowledged.
	vc.Service.Track(ctx.Request.Context(), &models.VisitorSession{
		VisitorID: req.VisitorID,
		PagePath:  req.PagePath,
		Referrer:  req.Referrer,
		UserAgent: req.UserAgent,
	})

	ctx.JSON(http.StatusOK, schemas.VisitorResponse{
		Success:   true,
		VisitorID: req.VisitorID,
	})
}

// @Summary End a visitor session
// @Tags visitors
// @Accept json
// @Produce json
// @Param EndVisitorRequest body schemas.EndVisitorRequest true "End Visitor Request"
// @Success 200 {object} schemas.VisitorResponse
// @Failure 400 {object} schemas.APIError
// @Router /visitors/end [post]
func (vc *VisitorController) End(ctx *gin.Context) {
	var req schemas.EndVisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error()))
		return
	}

	vc.Service.End(ctx.Request.Context(), req.VisitorID, req.DurationSec)

	ctx.JSON(http.StatusOK, schemas.VisitorResponse{
		Success:   true,
		VisitorID: req.VisitorID,
	})
}
