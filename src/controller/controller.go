package controller

import (
	"errors"
	"net/http"

	"communication-service/src/schemas"
	"communication-service/src/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the standard error body.
// Service methods return *schemas.APIError; anything else is an internal
// error that must not leak details to the client.
func respondError(ctx *gin.Context, err error) {
	var apiErr *schemas.APIError
	if errors.As(err, &apiErr) {
		utils.SendAPIError(ctx, apiErr)
		return
	}
	utils.SendError(ctx, http.StatusInternalServerError, "internal_error", "internal server error")
}
