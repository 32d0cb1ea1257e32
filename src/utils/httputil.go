package utils

import (
	"log/slog"

	"communication-service/src/schemas"

	"github.com/gin-gonic/gin"
)

// SendError writes the standard error body and logs it.
func SendError(ctx *gin.Context, status int, code string, detail string) {
	ctx.JSON(status, schemas.NewAPIError(status, code, detail))
	slog.Error("Request failed",
		"path", ctx.FullPath(),
		"status", status,
		"error", detail)
}

// SendAPIError writes a typed service error as the response.
func SendAPIError(ctx *gin.Context, err *schemas.APIError) {
	ctx.JSON(err.Status, err)
	slog.Error("Request failed",
		"path", ctx.FullPath(),
		"status", err.Status,
		"error", err.Message)
}
