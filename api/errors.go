package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/beepath/animate"
	"github.com/katalvlaran/beepath/service"
	"github.com/katalvlaran/beepath/store"
)

// statusOf maps service errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, animate.ErrSearchInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error": ...} and records it on the context.
func fail(ctx *gin.Context, err error) {
	status := statusOf(err)
	_ = ctx.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
}
