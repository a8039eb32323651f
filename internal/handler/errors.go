package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
	"go.uber.org/zap"
)

var kindStatus = map[service.Kind]int{
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindBadRequest:   http.StatusBadRequest,
}

// writeError renders err. Service errors map to their status; anything else is a 500.
func writeError(c *gin.Context, err error) {
	svcErr, ok := service.AsError(err)
	if !ok {
		zap.L().Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "internal server error",
		})
		return
	}

	status, ok := kindStatus[svcErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	details := gin.H{"code": svcErr.Key}
	if svcErr.LockedUntil != nil {
		details["lockedUntil"] = svcErr.LockedUntil.UTC().Format(time.RFC3339)
		retry := int(time.Until(*svcErr.LockedUntil).Seconds())
		if retry < 1 {
			retry = 1
		}
		c.Header("Retry-After", strconv.Itoa(retry))
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: svcErr.Message,
		Details: details,
	})
}

// writeValidationError renders a binding failure as 400 with per-field details
func writeValidationError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
			Details: fields,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
