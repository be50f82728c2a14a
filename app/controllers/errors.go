package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/location-cleaner/app/responses"
	"github.com/location-cleaner/app/services"
	"github.com/location-cleaner/internal/dates"
	"github.com/location-cleaner/internal/location"
	"github.com/location-cleaner/internal/province"
)

// errorStatus map lỗi domain sang HTTP status và mã lỗi
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, province.ErrInvalidType):
		return http.StatusBadRequest, "INVALID_TYPE"
	case errors.Is(err, province.ErrEmptyInput):
		return http.StatusBadRequest, "EMPTY_INPUT"
	case errors.Is(err, province.ErrNoMatch):
		return http.StatusUnprocessableEntity, "NO_MATCH"
	case errors.Is(err, location.ErrMissingMunicipality):
		return http.StatusUnprocessableEntity, "MISSING_MUNICIPALITY"
	case errors.Is(err, dates.ErrInvalidDate):
		return http.StatusUnprocessableEntity, "INVALID_DATE"
	case errors.Is(err, services.ErrTooManyLocations):
		return http.StatusBadRequest, "TOO_MANY_LOCATIONS"
	case errors.Is(err, services.ErrJobNotFound):
		return http.StatusNotFound, "JOB_NOT_FOUND"
	case errors.Is(err, services.ErrJobNotReady):
		return http.StatusConflict, "JOB_NOT_READY"
	case errors.Is(err, services.ErrEntryNotFound):
		return http.StatusNotFound, "ENTRY_NOT_FOUND"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeError(c *gin.Context, err error, details interface{}) {
	status, code := errorStatus(err)
	c.JSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   err.Error(),
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString("request_id"),
	})
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, responses.ErrorResponse{
		Error:     "INVALID_REQUEST",
		Message:   "Request không hợp lệ: " + err.Error(),
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString("request_id"),
	})
}
