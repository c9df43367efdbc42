// Package controller holds the helpers shared by the user and admin HTTP controllers.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/talentgate/internal/apperror"
	"github.com/lshigami/talentgate/internal/dto"
	"github.com/rs/zerolog/log"
)

// CandidateHeader carries the authenticated candidate's id, set by the upstream auth gateway.
const CandidateHeader = "X-Candidate-ID"

// CandidateID reads the caller's id from CandidateHeader. On failure it writes a
// 400 response and returns false.
func CandidateID(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.GetHeader(CandidateHeader)
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: apperror.CodeValidation, Message: "Missing " + CandidateHeader + " header"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: apperror.CodeValidation, Message: "Invalid " + CandidateHeader + " header", Details: []string{err.Error()}})
		return uuid.Nil, false
	}
	return id, true
}

// UUIDParam parses a path parameter as a UUID. On failure it writes a 400 response and returns false.
func UUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: apperror.CodeValidation, Message: "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// BindError responds to a request body that failed binding or validation.
func BindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: apperror.CodeValidation, Message: "Invalid request body", Details: []string{err.Error()}})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case apperror.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case apperror.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse. Internal errors hide their cause.
func RespondError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)
	resp := dto.ErrorResponse{Code: apperror.CodeOf(err), Message: err.Error()}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
		resp.Message = "Internal server error"
	} else {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Int("status", status).Msg("Request rejected")
	}
	ctx.JSON(status, resp)
}
