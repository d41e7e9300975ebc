package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
	"github.com/riskibarqy/football-manager/internal/domain/squad"
	"github.com/riskibarqy/football-manager/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "football-manager"
	internalErrorMsg = "internal server error"
	unavailableMsg   = "service temporarily unavailable, retry later"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func (m mappedError) internal() bool {
	return m.HTTPStatus == http.StatusInternalServerError
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{formation.ErrInvalidFormation, mappedError{http.StatusBadRequest, "invalidFormation", "INVALID_ARGUMENT"}},
	{squad.ErrSquadNameExists, mappedError{http.StatusConflict, "squadNameExists", "ALREADY_EXISTS"}},
	{squad.ErrSquadNotFound, mappedError{http.StatusNotFound, "squadNotFound", "NOT_FOUND"}},
	{squad.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{squad.ErrPlayerNotInInventory, mappedError{http.StatusBadRequest, "playerNotInInventory", "FAILED_PRECONDITION"}},
	{squad.ErrPlayerNotFound, mappedError{http.StatusNotFound, "playerNotFound", "NOT_FOUND"}},
	{squad.ErrPositionMismatch, mappedError{http.StatusBadRequest, "positionMismatch", "INVALID_ARGUMENT"}},
	{squad.ErrDuplicateAssignment, mappedError{http.StatusConflict, "duplicateAssignment", "ABORTED"}},
	{squad.ErrSlotNotFound, mappedError{http.StatusBadRequest, "slotNotFound", "INVALID_ARGUMENT"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(payload); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError renders err in the error envelope. See clientMessage for what
// text the caller gets to see.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := clientMessage(err, mapped)

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalErrorMsg))
}

// clientMessage picks the text sent to the caller. Server-side failures get a
// fixed message. Conflicts come from storage constraints, so they are reported
// by kind only and the wrapped cause stays in the logs. Everything else is
// raised by validation code and keeps its detail.
func clientMessage(err error, mapped mappedError) string {
	switch {
	case mapped.internal():
		return internalErrorMsg
	case mapped.HTTPStatus >= http.StatusInternalServerError:
		return unavailableMsg
	case mapped.HTTPStatus == http.StatusConflict:
		for _, m := range errorMappings {
			if errors.Is(err, m.target) {
				return m.target.Error()
			}
		}
	}
	return err.Error()
}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return mappedError{
		HTTPStatus: http.StatusInternalServerError,
		Reason:     "internalError",
		Status:     "INTERNAL",
	}
}
