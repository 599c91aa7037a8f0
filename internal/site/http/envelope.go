package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

const msgMalformed = "Invalid data format"

// writeError maps a workflow error onto the error envelope. Only messages
// meant for users are written; everything else is logged and replaced with
// the generic persistence message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid  *service.ValidationError
		rejected *service.RejectedError
		conflict *service.ConflictError
	)

	switch {
	case errors.Is(err, httpx.ErrMalformedRequest):
		httpx.WriteError(w, http.StatusBadRequest, msgMalformed)
	case errors.As(err, &invalid):
		httpx.WriteError(w, http.StatusBadRequest, invalid.Message)
	case errors.As(err, &rejected):
		httpx.WriteError(w, rejectionStatus(rejected.Reason), rejected.Message())
	case errors.As(err, &conflict):
		httpx.WriteError(w, http.StatusConflict, conflict.Message())
	case errors.Is(err, service.ErrUnknownUser):
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, service.PersistenceMessage)
	}
}

func rejectionStatus(reason service.Reason) int {
	switch reason {
	case service.ReasonMissingCredentials, service.ReasonInvalidEmailFormat:
		return http.StatusBadRequest
	case service.ReasonAccountLocked:
		return http.StatusLocked
	default:
		return http.StatusUnauthorized
	}
}

func requestMeta(r *http.Request) domain.RequestMeta {
	return domain.RequestMeta{
		IP:        httpx.IPKeyExtractor(r),
		UserAgent: r.UserAgent(),
	}
}
