package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"go.uber.org/zap"
)

type errorBody struct {
	Code           string            `json:"code"`
	Message        string            `json:"message"`
	Fields         map[string]string `json:"fields,omitempty"`
	UpstreamStatus int               `json:"upstream_status,omitempty"`
	UpstreamBody   string            `json:"upstream_body,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

const internalMessage = "internal server error"

// errorResponse maps an error to its status and the body safe to show a client.
func errorResponse(err error) (int, errorBody) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, errorBody{Code: "INTERNAL_SERVER_ERROR", Message: internalMessage}
	}
	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest, errorBody{Code: "BAD_REQUEST", Message: de.Message, Fields: de.Fields}
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: de.Message}
	case domain.KindNotFound:
		return http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: de.Message}
	case domain.KindUpstream:
		return http.StatusBadGateway, errorBody{
			Code:           "UPSTREAM_ERROR",
			Message:        de.Message,
			UpstreamStatus: de.UpstreamStatus,
			UpstreamBody:   de.UpstreamBody,
		}
	case domain.KindIntegrity:
		return http.StatusBadGateway, errorBody{Code: "INTEGRITY_ERROR", Message: de.Message}
	case domain.KindRateLimited:
		return http.StatusTooManyRequests, errorBody{Code: "TOO_MANY_REQUESTS", Message: de.Message}
	default:
		return http.StatusInternalServerError, errorBody{Code: "INTERNAL_SERVER_ERROR", Message: internalMessage}
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	route := routeOf(r)
	if h.metrics != nil {
		h.metrics.APIErrors.WithLabelValues(route, string(domain.KindOf(err))).Inc()
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("route", route), zap.Error(err))
	}
	h.writeJSON(w, status, errorEnvelope{Error: body})
}
