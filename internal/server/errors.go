package server

import (
	"errors"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"

	"github.com/bjarke-xyz/applications-api/internal/domain"
)

type errorResponse struct {
	Message string              `json:"message"`
	Error   string              `json:"error,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// writeError is the only place errors are turned into status codes.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapError(err)
	logger := s.logger.With("method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed")
	case status == http.StatusNotFound:
		logger.Debug("request failed")
	default:
		logger.Warn("request failed")
	}
	jsonResponse(w, status, body)
}

func mapError(err error) (int, errorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorResponse{Message: "Validation Error", Errors: verr.Fields}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Message: "Not Found"}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Message: "Conflict"}
	case errors.Is(err, domain.ErrBrokerUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Message: "Unable to connect to the message broker", Error: err.Error()}
	case isStorageUnavailable(err):
		return http.StatusServiceUnavailable, errorResponse{Message: "Unable to connect to the database"}
	}
	return http.StatusInternalServerError, errorResponse{Message: "Internal Server Error"}
}

func isStorageUnavailable(err error) bool {
	if errors.Is(err, domain.ErrStorageUnavailable) || errors.Is(err, puddle.ErrClosedPool) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
