package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/bjarke-xyz/applications-api/internal/domain"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

const maxBodyBytes = 1 << 20

func (s *server) handleGetApplications(w http.ResponseWriter, r *http.Request) {
	query, err := parseApplicationQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	apps, err := s.newService(r).GetMulti(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, apps)
}

func (s *server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		verr := &domain.ValidationError{}
		verr.Add("id", "must be a valid UUID")
		s.writeError(w, r, verr)
		return
	}
	app, err := s.newService(r).GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, app)
}

func (s *server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	input, err := decodeApplicationCreate(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	app, err := s.newService(r).CreateApplication(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.feed.Notify(app)
	jsonResponse(w, http.StatusCreated, app)
}

// parseApplicationQuery reads user_name, size and page. Any integer size is
// clamped to a page size tier, page must be a positive integer.
func parseApplicationQuery(r *http.Request) (domain.ApplicationQuery, error) {
	values := r.URL.Query()
	verr := &domain.ValidationError{}

	var size, page *int
	if raw := values.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			verr.Add("size", "must be an integer")
		default:
			size = &n
		}
	}
	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			verr.Add("page", "must be an integer")
		case n < 1:
			verr.Add("page", "must be greater than 0")
		default:
			page = &n
		}
	}
	if err := verr.OrNil(); err != nil {
		return domain.ApplicationQuery{}, err
	}
	return domain.NewApplicationQuery(values.Get("user_name"), size, page), nil
}

// applicationCreateRequest separates absent fields from empty ones: required
// only rejects a missing key, "" is a valid value.
type applicationCreateRequest struct {
	ID          *uuid.UUID `json:"id"`
	UserName    *string    `json:"user_name" validate:"required,max=64"`
	Description *string    `json:"description" validate:"required"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (req applicationCreateRequest) toDomain() domain.ApplicationCreate {
	return domain.ApplicationCreate{
		ID:          req.ID,
		UserName:    lo.FromPtr(req.UserName),
		Description: lo.FromPtr(req.Description),
		CreatedAt:   req.CreatedAt,
	}
}

func decodeApplicationCreate(w http.ResponseWriter, r *http.Request) (domain.ApplicationCreate, error) {
	var req applicationCreateRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		verr := &domain.ValidationError{}
		if errors.Is(err, io.EOF) {
			verr.Add("body", "request body is required")
		} else {
			verr.Add("body", "invalid JSON: "+err.Error())
		}
		return domain.ApplicationCreate{}, verr
	}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return domain.ApplicationCreate{}, err
		}
		verr := &domain.ValidationError{}
		for _, fe := range fieldErrs {
			verr.Add(jsonFieldName(fe.Field()), fieldMessage(fe))
		}
		return domain.ApplicationCreate{}, verr
	}
	return req.toDomain(), nil
}

func jsonFieldName(field string) string {
	switch field {
	case "UserName":
		return "user_name"
	case "Description":
		return "description"
	case "CreatedAt":
		return "created_at"
	case "ID":
		return "id"
	}
	return field
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "max":
		return fmt.Sprintf("must be at most %d characters", domain.MaxUserNameLength)
	}
	return "failed on " + fe.Tag()
}

func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
