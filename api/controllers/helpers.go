package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/middleware"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/validators"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
)

// actorIDFromRequest resolves the authenticated user for audit fields. Returns
// nil when the route is reachable without authentication.
func actorIDFromRequest(r *http.Request) *uuid.UUID {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return validators.ParsePathUUID(chi.URLParam(r, name), name)
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}, nil
}
