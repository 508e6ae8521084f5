package controllers

import (
	"net/http"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/responses"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/validators"
	inventorysvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/inventory"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
)

func StockTakeCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body inventorysvc.CreateStockTakeInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.ActorID = actorIDFromRequest(r)

		take, err := svc.CreateStockTake(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, take)
	}
}

func StockTakeGet(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "stockTakeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		take, err := svc.GetStockTake(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, take)
	}
}

type recordCountsRequest struct {
	Counts []inventorysvc.LineCount `json:"counts" validate:"required,min=1,dive"`
}

func StockTakeRecordCounts(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "stockTakeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body recordCountsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		take, err := svc.RecordCounts(r.Context(), id, body.Counts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, take)
	}
}

func StockTakeReconcile(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "stockTakeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variances, err := svc.Reconcile(r.Context(), id, actorIDFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"variances": variances})
	}
}

func StockTakeCancel(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "stockTakeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.CancelStockTake(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
