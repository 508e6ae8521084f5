package controllers

import (
	"net/http"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/responses"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/validators"
	deliverysvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/delivery"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
)

func DeliveryCreate(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body deliverysvc.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.ActorID = actorIDFromRequest(r)

		delivery, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, delivery)
	}
}

func DeliveryGet(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "deliveryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

func DeliveryListBySalesOrder(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deliveries, err := svc.ListBySalesOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deliveries)
	}
}

func DeliveryShip(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "deliveryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.Ship(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

func DeliveryMarkDelivered(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "deliveryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.MarkDelivered(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}

func DeliveryCancel(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "deliveryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := svc.Cancel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, delivery)
	}
}
