package controllers

import (
	"net/http"
	"strings"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/responses"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/validators"
	bomsvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/bom"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/money"
)

func BOMCreate(svc bomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bomsvc.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bom, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bom)
	}
}

func BOMGet(svc bomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "bomID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bom, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bom)
	}
}

// BOMActiveForProduct returns the currently active BOM version for a product.
func BOMActiveForProduct(svc bomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bom, err := svc.GetActiveForProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bom)
	}
}

func BOMDeactivate(svc bomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "bomID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

func BOMCostRollup(svc bomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "bomID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rollup, err := svc.CostRollup(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rollup)
	}
}

// BOMExplode lists the component requirements for a build quantity.
func BOMExplode(svc bomsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := r.URL.Query().Get("build_qty")
		if strings.TrimSpace(raw) == "" {
			raw = "1"
		}
		buildQty, err := money.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "build_qty must be a number"))
			return
		}

		requirements, err := svc.Explode(r.Context(), productID, buildQty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"requirements": requirements})
	}
}
