package handler

import (
	"net/http"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func (h *Handler) RequestSwap(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		OwnShiftID    int64 `json:"ownShiftID" validate:"required"`
		TargetShiftID int64 `json:"targetShiftID" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	swap, err := h.swaps.RequestSwap(userID, companyID, req.OwnShiftID, req.TargetShiftID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Swap requested", swap)
}

func (h *Handler) ResolveSwap(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	swapID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid swap ID")
		return
	}

	var req struct {
		Accepted *bool `json:"accepted" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	view, err := h.swaps.AcceptOrRejectSwap(userID, companyID, swapID, *req.Accepted)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	// An approved exchange changes occupancy on both affected weeks.
	if view.Status == domain.SwapApproved {
		h.invalidateScheduleDetails(r.Context(), view.OfferedShift.PeriodID, view.OfferedShift.Week, view.OfferedShift.Year)
		h.invalidateScheduleDetails(r.Context(), view.RequestedShift.PeriodID, view.RequestedShift.Week, view.RequestedShift.Year)
	}

	h.successResponse(w, r, "Swap resolved", view)
}

func (h *Handler) GetSwapDetails(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	swapID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid swap ID")
		return
	}

	view, err := h.swaps.ViewSwapDetails(userID, companyID, swapID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Swap details fetched", view)
}

func (h *Handler) GetAvailableSwaps(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.swaps.GetAvailableSwaps(userID, companyID, page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Available swaps fetched", result)
}

func (h *Handler) GetUserSwaps(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.swaps.GetUserSwaps(userID, companyID, r.URL.Query().Get("status"), page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Swaps fetched", result)
}
