package handler

import (
	"net/http"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/service"
)

func (h *Handler) RequestTimeOff(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req service.TimeOffInput
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.timeOff.RequestTimeOff(userID, companyID, &req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Time off requested", result)
}

func (h *Handler) GetMyTimeOff(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.timeOff.GetUserRequests(userID, companyID, page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Time off requests fetched", result)
}

func (h *Handler) UpdateTimeOff(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	requestID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid request ID")
		return
	}

	var req service.EditTimeOffInput
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.timeOff.UpdateUserRequest(userID, companyID, requestID, &req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Time off request updated", result)
}

func (h *Handler) GetCompanyTimeOff(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.timeOff.ViewCompanyRequests(userID, companyID, r.URL.Query().Get("status"), page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Time off requests fetched", result)
}

func (h *Handler) ResolveTimeOff(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	requestID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid request ID")
		return
	}

	var req struct {
		Approved *bool `json:"approved" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.timeOff.AcceptOrRejectRequest(userID, companyID, requestID, *req.Approved)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Time off request resolved", result)
}
