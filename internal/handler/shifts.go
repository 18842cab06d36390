package handler

import (
	"net/http"
)

func (h *Handler) JoinShift(w http.ResponseWriter, r *http.Request) {
	userID, _, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		PeriodDemandID int64 `json:"periodDemandID" validate:"required"`
		Week           int   `json:"week" validate:"min=0,max=53"`
		Year           int   `json:"year" validate:"min=0"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.bookings.JoinShift(userID, req.PeriodDemandID, req.Week, req.Year)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	// A request without week/year books the current ISO week, so the cached
	// view for that resolved week is the one to drop.
	if demand, derr := h.repository.GetDemandByID(req.PeriodDemandID); derr == nil {
		week, year := h.resolveWeekYear(req.Week, req.Year)
		h.invalidateScheduleDetails(r.Context(), demand.SchedulePeriodID, week, year)
	}

	h.successResponse(w, r, "Shift booked", result)
}

// resolveWeekYear fills unset week/year with the current ISO week, the same
// defaulting the booking engine applies.
func (h *Handler) resolveWeekYear(week, year int) (int, int) {
	nowYear, nowWeek := h.clock.Now().ISOWeek()
	if week < 1 {
		week = nowWeek
	}
	if year < 1 {
		year = nowYear
	}
	return week, year
}

func (h *Handler) GetUpcomingShifts(w http.ResponseWriter, r *http.Request) {
	userID, _, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.bookings.GetUpcomingShifts(userID, page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Upcoming shifts fetched", result)
}

func (h *Handler) GetDemand(w http.ResponseWriter, r *http.Request) {
	userID, _, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	demandID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid demand ID")
		return
	}

	view, err := h.bookings.GetDemandForWeek(userID, demandID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Shift details fetched", view)
}
