package handler

import (
	"net/http"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func (h *Handler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	page, limit := pageParams(r)

	notifications, err := h.repository.GetUserNotifications(myInfo.ID, limit, (page-1)*limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Notifications fetched", notifications)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	notificationID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid notification ID")
		return
	}

	if err := h.repository.MarkNotificationRead(notificationID, myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Notification marked as read", nil)
}
