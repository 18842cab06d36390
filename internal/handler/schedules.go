package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/service"
)

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req service.CreateScheduleInput
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	view, err := h.schedules.CreateSchedule(userID, companyID, &req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedule created", view)
}

func (h *Handler) GetAvailableSchedules(w http.ResponseWriter, r *http.Request) {
	userID, _, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.schedules.GetAvailableSchedules(userID, page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedules fetched", result)
}

func (h *Handler) GetAdminSchedules(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	page, limit := pageParams(r)

	result, err := h.schedules.GetAdminSchedules(companyID, page, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedules fetched", result)
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	scheduleID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid schedule ID")
		return
	}

	var req struct {
		IsPublished *bool `json:"isPublished" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	view, err := h.schedules.PublishSchedule(companyID, scheduleID, *req.IsPublished)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedule updated", view)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	scheduleID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid schedule ID")
		return
	}

	if err := h.schedules.DeleteSchedule(companyID, scheduleID); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedule deleted", nil)
}

func (h *Handler) GetScheduleDetails(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := h.callerIdentity(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	scheduleID, err := idParam(r)
	if err != nil {
		h.errorResponse(w, r, "Invalid schedule ID")
		return
	}
	week := queryInt(r, "week", 0)
	year := queryInt(r, "year", 0)

	// The per-week occupancy view is the hottest read, so it is served from
	// redis when a fresh copy exists.
	if week > 0 && year > 0 {
		if cached := h.cachedScheduleDetails(r.Context(), scheduleID, week, year); cached != nil {
			h.successResponse(w, r, "Schedule details fetched", cached)
			return
		}
	}

	details, err := h.schedules.GetScheduleDetails(companyID, scheduleID, week, year)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.cacheScheduleDetails(r.Context(), details)

	h.successResponse(w, r, "Schedule details fetched", details)
}

func scheduleDetailsKey(scheduleID int64, week, year int) string {
	return fmt.Sprintf("schedule_details_%d_%d_%d", scheduleID, week, year)
}

func (h *Handler) cachedScheduleDetails(ctx context.Context, scheduleID int64, week, year int) *service.ScheduleDetailsView {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	payload, err := h.redisClient.Get(ctx, scheduleDetailsKey(scheduleID, week, year)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("schedule cache read failed", "error", err)
		}
		return nil
	}

	details := &service.ScheduleDetailsView{}
	if err := json.Unmarshal([]byte(payload), details); err != nil {
		return nil
	}
	return details
}

func (h *Handler) cacheScheduleDetails(ctx context.Context, details *service.ScheduleDetailsView) {
	payload, err := json.Marshal(details)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	key := scheduleDetailsKey(details.ID, details.Week, details.Year)
	if err := h.redisClient.Set(ctx, key, payload, time.Duration(h.config.Redis.ScheduleTTL)*time.Second).Err(); err != nil {
		slog.Warn("schedule cache write failed", "error", err)
	}
}

// invalidateScheduleDetails drops the cached occupancy view after a booking
// change. Best effort, the TTL bounds staleness either way.
func (h *Handler) invalidateScheduleDetails(ctx context.Context, scheduleID int64, week, year int) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, scheduleDetailsKey(scheduleID, week, year)).Err(); err != nil {
		slog.Warn("schedule cache invalidation failed", "error", err)
	}
}
