package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/redis/go-redis/v9"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/config"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/repository"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/service"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	redisClient *redis.Client
	clock       timeslot.Clock

	schedules *service.ScheduleService
	bookings  *service.BookingService
	swaps     *service.SwapService
	timeOff   *service.TimeOffService

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	clock timeslot.Clock,
	schedules *service.ScheduleService,
	bookings *service.BookingService,
	swaps *service.SwapService,
	timeOff *service.TimeOffService,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		redisClient: rdb,
		clock:       clock,

		schedules: schedules,
		bookings:  bookings,
		swaps:     swaps,
		timeOff:   timeOff,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// Everything below requires a logged-in user.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Get("/notifications", h.GetMyNotifications)
			r.Post("/notifications/{id}/read", h.MarkNotificationRead)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.GetAvailableSchedules)
			r.With(h.RequiredRole(managementRoles)).Post("/", h.CreateSchedule)
			r.With(h.RequiredRole(managementRoles)).Get("/all", h.GetAdminSchedules)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetScheduleDetails)
				r.With(h.RequiredRole(managementRoles)).Patch("/publish", h.PublishSchedule)
				r.With(h.RequiredRole(managementRoles)).Delete("/", h.DeleteSchedule)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/upcoming", h.GetUpcomingShifts)
			r.Post("/join", h.JoinShift)
			r.Get("/demands/{id}", h.GetDemand)
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Post("/", h.RequestSwap)
			r.Get("/", h.GetUserSwaps)
			r.Get("/available", h.GetAvailableSwaps)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSwapDetails)
				r.Patch("/", h.ResolveSwap)
			})
		})

		r.Route("/time-off", func(r chi.Router) {
			r.Post("/", h.RequestTimeOff)
			r.Get("/", h.GetMyTimeOff)
			r.Patch("/{id}", h.UpdateTimeOff)
			r.With(h.RequiredRole(managementRoles)).Get("/review", h.GetCompanyTimeOff)
			r.With(h.RequiredRole(managementRoles)).Patch("/{id}/review", h.ResolveTimeOff)
		})
	})
}

var managementRoles = []domain.UserType{domain.UserTypeAdmin, domain.UserTypeManager}
