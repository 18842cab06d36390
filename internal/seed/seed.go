// Package seed fills a development database with plausible demo tenants:
// companies with an admin, a handful of employees, published schedules and a
// few bookings and time-off requests to click around in.
package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/config"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/repository"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/utils"
)

func SeedDemoData(cfg *config.Config, repo *repository.Repository) {
	for companyID := int64(1); companyID <= int64(cfg.Seed.Companies); companyID++ {
		admin, err := utils.GenerateRandomUser(companyID, cfg.Seed.UserPassword, domain.UserTypeAdmin)
		if err != nil {
			slog.Error("failed to generate admin", "company", companyID, "error", err)
			continue
		}
		if err := repo.CreateUser(admin); err != nil {
			slog.Error("failed to insert admin", "company", companyID, "error", err)
			continue
		}

		employees := make([]*domain.User, 0, cfg.Seed.UsersPerCo)
		for i := 0; i < cfg.Seed.UsersPerCo; i++ {
			employee, err := utils.GenerateRandomUser(companyID, cfg.Seed.UserPassword, domain.UserTypeEmployee)
			if err != nil {
				slog.Error("failed to generate employee", "company", companyID, "error", err)
				continue
			}
			if err := repo.CreateUser(employee); err != nil {
				slog.Error("failed to insert employee", "company", companyID, "error", err)
				continue
			}
			employees = append(employees, employee)
		}

		published := utils.GenerateRandomSchedulePeriod(companyID, admin.ID)
		draft := utils.GenerateRandomSchedulePeriod(companyID, admin.ID)
		if err := repo.CreateSchedulePeriod(published); err != nil {
			slog.Error("failed to insert schedule", "company", companyID, "error", err)
			continue
		}
		if err := repo.CreateSchedulePeriod(draft); err != nil {
			slog.Error("failed to insert schedule", "company", companyID, "error", err)
		}
		if err := repo.SetSchedulePublished(published.ID, true); err != nil {
			slog.Error("failed to publish schedule", "company", companyID, "error", err)
			continue
		}

		seedBookings(repo, published, employees)
		seedTimeOff(repo, companyID, employees)

		slog.Info("seeded company", "company", companyID, "admin", admin.Email, "employees", len(employees))
	}
}

func seedBookings(repo *repository.Repository, period *domain.SchedulePeriod, employees []*domain.User) {
	nowYear, nowWeek := time.Now().UTC().ISOWeek()

	for _, employee := range employees {
		// Each employee grabs up to two cells somewhere in the next month.
		for i := 0; i < rand.Intn(3); i++ {
			demand := period.Demands[rand.Intn(len(period.Demands))]
			week := nowWeek + rand.Intn(4) + 1
			year := nowYear
			if week > 52 {
				week -= 52
				year++
			}

			booking := &domain.ShiftBooking{
				UserID:           employee.ID,
				CompanyID:        period.CompanyID,
				SchedulePeriodID: period.ID,
				DemandID:         demand.ID,
				Week:             week,
				Year:             year,
			}
			if err := repo.CreateBookingGuarded(booking, demand.WorkerQuantity); err != nil {
				// Full or duplicate cells are expected with random picks.
				continue
			}
		}
	}
}

func seedTimeOff(repo *repository.Repository, companyID int64, employees []*domain.User) {
	types := []string{"Vacation", "Sick leave", "Personal"}

	for _, employee := range employees {
		if rand.Intn(3) != 0 {
			continue
		}

		start := time.Now().UTC().AddDate(0, 0, rand.Intn(30)+7)
		end := start.AddDate(0, 0, rand.Intn(5)+1)

		request := &domain.TimeOff{
			UserID:    employee.ID,
			CompanyID: companyID,
			Type:      types[rand.Intn(len(types))],
			Reason:    "Seeded demo request",
			TimeFrame: timeslot.TimeFrame(start, end),
			StartDate: start,
			EndDate:   end,
		}
		if err := repo.CreateTimeOff(request); err != nil {
			slog.Error("failed to insert time off request", "company", companyID, "error", err)
		}
	}
}
