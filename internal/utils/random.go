package utils

import (
	"fmt"
	"math/rand"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/timeslot"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

func GenerateRandomName() (string, string) {
	return firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

func GenerateRandomUser(companyID int64, password string, userType domain.UserType) (*domain.User, error) {
	firstName, lastName := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = digits[rand.Intn(len(digits))]
	}

	return &domain.User{
		CompanyID:    companyID,
		Email:        fmt.Sprintf("%s.%s%s@example.com", firstName, lastName, suffix),
		PasswordHash: string(passwordHash),
		FirstName:    firstName,
		LastName:     lastName,
		UserType:     userType,
	}, nil
}

var weekdays = []domain.Weekday{
	domain.Sunday, domain.Monday, domain.Tuesday, domain.Wednesday,
	domain.Thursday, domain.Friday, domain.Saturday,
}

// GenerateRandomDemand builds one demand cell with a plausible daytime slot.
func GenerateRandomDemand(day domain.Weekday) domain.SchedulePeriodDemand {
	startHour := rand.Intn(9) + 6 // 6 AM .. 2 PM
	duration := rand.Intn(5) + 4  // 4 .. 8 hours
	endHour := (startHour + duration) % 24

	start := timeslot.FormatClock(startHour, 0)
	end := timeslot.FormatClock(endHour, 0)

	return domain.SchedulePeriodDemand{
		WeekDay:        day,
		TimeFrame:      start + " - " + end,
		StartTime:      start,
		EndTime:        end,
		WorkerQuantity: int32(rand.Intn(4) + 1),
	}
}

// GenerateRandomSchedulePeriod builds an unpublished weekly template with one
// or two slots on a random subset of days.
func GenerateRandomSchedulePeriod(companyID, createdBy int64) *domain.SchedulePeriod {
	period := &domain.SchedulePeriod{
		CompanyID:      companyID,
		CreatedBy:      createdBy,
		PeriodName:     fmt.Sprintf("Schedule %04d", rand.Intn(10000)),
		Repeat:         rand.Intn(2) == 0,
		MaxHoursBefore: int32(rand.Intn(4) * 12),
	}

	shuffled := append([]domain.Weekday(nil), weekdays...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	dayCount := rand.Intn(4) + 2
	for _, day := range shuffled[:dayCount] {
		period.Demands = append(period.Demands, GenerateRandomDemand(day))
		if rand.Intn(2) == 0 {
			period.Demands = append(period.Demands, GenerateRandomDemand(day))
		}
	}

	return period
}
