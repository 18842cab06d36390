package repository

import (
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

// CreateBookingGuarded inserts a booking while holding a row lock on the
// demand cell, so two concurrent joins cannot both pass the capacity check.
// Returns domain.ErrDuplicateBooking or domain.ErrCapacityExceeded when the
// respective invariant would be violated.
func (r *Repository) CreateBookingGuarded(booking *domain.ShiftBooking, quantity int32) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serializes concurrent joins on the same demand cell.
	query := `
		SELECT id FROM schedule_period_demands WHERE id = $1 FOR UPDATE
	`
	var demandID int64
	if err := tx.QueryRowContext(ctx, query, booking.DemandID).Scan(&demandID); err != nil {
		return err
	}

	query = `
		SELECT EXISTS (
			SELECT 1 FROM shift_bookings
			WHERE demand_id = $1 AND user_id = $2 AND week = $3 AND year = $4 AND deleted_at IS NULL
		)
	`
	var alreadyBooked bool
	if err := tx.QueryRowContext(ctx, query, booking.DemandID, booking.UserID, booking.Week, booking.Year).Scan(&alreadyBooked); err != nil {
		return err
	}
	if alreadyBooked {
		return domain.ErrDuplicateBooking
	}

	query = `
		SELECT COUNT(*) FROM shift_bookings
		WHERE demand_id = $1 AND week = $2 AND year = $3 AND deleted_at IS NULL
	`
	var booked int32
	if err := tx.QueryRowContext(ctx, query, booking.DemandID, booking.Week, booking.Year).Scan(&booked); err != nil {
		return err
	}
	if booked >= quantity {
		return domain.ErrCapacityExceeded
	}

	query = `
		INSERT INTO shift_bookings (user_id, company_id, schedule_period_id, demand_id, week, year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	args := []any{booking.UserID, booking.CompanyID, booking.SchedulePeriodID, booking.DemandID, booking.Week, booking.Year}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBookingByID(id int64) (*domain.ShiftBooking, error) {
	query := `
		SELECT user_id, company_id, schedule_period_id, demand_id, week, year, created_at
		FROM shift_bookings
		WHERE id = $1 AND deleted_at IS NULL
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	booking := &domain.ShiftBooking{
		ID: id,
	}

	dst := []any{&booking.UserID, &booking.CompanyID, &booking.SchedulePeriodID, &booking.DemandID, &booking.Week, &booking.Year, &booking.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *Repository) GetUserUpcomingBookings(userID int64, week, year, limit, offset int) ([]*domain.BookingDetails, int, error) {
	query := `
		SELECT
			sb.id,
			sb.user_id,
			sb.company_id,
			sb.schedule_period_id,
			sb.demand_id,
			sb.week,
			sb.year,
			sb.created_at,
			spd.week_day,
			spd.start_time,
			spd.end_time,
			spd.time_frame,
			sp.period_name
		FROM shift_bookings sb
		JOIN schedule_period_demands spd ON spd.id = sb.demand_id
		JOIN schedule_periods sp ON sp.id = sb.schedule_period_id
		WHERE sb.user_id = $1
			AND sb.deleted_at IS NULL
			AND (sb.year > $3 OR (sb.year = $3 AND sb.week >= $2))
		ORDER BY sb.year, sb.week, sb.id
		LIMIT $4 OFFSET $5
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, week, year, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		b := &domain.BookingDetails{}
		dst := []any{
			&b.ID, &b.UserID, &b.CompanyID, &b.SchedulePeriodID, &b.DemandID, &b.Week, &b.Year, &b.CreatedAt,
			&b.WeekDay, &b.StartTime, &b.EndTime, &b.TimeFrame, &b.PeriodName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*) FROM shift_bookings sb
		WHERE sb.user_id = $1
			AND sb.deleted_at IS NULL
			AND (sb.year > $3 OR (sb.year = $3 AND sb.week >= $2))
	`
	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, userID, week, year).Scan(&total); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *Repository) GetDemandWorkers(demandID int64, week, year int) ([]*domain.BookingWorker, error) {
	query := `
		SELECT sb.id, u.id, u.avatar, u.first_name, u.last_name, u.email
		FROM shift_bookings sb
		JOIN users u ON u.id = sb.user_id
		WHERE sb.demand_id = $1 AND sb.week = $2 AND sb.year = $3 AND sb.deleted_at IS NULL
		ORDER BY sb.id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, demandID, week, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.BookingWorker, 0)
	for rows.Next() {
		w := &domain.BookingWorker{Week: week, Year: year}
		var firstName, lastName string
		if err := rows.Scan(&w.BookingID, &w.UserID, &w.Avatar, &firstName, &lastName, &w.Email); err != nil {
			return nil, err
		}
		w.FullName = firstName + " " + lastName
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

// GetCompanyUpcomingBookings lists colleagues' live bookings from (week, year)
// onward, excluding the given user's own rows.
func (r *Repository) GetCompanyUpcomingBookings(companyID, excludeUserID int64, week, year, limit, offset int) ([]*domain.BookingDetails, int, error) {
	query := `
		SELECT
			sb.id,
			sb.user_id,
			sb.company_id,
			sb.schedule_period_id,
			sb.demand_id,
			sb.week,
			sb.year,
			sb.created_at,
			spd.week_day,
			spd.start_time,
			spd.end_time,
			spd.time_frame,
			sp.period_name,
			u.email,
			u.first_name,
			u.last_name,
			u.avatar,
			u.user_type
		FROM shift_bookings sb
		JOIN schedule_period_demands spd ON spd.id = sb.demand_id
		JOIN schedule_periods sp ON sp.id = sb.schedule_period_id
		JOIN users u ON u.id = sb.user_id
		WHERE sb.company_id = $1
			AND sb.user_id <> $2
			AND sb.deleted_at IS NULL
			AND sp.deleted_at IS NULL
			AND (sb.year > $4 OR (sb.year = $4 AND sb.week >= $3))
		ORDER BY sb.year, sb.week, sb.id
		LIMIT $5 OFFSET $6
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, excludeUserID, week, year, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		b := &domain.BookingDetails{User: &domain.User{}}
		dst := []any{
			&b.ID, &b.UserID, &b.CompanyID, &b.SchedulePeriodID, &b.DemandID, &b.Week, &b.Year, &b.CreatedAt,
			&b.WeekDay, &b.StartTime, &b.EndTime, &b.TimeFrame, &b.PeriodName,
			&b.User.Email, &b.User.FirstName, &b.User.LastName, &b.User.Avatar, &b.User.UserType,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		b.User.ID = b.UserID
		b.User.CompanyID = b.CompanyID
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM shift_bookings sb
		JOIN schedule_periods sp ON sp.id = sb.schedule_period_id
		WHERE sb.company_id = $1
			AND sb.user_id <> $2
			AND sb.deleted_at IS NULL
			AND sp.deleted_at IS NULL
			AND (sb.year > $4 OR (sb.year = $4 AND sb.week >= $3))
	`
	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, companyID, excludeUserID, week, year).Scan(&total); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}
