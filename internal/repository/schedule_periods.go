package repository

import (
	"database/sql"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func (r *Repository) CreateSchedulePeriod(period *domain.SchedulePeriod) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedule_periods (company_id, created_by, period_name, repeat, max_hours_before, max_hours_after)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, published, created_at
	`
	args := []any{period.CompanyID, period.CreatedBy, period.PeriodName, period.Repeat, period.MaxHoursBefore, period.MaxHoursAfter}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&period.ID, &period.Published, &period.CreatedAt); err != nil {
		return err
	}

	for i := range period.Demands {
		query = `
			INSERT INTO schedule_period_demands (schedule_period_id, week_day, time_frame, start_time, end_time, worker_quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		d := &period.Demands[i]
		params := []any{period.ID, d.WeekDay, d.TimeFrame, d.StartTime, d.EndTime, d.WorkerQuantity}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&d.ID); err != nil {
			return err
		}
		d.SchedulePeriodID = period.ID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSchedulePeriodByID(id int64) (*domain.SchedulePeriod, error) {
	query := `
		SELECT
			sp.company_id,
			sp.created_by,
			sp.period_name,
			sp.repeat,
			sp.published,
			sp.max_hours_before,
			sp.max_hours_after,
			sp.created_at,
			spd.id,
			spd.week_day,
			spd.time_frame,
			spd.start_time,
			spd.end_time,
			spd.worker_quantity
		FROM schedule_periods sp
		LEFT JOIN schedule_period_demands spd ON sp.id = spd.schedule_period_id
		WHERE sp.id = $1 AND sp.deleted_at IS NULL
		ORDER BY spd.id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	period := &domain.SchedulePeriod{
		ID:      id,
		Demands: make([]domain.SchedulePeriodDemand, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			DemandID       sql.NullInt64
			WeekDay        sql.NullString
			TimeFrame      sql.NullString
			StartTime      sql.NullString
			EndTime        sql.NullString
			WorkerQuantity sql.NullInt32
		}

		dst := []any{
			&period.CompanyID,
			&period.CreatedBy,
			&period.PeriodName,
			&period.Repeat,
			&period.Published,
			&period.MaxHoursBefore,
			&period.MaxHoursAfter,
			&period.CreatedAt,
			&row.DemandID,
			&row.WeekDay,
			&row.TimeFrame,
			&row.StartTime,
			&row.EndTime,
			&row.WorkerQuantity,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		found = true

		// A period with no demand cells produces one row of NULLs.
		if !row.DemandID.Valid {
			continue
		}

		period.Demands = append(period.Demands, domain.SchedulePeriodDemand{
			ID:               row.DemandID.Int64,
			SchedulePeriodID: id,
			WeekDay:          domain.Weekday(row.WeekDay.String),
			TimeFrame:        row.TimeFrame.String,
			StartTime:        row.StartTime.String,
			EndTime:          row.EndTime.String,
			WorkerQuantity:   row.WorkerQuantity.Int32,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	return period, nil
}

func (r *Repository) GetCompanySchedules(companyID int64, publishedOnly bool, limit, offset int) ([]*domain.SchedulePeriod, int, error) {
	query := `
		SELECT
			sp.id,
			sp.company_id,
			sp.created_by,
			sp.period_name,
			sp.repeat,
			sp.published,
			sp.max_hours_before,
			sp.max_hours_after,
			sp.created_at,
			spd.id,
			spd.week_day,
			spd.time_frame,
			spd.start_time,
			spd.end_time,
			spd.worker_quantity
		FROM schedule_periods sp
		LEFT JOIN schedule_period_demands spd ON sp.id = spd.schedule_period_id
		WHERE sp.company_id = $1
			AND sp.deleted_at IS NULL
			AND (NOT $2 OR sp.published)
			AND sp.id IN (
				SELECT id FROM schedule_periods
				WHERE company_id = $1 AND deleted_at IS NULL AND (NOT $2 OR published)
				ORDER BY id
				LIMIT $3 OFFSET $4
			)
		ORDER BY sp.id, spd.id
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, publishedOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	periods := make([]*domain.SchedulePeriod, 0)
	var current *domain.SchedulePeriod

	for rows.Next() {
		var row struct {
			ID             int64
			CompanyID      int64
			CreatedBy      int64
			PeriodName     string
			Repeat         bool
			Published      bool
			MaxHoursBefore int32
			MaxHoursAfter  int32
			CreatedAt      sql.NullTime

			DemandID       sql.NullInt64
			WeekDay        sql.NullString
			TimeFrame      sql.NullString
			StartTime      sql.NullString
			EndTime        sql.NullString
			WorkerQuantity sql.NullInt32
		}

		dst := []any{
			&row.ID,
			&row.CompanyID,
			&row.CreatedBy,
			&row.PeriodName,
			&row.Repeat,
			&row.Published,
			&row.MaxHoursBefore,
			&row.MaxHoursAfter,
			&row.CreatedAt,
			&row.DemandID,
			&row.WeekDay,
			&row.TimeFrame,
			&row.StartTime,
			&row.EndTime,
			&row.WorkerQuantity,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}

		if current == nil || current.ID != row.ID {
			current = &domain.SchedulePeriod{
				ID:             row.ID,
				CompanyID:      row.CompanyID,
				CreatedBy:      row.CreatedBy,
				PeriodName:     row.PeriodName,
				Repeat:         row.Repeat,
				Published:      row.Published,
				MaxHoursBefore: row.MaxHoursBefore,
				MaxHoursAfter:  row.MaxHoursAfter,
				CreatedAt:      row.CreatedAt.Time,
				Demands:        make([]domain.SchedulePeriodDemand, 0),
			}
			periods = append(periods, current)
		}

		if !row.DemandID.Valid {
			continue
		}

		current.Demands = append(current.Demands, domain.SchedulePeriodDemand{
			ID:               row.DemandID.Int64,
			SchedulePeriodID: row.ID,
			WeekDay:          domain.Weekday(row.WeekDay.String),
			TimeFrame:        row.TimeFrame.String,
			StartTime:        row.StartTime.String,
			EndTime:          row.EndTime.String,
			WorkerQuantity:   row.WorkerQuantity.Int32,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*) FROM schedule_periods
		WHERE company_id = $1 AND deleted_at IS NULL AND (NOT $2 OR published)
	`
	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, companyID, publishedOnly).Scan(&total); err != nil {
		return nil, 0, err
	}

	return periods, total, nil
}

func (r *Repository) GetPublishedScheduleID(companyID int64) (int64, error) {
	query := `
		SELECT id FROM schedule_periods
		WHERE company_id = $1 AND published AND deleted_at IS NULL
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, companyID).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Repository) SetSchedulePublished(id int64, published bool) error {
	query := `
		UPDATE schedule_periods SET published = $1 WHERE id = $2 AND deleted_at IS NULL
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, published, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) SoftDeleteSchedulePeriod(id int64) error {
	query := `
		UPDATE schedule_periods SET published = FALSE, deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDemandByID(id int64) (*domain.DemandDetails, error) {
	query := `
		SELECT
			spd.schedule_period_id,
			spd.week_day,
			spd.time_frame,
			spd.start_time,
			spd.end_time,
			spd.worker_quantity,
			sp.company_id,
			sp.published,
			sp.max_hours_before,
			sp.period_name,
			sp.created_at
		FROM schedule_period_demands spd
		JOIN schedule_periods sp ON sp.id = spd.schedule_period_id
		WHERE spd.id = $1 AND sp.deleted_at IS NULL
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	demand := &domain.DemandDetails{}
	demand.ID = id

	dst := []any{
		&demand.SchedulePeriodID,
		&demand.WeekDay,
		&demand.TimeFrame,
		&demand.StartTime,
		&demand.EndTime,
		&demand.WorkerQuantity,
		&demand.CompanyID,
		&demand.Published,
		&demand.MaxHoursBefore,
		&demand.PeriodName,
		&demand.PeriodCreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return demand, nil
}
