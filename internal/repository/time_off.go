package repository

import (
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func (r *Repository) CreateTimeOff(request *domain.TimeOff) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO time_off_requests (user_id, company_id, type, reason, time_frame, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at
	`

	args := []any{request.UserID, request.CompanyID, request.Type, request.Reason, request.TimeFrame, request.StartDate, request.EndDate}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.Status, &request.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimeOffByID(id int64) (*domain.TimeOff, error) {
	query := `
		SELECT user_id, company_id, type, reason, time_frame, start_date, end_date, status, created_at
		FROM time_off_requests
		WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	request := &domain.TimeOff{
		ID: id,
	}

	dst := []any{&request.UserID, &request.CompanyID, &request.Type, &request.Reason, &request.TimeFrame, &request.StartDate, &request.EndDate, &request.Status, &request.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return request, nil
}

func (r *Repository) GetUserTimeOff(userID int64, limit, offset int) ([]*domain.TimeOff, int, error) {
	query := `
		SELECT id, user_id, company_id, type, reason, time_frame, start_date, end_date, status, created_at
		FROM time_off_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]*domain.TimeOff, 0)
	for rows.Next() {
		request := &domain.TimeOff{}
		dst := []any{&request.ID, &request.UserID, &request.CompanyID, &request.Type, &request.Reason, &request.TimeFrame, &request.StartDate, &request.EndDate, &request.Status, &request.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM time_off_requests WHERE user_id = $1`
	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *Repository) GetCompanyTimeOffByStatus(companyID int64, status domain.TimeOffStatus, limit, offset int) ([]*domain.TimeOff, int, error) {
	query := `
		SELECT
			t.id, t.user_id, t.company_id, t.type, t.reason, t.time_frame, t.start_date, t.end_date, t.status, t.created_at,
			u.email, u.first_name, u.last_name, u.avatar, u.user_type
		FROM time_off_requests t
		JOIN users u ON u.id = t.user_id
		WHERE t.company_id = $1 AND t.status = $2
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]*domain.TimeOff, 0)
	for rows.Next() {
		request := &domain.TimeOff{User: &domain.User{}}
		dst := []any{
			&request.ID, &request.UserID, &request.CompanyID, &request.Type, &request.Reason, &request.TimeFrame, &request.StartDate, &request.EndDate, &request.Status, &request.CreatedAt,
			&request.User.Email, &request.User.FirstName, &request.User.LastName, &request.User.Avatar, &request.User.UserType,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		request.User.ID = request.UserID
		request.User.CompanyID = request.CompanyID
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM time_off_requests WHERE company_id = $1 AND status = $2`
	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, companyID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *Repository) UpdateTimeOff(request *domain.TimeOff) error {
	query := `
		UPDATE time_off_requests
		SET
			type = $1,
			reason = $2,
			time_frame = $3,
			start_date = $4,
			end_date = $5
		WHERE id = $6
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{request.Type, request.Reason, request.TimeFrame, request.StartDate, request.EndDate, request.ID}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) SetTimeOffStatus(id int64, status domain.TimeOffStatus) error {
	query := `
		UPDATE time_off_requests SET status = $1 WHERE id = $2
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, status, id); err != nil {
		return err
	}

	return nil
}
