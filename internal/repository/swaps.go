package repository

import (
	"database/sql"
	"errors"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

// CreateSwap inserts a PENDING swap after checking, inside the transaction,
// that no swap exists for the unordered pair of bookings.
func (r *Repository) CreateSwap(swap *domain.ShiftSwap) error {
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
		SELECT EXISTS (
			SELECT 1 FROM shift_swaps
			WHERE (requester_shift_id = $1 AND receiver_shift_id = $2)
				OR (requester_shift_id = $2 AND receiver_shift_id = $1)
		)
	`
	var exists bool
	if err := tx.QueryRowContext(ctx, query, swap.RequesterShiftID, swap.ReceiverShiftID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrSwapExists
	}

	query = `
		INSERT INTO shift_swaps (company_id, requester_id, receiver_id, requester_shift_id, receiver_shift_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at
	`
	args := []any{swap.CompanyID, swap.RequesterID, swap.ReceiverID, swap.RequesterShiftID, swap.ReceiverShiftID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&swap.ID, &swap.Status, &swap.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

const swapColumns = `
	ss.id,
	ss.company_id,
	ss.requester_id,
	ss.receiver_id,
	ss.requester_shift_id,
	ss.receiver_shift_id,
	ss.status,
	ss.created_at,
	req.email, req.first_name, req.last_name, req.avatar, req.user_type,
	rcv.email, rcv.first_name, rcv.last_name, rcv.avatar, rcv.user_type,
	reqs.schedule_period_id, reqs.demand_id, reqs.week, reqs.year,
	rcvs.schedule_period_id, rcvs.demand_id, rcvs.week, rcvs.year
`

const swapJoins = `
	FROM shift_swaps ss
	JOIN users req ON req.id = ss.requester_id
	JOIN users rcv ON rcv.id = ss.receiver_id
	JOIN shift_bookings reqs ON reqs.id = ss.requester_shift_id
	JOIN shift_bookings rcvs ON rcvs.id = ss.receiver_shift_id
`

func scanSwap(scan func(...any) error) (*domain.ShiftSwap, error) {
	swap := &domain.ShiftSwap{
		Requester:      &domain.User{},
		Receiver:       &domain.User{},
		RequesterShift: &domain.ShiftBooking{},
		ReceiverShift:  &domain.ShiftBooking{},
	}

	dst := []any{
		&swap.ID,
		&swap.CompanyID,
		&swap.RequesterID,
		&swap.ReceiverID,
		&swap.RequesterShiftID,
		&swap.ReceiverShiftID,
		&swap.Status,
		&swap.CreatedAt,
		&swap.Requester.Email, &swap.Requester.FirstName, &swap.Requester.LastName, &swap.Requester.Avatar, &swap.Requester.UserType,
		&swap.Receiver.Email, &swap.Receiver.FirstName, &swap.Receiver.LastName, &swap.Receiver.Avatar, &swap.Receiver.UserType,
		&swap.RequesterShift.SchedulePeriodID, &swap.RequesterShift.DemandID, &swap.RequesterShift.Week, &swap.RequesterShift.Year,
		&swap.ReceiverShift.SchedulePeriodID, &swap.ReceiverShift.DemandID, &swap.ReceiverShift.Week, &swap.ReceiverShift.Year,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	swap.Requester.ID = swap.RequesterID
	swap.Requester.CompanyID = swap.CompanyID
	swap.Receiver.ID = swap.ReceiverID
	swap.Receiver.CompanyID = swap.CompanyID
	swap.RequesterShift.ID = swap.RequesterShiftID
	swap.RequesterShift.UserID = swap.RequesterID
	swap.RequesterShift.CompanyID = swap.CompanyID
	swap.ReceiverShift.ID = swap.ReceiverShiftID
	swap.ReceiverShift.UserID = swap.ReceiverID
	swap.ReceiverShift.CompanyID = swap.CompanyID

	return swap, nil
}

func (r *Repository) GetSwapByID(id int64) (*domain.ShiftSwap, error) {
	query := `SELECT ` + swapColumns + swapJoins + `WHERE ss.id = $1`

	ctx, cancel := r.queryCtx()
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanSwap(row.Scan)
}

func (r *Repository) GetUserSwaps(userID int64, sent bool, limit, offset int) ([]*domain.ShiftSwap, int, error) {
	query := `SELECT ` + swapColumns + swapJoins + `
		WHERE (($2 AND ss.requester_id = $1) OR (NOT $2 AND ss.receiver_id = $1))
		ORDER BY ss.created_at DESC, ss.id DESC
		LIMIT $3 OFFSET $4
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, sent, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	swaps := make([]*domain.ShiftSwap, 0)
	for rows.Next() {
		swap, err := scanSwap(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		swaps = append(swaps, swap)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*) FROM shift_swaps ss
		WHERE (($2 AND ss.requester_id = $1) OR (NOT $2 AND ss.receiver_id = $1))
	`
	var total int
	if err := r.dbpool.QueryRowContext(ctx, countQuery, userID, sent).Scan(&total); err != nil {
		return nil, 0, err
	}

	return swaps, total, nil
}

// ResolveSwap transitions the swap out of PENDING and, on approval, performs
// the exchange as one transaction: the requester's original booking is
// soft-deleted and both parties get a booking at each other's demand cell
// and (week, year). The status update is a compare-and-swap so a second
// concurrent resolution fails with domain.ErrSwapResolved.
func (r *Repository) ResolveSwap(swap *domain.ShiftSwap, approve bool) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	status := domain.SwapDenied
	if approve {
		status = domain.SwapApproved
	}

	query := `
		UPDATE shift_swaps SET status = $1 WHERE id = $2 AND status = 'PENDING'
		RETURNING id
	`
	var id int64
	if err := tx.QueryRowContext(ctx, query, status, swap.ID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSwapResolved
		}
		return err
	}

	if approve {
		query = `
			UPDATE shift_bookings SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL
		`
		if _, err := tx.ExecContext(ctx, query, swap.RequesterShiftID); err != nil {
			return err
		}

		query = `
			INSERT INTO shift_bookings (user_id, company_id, schedule_period_id, demand_id, week, year)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		// Requester takes over the receiver's shift instance.
		args := []any{swap.RequesterID, swap.CompanyID, swap.ReceiverShift.SchedulePeriodID, swap.ReceiverShift.DemandID, swap.ReceiverShift.Week, swap.ReceiverShift.Year}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		// Receiver takes over the requester's shift instance.
		args = []any{swap.ReceiverID, swap.CompanyID, swap.RequesterShift.SchedulePeriodID, swap.RequesterShift.DemandID, swap.RequesterShift.Week, swap.RequesterShift.Year}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	swap.Status = status
	return nil
}
