package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BillService persists and retrieves bills, scoped to an owning user.
// Status is the only bill field that can change after creation; bills are
// never deleted.
type BillService interface {
	// Create persists a computed draft as a bill owned by userID, writing the
	// header and its item rows in one transaction. The draft's customer must
	// exist and belong to userID.
	Create(ctx context.Context, userID int, draft *BillDraft) (*Bill, error)

	// ListForUser returns the user's bills, most recent first, with items
	// loaded and the customer name resolved (UnknownCustomerName when the
	// customer row is gone).
	ListForUser(ctx context.Context, userID int) ([]Bill, error)

	// GetForUser returns one bill with items. ErrNotFound when no such bill
	// exists; ErrForbidden when it belongs to another user.
	GetForUser(ctx context.Context, userID, billID int) (*Bill, error)

	// UpdateStatus sets a bill's payment status. Ownership is verified before
	// the update; any valid status may be set from any other.
	UpdateStatus(ctx context.Context, userID, billID int, status BillStatus) (*Bill, error)
}

type billService struct {
	pool *pgxpool.Pool
}

// NewBillService constructs a BillService backed by PostgreSQL.
func NewBillService(pool *pgxpool.Pool) BillService {
	return &billService{pool: pool}
}

func (s *billService) Create(ctx context.Context, userID int, draft *BillDraft) (*Bill, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bill transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerOwner int
	err = tx.QueryRow(ctx,
		"SELECT user_id FROM customers WHERE id = $1", draft.CustomerID,
	).Scan(&customerOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer id=%d: %w", draft.CustomerID, ErrNotFound)
		}
		return nil, fmt.Errorf("resolve customer id=%d: %w", draft.CustomerID, err)
	}
	if customerOwner != userID {
		return nil, fmt.Errorf("customer id=%d: %w", draft.CustomerID, ErrForbidden)
	}

	var billID int
	err = tx.QueryRow(ctx, `
		INSERT INTO bills (user_id, customer_id, bill_number, date, due_date,
		                   subtotal, gst_rate, cgst, sgst, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		userID, draft.CustomerID, draft.BillNumber, draft.Date, draft.DueDate,
		draft.Subtotal, draft.GSTRate, draft.CGST, draft.SGST, draft.Total, string(draft.Status),
	).Scan(&billID)
	if err != nil {
		return nil, fmt.Errorf("insert bill %q: %w", draft.BillNumber, err)
	}

	for i, item := range draft.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO bill_items (bill_id, line_number, description, quantity, unit_price, gst_rate)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			billID, i+1, item.Description, item.Quantity, item.UnitPrice, item.GSTRate,
		)
		if err != nil {
			return nil, fmt.Errorf("insert bill item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit bill creation: %w", err)
	}
	return s.GetForUser(ctx, userID, billID)
}

const billColumns = `
	b.id, b.user_id, b.customer_id,
	COALESCE(c.name, '` + UnknownCustomerName + `'),
	b.bill_number, b.date, b.due_date,
	b.subtotal, b.gst_rate, b.cgst, b.sgst, b.total, b.status, b.created_at`

func scanBill(row pgx.Row) (*Bill, error) {
	b := &Bill{}
	var status string
	err := row.Scan(
		&b.ID, &b.UserID, &b.CustomerID, &b.CustomerName,
		&b.BillNumber, &b.Date, &b.DueDate,
		&b.Subtotal, &b.GSTRate, &b.CGST, &b.SGST, &b.Total, &status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = BillStatus(status)
	return b, nil
}

func (s *billService) ListForUser(ctx context.Context, userID int) ([]Bill, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills b
		LEFT JOIN customers c ON c.id = b.customer_id
		WHERE b.user_id = $1
		ORDER BY b.date DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	index := make(map[int]int) // bill id → position in bills
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		index[b.ID] = len(bills)
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	if len(bills) == 0 {
		return nil, nil
	}

	itemRows, err := s.pool.Query(ctx, `
		SELECT bi.bill_id, bi.description, bi.quantity, bi.unit_price, bi.gst_rate
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.user_id = $1
		ORDER BY bi.bill_id, bi.line_number`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var billID int
		var item LineItem
		if err := itemRows.Scan(&billID, &item.Description, &item.Quantity, &item.UnitPrice, &item.GSTRate); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		if pos, ok := index[billID]; ok {
			bills[pos].Items = append(bills[pos].Items, item)
		}
	}
	return bills, itemRows.Err()
}

func (s *billService) GetForUser(ctx context.Context, userID, billID int) (*Bill, error) {
	b, err := scanBill(s.pool.QueryRow(ctx, `
		SELECT `+billColumns+`
		FROM bills b
		LEFT JOIN customers c ON c.id = b.customer_id
		WHERE b.id = $1`,
		billID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("bill id=%d: %w", billID, ErrNotFound)
		}
		return nil, fmt.Errorf("get bill id=%d: %w", billID, err)
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("bill id=%d: %w", billID, ErrForbidden)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT description, quantity, unit_price, gst_rate
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY line_number`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitPrice, &item.GSTRate); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		b.Items = append(b.Items, item)
	}
	return b, rows.Err()
}

func (s *billService) UpdateStatus(ctx context.Context, userID, billID int, status BillStatus) (*Bill, error) {
	if !status.Valid() {
		return nil, validationErrorf("status", "must be one of unpaid, paid, overdue")
	}

	// Ownership check before mutation: a bill belonging to another user must
	// yield ErrForbidden, not a quiet no-op.
	var owner int
	err := s.pool.QueryRow(ctx, "SELECT user_id FROM bills WHERE id = $1", billID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("bill id=%d: %w", billID, ErrNotFound)
		}
		return nil, fmt.Errorf("get bill id=%d: %w", billID, err)
	}
	if owner != userID {
		return nil, fmt.Errorf("bill id=%d: %w", billID, ErrForbidden)
	}

	if _, err := s.pool.Exec(ctx,
		"UPDATE bills SET status = $1 WHERE id = $2", string(status), billID,
	); err != nil {
		return nil, fmt.Errorf("update bill id=%d status: %w", billID, err)
	}
	return s.GetForUser(ctx, userID, billID)
}
