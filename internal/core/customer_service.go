package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerInput carries the caller-supplied fields of a new customer.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerService manages customer records, always scoped to an owning user.
type CustomerService interface {
	// Create inserts a customer owned by userID.
	Create(ctx context.Context, userID int, input CustomerInput) (*Customer, error)

	// ListForUser returns the user's customers, most recent first.
	ListForUser(ctx context.Context, userID int) ([]Customer, error)

	// GetForUser returns a single customer. ErrNotFound when no such row
	// exists; ErrForbidden when it belongs to another user.
	GetForUser(ctx context.Context, userID, customerID int) (*Customer, error)
}

type customerService struct {
	pool *pgxpool.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

func (s *customerService) Create(ctx context.Context, userID int, input CustomerInput) (*Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, validationErrorf("name", "is required")
	}

	c := &Customer{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers (user_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, email, phone, address, created_at`,
		userID, input.Name, input.Email, input.Phone, input.Address,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create customer %q: %w", input.Name, err)
	}
	return c, nil
}

func (s *customerService) ListForUser(ctx context.Context, userID int) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, email, phone, address, created_at
		FROM customers
		WHERE user_id = $1
		ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *customerService) GetForUser(ctx context.Context, userID, customerID int) (*Customer, error) {
	c := &Customer{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, name, email, phone, address, created_at
		FROM customers
		WHERE id = $1`,
		customerID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer id=%d: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("get customer id=%d: %w", customerID, err)
	}
	// Ownership is an authorization check on the fetched row, not a query
	// filter, so cross-tenant probes get a 403 rather than a silent 404.
	if c.UserID != userID {
		return nil, fmt.Errorf("customer id=%d: %w", customerID, ErrForbidden)
	}
	return c, nil
}
