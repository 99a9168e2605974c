package repository

import (
	"context"
	"database/sql"

	"salestracker/internal/models"
)

// Users persists account identities. Usernames are unique; the store-level
// constraint is authoritative under concurrent registration.
type Users interface {
	Create(ctx context.Context, username, passwordHash string, role models.Role) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Transactions persists sales records and answers aggregate queries.
// InsertBatch is all-or-nothing: a failed row leaves the store unchanged.
type Transactions interface {
	InsertBatch(ctx context.Context, batch []models.Transaction) (int, error)
	Totals(ctx context.Context) (Totals, error)
	TopCustomers(ctx context.Context, limit int) ([]models.CustomerTotal, error)
	TotalsByDateRange(ctx context.Context, from, to string) (Totals, error)
}

// Totals carries raw aggregate values straight out of SQL. Rounding for
// presentation happens in the service layer, never here.
type Totals struct {
	Sum   float64
	Count int
	Avg   float64
}

type Repository struct {
	Users        Users
	Transactions Transactions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:        NewUserRepository(db),
		Transactions: NewTransactionRepository(db),
	}
}
