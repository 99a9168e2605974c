package service

import (
	"context"

	"salestracker/internal/models"
	"salestracker/internal/repository"
)

// Authorization covers registration, login and per-request identity resolution.
type Authorization interface {
	Register(ctx context.Context, username, password string, role models.Role) (*models.User, error)
	Login(ctx context.Context, username, password string) (token string, role models.Role, err error)
	ParseToken(accessToken string) (*Identity, error)
}

// Ingestion validates an uploaded CSV payload and persists accepted rows
// atomically. Returns the number of rows written.
type Ingestion interface {
	Ingest(ctx context.Context, raw []byte, uploadedBy string) (int, error)
}

// Analytics exposes read-only aggregate views over the transaction store.
type Analytics interface {
	Summary(ctx context.Context) (models.SalesSummary, error)
	TopCustomers(ctx context.Context, limit int) ([]models.CustomerTotal, error)
	ByDateRange(ctx context.Context, from, to string) (models.SalesSummary, error)
}

// Service aggregates all sub-services behind one dependency for the HTTP layer.
type Service struct {
	Authorization
	Ingestion
	Analytics
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Ingestion:     NewIngestService(repos.Transactions),
		Analytics:     NewAnalyticsService(repos.Transactions),
	}
}
