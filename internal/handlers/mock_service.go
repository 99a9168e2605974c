package handlers

import (
	"context"
	"net/http"

	"salestracker/internal/models"
	"salestracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  *models.User
	registerErr   error
	loginToken    string
	loginRole     models.Role
	loginErr      error
	parseIdentity *service.Identity
	parseErr      error

	lastRegisterUsername string
	lastRegisterRole     models.Role
	lastLoginUsername    string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, username, password string, role models.Role) (*models.User, error) {
	m.lastRegisterUsername = username
	m.lastRegisterRole = role
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (string, models.Role, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginRole, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (*service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdentity, m.parseErr
}

type mockIngestion struct {
	count int
	err   error

	lastRaw        []byte
	lastUploadedBy string
	calls          int
}

func (m *mockIngestion) Ingest(_ context.Context, raw []byte, uploadedBy string) (int, error) {
	m.calls++
	m.lastRaw = raw
	m.lastUploadedBy = uploadedBy
	return m.count, m.err
}

type mockAnalytics struct {
	summary      models.SalesSummary
	summaryErr   error
	topCustomers []models.CustomerTotal
	topErr       error
	byDate       models.SalesSummary
	byDateErr    error

	lastLimit int
	lastFrom  string
	lastTo    string
}

func (m *mockAnalytics) Summary(_ context.Context) (models.SalesSummary, error) {
	return m.summary, m.summaryErr
}

func (m *mockAnalytics) TopCustomers(_ context.Context, limit int) ([]models.CustomerTotal, error) {
	m.lastLimit = limit
	return m.topCustomers, m.topErr
}

func (m *mockAnalytics) ByDateRange(_ context.Context, from, to string) (models.SalesSummary, error) {
	m.lastFrom = from
	m.lastTo = to
	return m.byDate, m.byDateErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// adminAuth returns a mockAuth whose ParseToken resolves to an admin identity.
func adminAuth() *mockAuth {
	return &mockAuth{
		parseIdentity: &service.Identity{Username: "boss", Role: models.RoleAdmin},
	}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
