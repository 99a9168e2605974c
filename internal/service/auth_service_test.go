package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"salestracker/internal/models"
	"salestracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const testSigningKey = "test-signing-key"

func testAuthConfig() AuthConfig {
	return AuthConfig{SigningKey: testSigningKey, TokenTTL: 30 * time.Minute}
}

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn        func(username, hash string, role models.Role) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
		role     models.Role
	}
	getCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, username, hash string, role models.Role) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
		role     models.Role
	}{username: username, hash: hash, role: role})
	return m.CreateFn(username, hash, role)
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

// --- Register tests ---

func TestAuthService_Register_HashesPasswordAndPreservesRole(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string, role models.Role) (int, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig())

	user, err := svc.Register(context.Background(), "alice", "s3cr3t", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 42 || user.Username != "alice" || user.Role != models.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.role != models.RoleAdmin {
		t.Errorf("expected role admin, got %q", call.role)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string, role models.Role) (int, error) {
			// Simulates losing the uniqueness race at the store.
			return 0, repository.ErrDuplicateUsername
		},
	}
	svc := NewAuthService(mock, testAuthConfig())

	_, err := svc.Register(context.Background(), "alice", "pw123", models.RoleUser)
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string, role models.Role) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig())

	_, err := svc.Register(context.Background(), "bob", "   ", models.RoleUser)
	if err == nil {
		t.Fatalf("expected error for empty password, got nil")
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string, role models.Role) (int, error) {
			return 0, errors.New("db down")
		},
	}
	svc := NewAuthService(mock, testAuthConfig())

	_, err := svc.Register(context.Background(), "carl", "pass123", models.RoleUser)
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
	if errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("store failure must not masquerade as a duplicate")
	}
}

// --- Login tests ---

func TestAuthService_Login_TokenRoundTripsClaims(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", PasswordHash: hash, Role: models.RoleAdmin}

	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return user, nil
		},
	}
	svc := NewAuthService(mock, testAuthConfig())

	token, role, err := svc.Login(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", role)
	}

	identity, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if identity.Username != "diana" || identity.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_Login_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	unknown := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
	}
	wrongPw := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "eve", PasswordHash: correctHash, Role: models.RoleUser}, nil
		},
	}

	_, _, errUnknown := NewAuthService(unknown, testAuthConfig()).Login(context.Background(), "ghost", "pw")
	_, _, errWrongPw := NewAuthService(wrongPw, testAuthConfig()).Login(context.Background(), "eve", "wrong")

	// Both failures must be the same error so callers cannot enumerate usernames.
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("error shapes differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := NewAuthService(mock, testAuthConfig())

	_, _, err := svc.Login(context.Background(), "john", "pw")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("store failure must not masquerade as bad credentials")
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig())
	token, err := svc.issueToken("frank", models.RoleUser)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	identity, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if identity.Username != "frank" || identity.Role != models.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig())
	_, err := svc.ParseToken("not-a-jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_ParseToken_TamperedSignature(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig())

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(models.RoleAdmin),
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(badToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig())

	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "grace",
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		Role: string(models.RoleUser),
	})
	expiredToken, err := tk.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(expiredToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig())

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "henry",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(models.RoleUser),
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for non-HMAC token, got %v", err)
	}
}

func TestAuthService_ParseToken_MissingSubject(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testAuthConfig())

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(models.RoleUser),
	})
	tokenStr, err := tk.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
