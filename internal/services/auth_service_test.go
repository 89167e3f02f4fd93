package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rideway/internal/models"
	"rideway/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	createErr      error
	lastLoginCalls int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *mockUserRepository) add(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return interfaces.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLoginCalls++
	if user, ok := m.users[id]; ok {
		now := time.Now().UTC()
		user.LastLoginAt = &now
	}
	return nil
}

const testJWTSecret = "unit-test-secret"

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Phone:     "+919876543210",
		Password:  "Sup3rSecret",
		UserType:  models.UserTypeRider,
	}
}

func TestRegister(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.User.Email != "asha@example.com" {
		t.Errorf("Email = %q", resp.User.Email)
	}
	if resp.User.Status != models.UserStatusActive {
		t.Errorf("Status = %v, want active", resp.User.Status)
	}
	if resp.Tokens == nil || resp.Tokens.AccessToken == "" {
		t.Error("expected a token pair")
	}
	if resp.User.Password == "Sup3rSecret" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(resp.User.Password), []byte("Sup3rSecret")); err != nil {
		t.Errorf("stored password hash does not match: %v", err)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	req := registerRequest()
	req.Email = "  Asha@Example.COM "

	resp, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Email != "asha@example.com" {
		t.Errorf("Email = %q, want lowercased and trimmed", resp.User.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), registerRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterDefaultsToRider(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	req := registerRequest()
	req.UserType = ""

	resp, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.UserType != models.UserTypeRider {
		t.Errorf("UserType = %v, want rider", resp.User.UserType)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if repo.lastLoginCalls != 1 {
		t.Errorf("lastLoginCalls = %d, want 1", repo.lastLoginCalls)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newMockUserRepository(), testJWTSecret, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSuspendedUser(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	resp, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	resp.User.Status = models.UserStatusSuspended

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "Sup3rSecret",
	})
	if !errors.Is(err, ErrUserSuspended) {
		t.Fatalf("err = %v, want ErrUserSuspended", err)
	}
}

func TestRefreshToken(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	registered, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tokens, err := svc.RefreshToken(context.Background(), registered.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if tokens.AccessToken == "" {
		t.Error("expected a fresh access token")
	}

	if _, err := svc.RefreshToken(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestGetProfile(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewAuthService(repo, testJWTSecret, nil)

	registered, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.GetProfile(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Email != registered.User.Email {
		t.Errorf("Email = %q, want %q", user.Email, registered.User.Email)
	}

	if _, err := svc.GetProfile(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
