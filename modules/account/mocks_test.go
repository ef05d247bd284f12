package account_test

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/authkit/pkg/session"
	accountsvc "github.com/dmitrymomot/authkit/svc/account"
)

// MockAccountService is a mock implementation of account.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in accountsvc.RegisterInput) (*accountsvc.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountsvc.User), args.Error(1)
}

func (m *MockAccountService) ConfirmRegistration(ctx context.Context, token string) (*accountsvc.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountsvc.User), args.Error(1)
}

func (m *MockAccountService) ResendConfirmation(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAccountService) Login(ctx context.Context, in accountsvc.LoginInput) (*accountsvc.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountsvc.User), args.Error(1)
}

func (m *MockAccountService) RequestPasswordChange(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAccountService) ChangePassword(ctx context.Context, in accountsvc.ChangePasswordInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// MockSessionManager is a mock implementation of account.SessionManager.
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID, email string) (*session.Session, error) {
	args := m.Called(ctx, w, r, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionManager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	args := m.Called(ctx, w, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}
