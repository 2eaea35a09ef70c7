package identity

import (
	"context"
	"testing"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/identity"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/auth"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthFixture(t *testing.T) (*AuthService, *MockUserRepository) {
	t.Helper()
	users := new(MockUserRepository)
	jwt := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "smart-rental-test",
	})
	svc := NewAuthService(users, jwt, auth.NewInMemoryTokenBlacklist(), nil)
	return svc, users
}

func newTestUser(t *testing.T, email, password string, role identity.Role) *identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := identity.NewUser(email, string(hash), "Test User", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := newTestUser(t, "owner@example.com", "s3cret-pass", identity.RoleAdmin)

	users.On("FindByEmail", mock.Anything, "owner@example.com").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", resp.User.Email)
	assert.Equal(t, "ADMIN", resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.NotNil(t, user.LastLoginAt)
	users.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := newTestUser(t, "owner@example.com", "s3cret-pass", identity.RoleAdmin)

	users.On("FindByEmail", mock.Anything, "owner@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_CREDENTIALS", derr.Code)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, users := newAuthFixture(t)

	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	// same code as a wrong password, do not leak which emails exist
	assert.Equal(t, "INVALID_CREDENTIALS", derr.Code)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := newTestUser(t, "gone@example.com", "s3cret-pass", identity.RoleStaff)
	require.NoError(t, user.Deactivate())

	users.On("FindByEmail", mock.Anything, "gone@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "gone@example.com",
		Password: "s3cret-pass",
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ACCOUNT_DISABLED", derr.Code)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := newTestUser(t, "owner@example.com", "s3cret-pass", identity.RoleAdmin)

	users.On("FindByEmail", mock.Anything, "owner@example.com").Return(user, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	// the old refresh token was blacklisted on rotation
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: login.Tokens.RefreshToken,
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestAuthService_Logout_BlocksRefresh(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := newTestUser(t, "owner@example.com", "s3cret-pass", identity.RoleAdmin)

	users.On("FindByEmail", mock.Anything, "owner@example.com").Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), LogoutRequest{
		RefreshToken: login.Tokens.RefreshToken,
	}))

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: login.Tokens.RefreshToken,
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := newTestUser(t, "owner@example.com", "old-password", identity.RoleAdmin)

	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("brand-new-password")))

	err = svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "another",
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_CREDENTIALS", derr.Code)
}

func TestUserService_Register(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil)

	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, shared.ErrNotFound)
	users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := svc.Register(context.Background(), RegisterUserRequest{
		Email:    "New@Example.com",
		Password: "s3cret-pass",
		FullName: "New Staff",
		Role:     "STAFF",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, "STAFF", resp.Role)
	assert.True(t, resp.IsActive)
	users.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, nil)
	existing := newTestUser(t, "dup@example.com", "pass1234", identity.RoleTenant)

	users.On("FindByEmail", mock.Anything, "dup@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), RegisterUserRequest{
		Email:    "dup@example.com",
		Password: "s3cret-pass",
		FullName: "Dup",
		Role:     "TENANT",
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
}
