package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"closet/internal/models"
	"closet/internal/repositories"
	"closet/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Search(filters models.UserSearchFilters, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of rabbitmq.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, 0)

	user := &models.User{
		Email:    "test@example.com",
		Password: "password123",
	}

	// Successful registration hashes the password and defaults the role
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.Register(user)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Duplicate email is rejected
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.Register(user)
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, 0)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login yields a token whose subject is the user id
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.Subject)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)

	// Unknown email fails identically
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("not found")).Once()
	_, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_IssueVerifyRoundTrip(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, 0)

	token, err := authService.IssueToken("user-123", 0)
	assert.NoError(t, err)

	claims, err := authService.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)

	// Default TTL is 4 hours
	remaining := time.Until(claims.ExpiresAt)
	assert.Greater(t, remaining, 3*time.Hour+59*time.Minute)
	assert.LessOrEqual(t, remaining, 4*time.Hour)
}

func TestAuthService_VerifyToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, 0)

	// Garbage token
	_, err := authService.VerifyToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	// Expired token
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "user-123",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.VerifyToken(expiredString)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	// Wrong secret
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "user-123",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("other_secret"))
	_, err = authService.VerifyToken(forgedString)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestAuthService_ResolveUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, 0)

	user := &models.User{ID: "user-123", Email: "test@example.com"}
	token, err := authService.IssueToken(user.ID, 0)
	assert.NoError(t, err)

	// Valid token with a live subject resolves
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	resolved, err := authService.ResolveUser(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	mockRepo.AssertExpectations(t)

	// Valid token whose subject was deleted fails like an invalid token
	mockRepo.On("GetByID", user.ID).Return(nil, fmt.Errorf("not found")).Once()
	_, err = authService.ResolveUser(token)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)

	// Invalid token never hits the repository
	_, err = authService.ResolveUser("garbage")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockPublisher)
	authService := services.NewAuthService(mockRepo, mockEvents, testJWTSecret, 0)

	user := &models.User{ID: "user-123", Email: "test@example.com"}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Save", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockEvents.On("Publish", "user.reset_requested", mock.Anything).Return(nil).Once()

	err := authService.ForgotPassword(user.Email)
	assert.NoError(t, err)
	// Token and expiry are set as a pair
	assert.NotEmpty(t, user.ResetPasswordToken)
	assert.NotNil(t, user.ResetPasswordExpires)
	assert.True(t, user.ResetPasswordExpires.After(time.Now()))
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Unknown email
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrRecordNotFound)).Once()
	err = authService.ForgotPassword("nobody@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, 0)

	expires := time.Now().Add(30 * time.Minute)
	user := &models.User{
		ID:                   "user-123",
		Email:                "test@example.com",
		ResetPasswordToken:   "reset-token",
		ResetPasswordExpires: &expires,
	}

	// Valid token rehashes the password and clears the pair
	mockRepo.On("GetByResetToken", "reset-token").Return(user, nil).Once()
	mockRepo.On("Save", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.ResetPassword("reset-token", "newpassword")
	assert.NoError(t, err)
	assert.Empty(t, user.ResetPasswordToken)
	assert.Nil(t, user.ResetPasswordExpires)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword")))
	mockRepo.AssertExpectations(t)

	// Expired token
	past := time.Now().Add(-time.Minute)
	stale := &models.User{ID: "user-456", ResetPasswordToken: "stale", ResetPasswordExpires: &past}
	mockRepo.On("GetByResetToken", "stale").Return(stale, nil).Once()
	err = authService.ResetPassword("stale", "newpassword")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)

	// Unknown token
	mockRepo.On("GetByResetToken", "missing").Return(nil, fmt.Errorf("not found")).Once()
	err = authService.ResetPassword("missing", "newpassword")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}
