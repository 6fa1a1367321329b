package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"closet/internal/models"
	"closet/internal/repositories"
	"closet/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is used when no expiry override is configured.
const DefaultTokenTTL = 4 * time.Hour

// resetTokenTTL bounds how long a password-reset token stays usable.
const resetTokenTTL = time.Hour

// TokenClaims is the fixed shape carried by every issued token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// AuthService issues and verifies bearer tokens and resolves them back to
// live user records.
type AuthService struct {
	userRepo  repositories.UserRepository
	events    rabbitmq.Publisher
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. A non-positive tokenTTL falls
// back to DefaultTokenTTL.
func NewAuthService(userRepo repositories.UserRepository, events rabbitmq.Publisher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		events:    events,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register hashes the password and stores a new user.
func (s *AuthService) Register(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, ErrInvalidArgument)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := s.userRepo.Create(user); err != nil {
		log.Printf("failed to register user: %v", err)
		return ErrInternal
	}
	return nil
}

// Login authenticates by email and password and returns a bearer token. The
// unknown-email and wrong-password cases are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
	}
	return s.IssueToken(user.ID, 0)
}

// IssueToken produces a signed token for the given subject. A non-positive
// ttl uses the service default. Stateless: nothing is stored.
func (s *AuthService) IssueToken(userID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.tokenTTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   userID,
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature, shape and expiry and returns the claims. It
// does not check that the subject still exists; that is ResolveUser's job.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	}
	return &TokenClaims{
		Subject:   claims.Subject,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// ResolveUser turns a bearer token into a live user record. An invalid token
// and a token whose subject was deleted both fail with ErrUnauthenticated so
// callers cannot probe for account existence.
func (s *AuthService) ResolveUser(tokenString string) (*models.User, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	}
	return user, nil
}

// ForgotPassword stores a fresh reset token with a one hour expiry on the
// account and publishes an event for the mailer.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		log.Printf("forgot password lookup failed: %v", err)
		return ErrInternal
	}

	expires := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = uuid.New().String()
	user.ResetPasswordExpires = &expires
	if err := s.userRepo.Save(user); err != nil {
		log.Printf("failed to store reset token: %v", err)
		return ErrInternal
	}

	s.publishEvent("user.reset_requested", map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
		"token":  user.ResetPasswordToken,
	})
	return nil
}

// ResetPassword redeems a reset token, rehashes the password and clears the
// token pair. Expired and unknown tokens both fail with ErrUnauthenticated.
func (s *AuthService) ResetPassword(resetToken, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(resetToken)
	if err != nil {
		return fmt.Errorf("invalid reset token: %w", ErrUnauthenticated)
	}
	if user.ResetPasswordExpires == nil || time.Now().After(*user.ResetPasswordExpires) {
		return fmt.Errorf("reset token expired: %w", ErrUnauthenticated)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil

	if err := s.userRepo.Save(user); err != nil {
		log.Printf("failed to save new password: %v", err)
		return ErrInternal
	}
	return nil
}

func (s *AuthService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
