package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/types"
)

var (
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidVerificationToken is returned for unknown or expired
	// email verification tokens.
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
)

const verificationTokenTTL = 48 * time.Hour

// AuthService implements IAuthService on Postgres with bcrypt hashes and
// HS256 JWTs.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	email     IEmailService
}

// NewAuthService creates a new AuthService instance. The email service may
// be nil; verification mail then degrades to a log line.
func NewAuthService(db *gorm.DB, jwtSecret string, email IEmailService) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		email:     email,
	}
}

// Register creates the user, an empty profile, and kicks off email
// verification. The profile starts with no body stats: energy outputs stay
// off until the user fills them in.
func (s *AuthService) Register(ctx context.Context, name, email, password, username string) (*models.User, error) {
	var existingUser models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existingUser).Error; err == nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile := models.UserProfile{
			UserID:   user.ID,
			Username: username,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.GenerateVerificationToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if s.email != nil {
		if err := s.email.SendVerificationEmail(&user, token); err != nil {
			// Registration already succeeded; the user can re-request.
			log.Printf("[Auth] failed to send verification email to %s: %v", email, err)
		}
	}

	return &user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	var profile models.UserProfile
	username := ""
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		username = profile.Username
	}

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:          user.ID,
		Username:        username,
		IsEmailVerified: user.IsEmailVerified,
	}

	token, err := s.GenerateToken(claims)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// GenerateToken signs the claims with HS256.
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateVerificationToken creates and stores a random email verification
// token for the user.
func (s *AuthService) GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	record := models.EmailVerificationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store verification token: %w", err)
	}

	return token, nil
}

// ValidateVerificationToken marks the matching user as verified and
// consumes the token.
func (s *AuthService) ValidateVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var record models.EmailVerificationToken
	err := s.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerificationToken
		}
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", record.UserID).Error; err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		user.IsEmailVerified = true
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}
		if err := tx.Delete(&record).Error; err != nil {
			return fmt.Errorf("failed to consume verification token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail looks up a user by email address.
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
