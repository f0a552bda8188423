package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agrisphere/database"
	"agrisphere/models"
	"agrisphere/utils"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ValidationError is a user-correctable problem with a submitted form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const minPasswordLength = 6

// AuthService issues short-lived JWT access tokens and single-use refresh
// tokens. Only a SHA-256 of each refresh token is stored.
type AuthService struct {
	Store      database.Store
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a farmer or admin account.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email, ok := utils.NormalizeEmail(req.Email)
	if !ok {
		return nil, &ValidationError{Message: "A valid email is required"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters", minPasswordLength)}
	}
	role, ok := utils.ValidateAndNormalizeRole(req.Role)
	if !ok {
		return nil, &ValidationError{Message: "Role must be farmer or admin"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{ID: uuid.NewString(), Email: email, Role: role}
	if err := s.Store.CreateUser(ctx, user, string(hashedPassword)); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a fresh token pair.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, models.TokenPair, error) {
	email, _ := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, models.TokenPair{}, &ValidationError{Message: "Email and password are required"}
	}

	user, passwordHash, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, models.TokenPair{}, ErrInvalidCredentials
		}
		return nil, models.TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented one is consumed and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, ErrInvalidRefreshToken
	}
	userID, err := s.Store.ConsumeRefreshToken(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.TokenPair{}, ErrInvalidRefreshToken
		}
		return models.TokenPair{}, err
	}
	user, err := s.Store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.TokenPair{}, ErrInvalidRefreshToken
		}
		return models.TokenPair{}, err
	}
	return s.issue(ctx, user)
}

// Logout revokes the refresh token. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return &ValidationError{Message: "refreshToken is required"}
	}
	return s.Store.DeleteRefreshToken(ctx, hashToken(refreshToken))
}

// ParseAccessToken validates an HS256 access token and returns its claims.
func (s *AuthService) ParseAccessToken(tokenString string) (*models.JwtClaims, error) {
	return ParseAccessToken(tokenString, s.Secret)
}

// ParseAccessToken validates an HS256 access token signed with secret.
func ParseAccessToken(tokenString string, secret []byte) (*models.JwtClaims, error) {
	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	return claims, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (models.TokenPair, error) {
	now := s.now()

	access, err := s.createJWT(user.ID, user.Role, now)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("could not sign token: %w", err)
	}

	refresh := uuid.NewString() + uuid.NewString()
	if err := s.Store.SaveRefreshToken(ctx, hashToken(refresh), user.ID, now.Add(s.RefreshTTL)); err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
	}, nil
}

func (s *AuthService) createJWT(userID, role string, now time.Time) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// User returns the account behind an access token's subject.
func (s *AuthService) User(ctx context.Context, userID string) (*models.User, error) {
	return s.Store.GetUserByID(ctx, userID)
}
