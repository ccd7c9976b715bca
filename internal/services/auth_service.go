package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vamsi1219/task-flow-manager-duo/internal/config"
	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

// Compared against when the email lookup misses so an unknown email costs
// the same bcrypt work as a wrong password.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthService struct {
	users repo.UserStore
	cfg   *config.Config
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
}

func NewAuthService(users repo.UserStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates a new account. Role gating happens at the handler; by the
// time it reaches here the role is already either employee or an
// admin-approved value.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if len(password) < s.cfg.PasswordMinLen {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLen), nil)
	}
	if !role.Valid() {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "role must be admin or employee", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("could not secure password")
	}

	user, err := s.users.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeDuplicateEmail, "email already in use", nil)
		}
		return nil, utils.Internal("could not create user")
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password return the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, invalidCredentials()
		}
		return nil, utils.Internal("could not look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	token, expiresIn, err := s.issueToken(user)
	if err != nil {
		return nil, utils.Internal("could not generate token")
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}

// Resolve turns a bearer token into the user it was issued to. Any failure,
// including a token whose subject no longer exists, is UNAUTHENTICATED.
func (s *AuthService) Resolve(ctx context.Context, tokenStr string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, utils.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, utils.Unauthenticated("invalid token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, utils.Unauthenticated("invalid token")
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, int64, error) {
	issuedAt := time.Now()
	expiresAt := issuedAt.Add(s.cfg.JWTExpiry)
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.cfg.JWTExpiry.Seconds()), nil
}

func invalidCredentials() *utils.AppError {
	return utils.NewAppError(http.StatusBadRequest, utils.CodeInvalidCredentials, "invalid email or password", nil)
}
