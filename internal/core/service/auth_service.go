package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// AuthService implements registration, login and session introspection.
type AuthService struct {
	users     ports.UserRepository
	matrices  ports.MatrixProvider
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, matrices ports.MatrixProvider, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, matrices: matrices, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a regular (non-administrator) account. Administrators are
// provisioned out of band, never through self-registration.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

// Login verifies credentials and returns a session: signed token, user, and
// the user's permission matrix rebuilt from the source of truth. A stale
// client-side matrix never survives a login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	matrix, err := s.matrixFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return &ports.Session{Token: token, User: user, Matrix: matrix}, nil
}

// Me resolves the current session's user and matrix.
func (s *AuthService) Me(ctx context.Context, userID string) (*ports.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	matrix, err := s.matrixFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ports.Session{User: user, Matrix: matrix}, nil
}

// matrixFor skips the matrix fetch for administrators: they have no matrix
// and the engine never consults one for them.
func (s *AuthService) matrixFor(ctx context.Context, user *domain.User) (domain.PermissionMatrix, error) {
	if user.IsAdministrator {
		return nil, nil
	}
	return s.matrices.MatrixFor(ctx, user.ID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdministrator,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
