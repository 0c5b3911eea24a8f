package ports

import (
	"context"

	"github.com/backoffice/console-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a console account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Session is returned on successful login: the signed token plus the actor's
// permission matrix, rebuilt fresh so the client never starts from stale grants.
type Session struct {
	Token  string
	User   *domain.User
	Matrix domain.PermissionMatrix
}

// AuthService implements registration, login and session introspection.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Me resolves the current session's user and permission matrix.
	Me(ctx context.Context, userID string) (*Session, error)
}
