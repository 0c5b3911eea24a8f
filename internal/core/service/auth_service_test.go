package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stubs shared across service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byID[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	r.byEmail[u.Email] = &clone
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

// mustAddUser seeds the repo with a bcrypt-hashed password and returns the id.
func mustAddUser(t *testing.T, r *stubUserRepo, email, password string, admin, active bool) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u, err := r.Create(context.Background(), &domain.User{
		FirstName:       "Test",
		Email:           email,
		PasswordHash:    string(hash),
		IsAdministrator: admin,
		IsActive:        active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

// stubMatrixProvider returns a fixed matrix and remembers who asked.
type stubMatrixProvider struct {
	matrix   domain.PermissionMatrix
	err      error
	askedFor []string
}

func (p *stubMatrixProvider) MatrixFor(_ context.Context, actorID string) (domain.PermissionMatrix, error) {
	p.askedFor = append(p.askedFor, actorID)
	if p.err != nil {
		return nil, p.err
	}
	return p.matrix, nil
}

// captureSink records enqueued audit events synchronously.
type captureSink struct {
	events []domain.AuditEvent
}

func (s *captureSink) Enqueue(event domain.AuditEvent) {
	s.events = append(s.events, event)
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_HashesPasswordAndActivates(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMatrixProvider{}, "secret", time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "ana@example.com",
		Password:  "s3cret!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.PasswordHash == "s3cret!" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")) != nil {
		t.Error("stored hash does not verify against the password")
	}
	if !user.IsActive {
		t.Error("new accounts start active")
	}
	if user.IsAdministrator {
		t.Error("self-registration must never create administrators")
	}
}

func TestAuthService_Register_RejectsIncompleteInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMatrixProvider{}, "secret", time.Hour)

	inputs := []ports.RegisterInput{
		{FirstName: "Ana", Password: "pw"},         // no email
		{FirstName: "Ana", Email: "a@example.com"}, // no password
		{Email: "a@example.com", Password: "pw"},   // no name
	}
	for i, in := range inputs {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("input %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "dup@example.com", "pw", false, true)
	svc := NewAuthService(repo, &stubMatrixProvider{}, "secret", time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Dup", Email: "dup@example.com", Password: "pw",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_ReturnsSignedTokenAndMatrix(t *testing.T) {
	repo := newStubUserRepo()
	id := mustAddUser(t, repo, "ana@example.com", "pw123", false, true)
	matrices := &stubMatrixProvider{matrix: domain.PermissionMatrix{
		domain.ResourceProducts: {CanView: true},
	}}
	svc := NewAuthService(repo, matrices, "secret", time.Hour)

	session, err := svc.Login(context.Background(), "ana@example.com", "pw123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("session token missing")
	}
	if !session.Matrix[domain.ResourceProducts].CanView {
		t.Error("matrix not attached to session")
	}
	if len(matrices.askedFor) != 1 || matrices.askedFor[0] != id {
		t.Errorf("matrix fetched for wrong actor: %v", matrices.askedFor)
	}

	// The token must parse with the signing secret and carry the subject.
	parsed, err := jwt.Parse(session.Token, func(tok *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not validate: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != id {
		t.Errorf("sub claim: got %v, want %v", claims["sub"], id)
	}
	if claims["is_admin"] != false {
		t.Errorf("is_admin claim: got %v", claims["is_admin"])
	}
}

func TestAuthService_Login_AdminSkipsMatrixFetch(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "root@example.com", "pw", true, true)
	matrices := &stubMatrixProvider{}
	svc := NewAuthService(repo, matrices, "secret", time.Hour)

	session, err := svc.Login(context.Background(), "root@example.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matrices.askedFor) != 0 {
		t.Error("administrators have no matrix; none should be fetched")
	}
	if session.Matrix != nil {
		t.Error("admin session matrix must be nil")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "ana@example.com", "right", false, true)
	svc := NewAuthService(repo, &stubMatrixProvider{}, "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "ana@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "gone@example.com", "pw", false, false)
	svc := NewAuthService(repo, &stubMatrixProvider{}, "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "gone@example.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMatrixProvider{}, "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "nobody@example.com", "pw"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Me
// ---------------------------------------------------------------------------

func TestAuthService_Me_ResolvesUserAndMatrix(t *testing.T) {
	repo := newStubUserRepo()
	id := mustAddUser(t, repo, "ana@example.com", "pw", false, true)
	matrices := &stubMatrixProvider{matrix: domain.PermissionMatrix{
		domain.ResourceOrders: {CanView: true, CanCreate: true},
	}}
	svc := NewAuthService(repo, matrices, "secret", time.Hour)

	session, err := svc.Me(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.User.ID != id {
		t.Errorf("user: got %s", session.User.ID)
	}
	if !session.Matrix[domain.ResourceOrders].CanCreate {
		t.Error("matrix missing from session")
	}
}
