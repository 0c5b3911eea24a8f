package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice/console-api/internal/core/domain"
	"github.com/backoffice/console-api/internal/core/ports"
)

// ClientService implements customer record management.
type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

func (s *ClientService) Create(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := &domain.Client{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", created.ID).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id string, in ports.ClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.FirstName = in.FirstName
	client.LastName = in.LastName
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, client)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
