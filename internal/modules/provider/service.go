// README: Provider service.
package provider

import (
	"context"
	"strings"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Provider, error) {
	providers, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []Provider{}
	}
	return providers, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Provider, error) {
	if strings.TrimSpace(cmd.Fullname) == "" {
		return nil, ErrBadRequest
	}
	return s.store.Create(ctx, cmd)
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) error {
	if cmd.ID == "" || strings.TrimSpace(cmd.Fullname) == "" {
		return ErrBadRequest
	}
	return s.store.Update(ctx, cmd)
}
