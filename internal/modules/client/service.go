// README: Client service: quick search, paginated listing, and edits.
package client

import (
	"context"
	"math"
	"strings"

	"physio/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Search(ctx context.Context, term string) ([]Summary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrBadRequest
	}
	results, err := s.store.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []Summary{}
	}
	return results, nil
}

func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	clients, total, err := s.store.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []Client{}
	}
	return &Page{
		Clients:     clients,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Client, error) {
	if strings.TrimSpace(cmd.Fullname) == "" {
		return nil, ErrBadRequest
	}
	return s.store.Create(ctx, cmd)
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*Client, error) {
	if cmd.ID == "" {
		return nil, ErrBadRequest
	}
	return s.store.Update(ctx, cmd)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if id == "" {
		return ErrBadRequest
	}
	return s.store.Delete(ctx, id)
}
