// README: Catalog service: definitions/rates/specialties management and slug generation.
package catalog

import (
	"context"
	"regexp"
	"strings"

	"physio/internal/types"
)

type Service struct {
	store *Store
	cache *Cache
}

func NewService(store *Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

func (s *Service) ListServices(ctx context.Context) ([]ServiceDefinition, error) {
	defs, err := s.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if defs == nil {
		defs = []ServiceDefinition{}
	}
	return defs, nil
}

func (s *Service) CreateService(ctx context.Context, cmd CreateServiceCommand) (*ServiceDefinition, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrBadRequest
	}
	return s.store.CreateService(ctx, cmd)
}

func (s *Service) UpdateService(ctx context.Context, cmd UpdateServiceCommand) (*ServiceDefinition, error) {
	if cmd.ID == "" || strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrBadRequest
	}
	return s.store.UpdateService(ctx, cmd)
}

func (s *Service) DeleteService(ctx context.Context, id types.ID) error {
	if id == "" {
		return ErrBadRequest
	}
	return s.store.DeleteService(ctx, id)
}

func (s *Service) AddRate(ctx context.Context, tier RateTier) (*RateTier, error) {
	if tier.ServiceDefinitionID == "" || tier.DurationMinutes <= 0 {
		return nil, ErrBadRequest
	}
	return s.store.AddRate(ctx, tier)
}

func (s *Service) DeleteRate(ctx context.Context, id types.ID) error {
	if id == "" {
		return ErrBadRequest
	}
	return s.store.DeleteRate(ctx, id)
}

func (s *Service) ListSpecialties(ctx context.Context) ([]Specialty, error) {
	if cached, ok := s.cache.GetSpecialties(ctx); ok {
		return cached, nil
	}
	specialties, err := s.store.ListSpecialties(ctx)
	if err != nil {
		return nil, err
	}
	if specialties == nil {
		specialties = []Specialty{}
	}
	s.cache.SetSpecialties(ctx, specialties)
	return specialties, nil
}

func (s *Service) CreateSpecialty(ctx context.Context, cmd CreateSpecialtyCommand) (*Specialty, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrBadRequest
	}
	sp, err := s.store.CreateSpecialty(ctx, cmd.Name, Slugify(cmd.Name), cmd.Description)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateSpecialties(ctx)
	return sp, nil
}

func (s *Service) UpdateSpecialty(ctx context.Context, cmd UpdateSpecialtyCommand) (*Specialty, error) {
	if cmd.ID == "" {
		return nil, ErrBadRequest
	}
	var slug *string
	if cmd.Name != nil {
		v := Slugify(*cmd.Name)
		slug = &v
	}
	sp, err := s.store.UpdateSpecialty(ctx, cmd, slug)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateSpecialties(ctx)
	return sp, nil
}

func (s *Service) DeactivateSpecialty(ctx context.Context, id types.ID) error {
	if id == "" {
		return ErrBadRequest
	}
	if err := s.store.DeactivateSpecialty(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateSpecialties(ctx)
	return nil
}

func (s *Service) ListStatuses(ctx context.Context) ([]Status, error) {
	if cached, ok := s.cache.GetStatuses(ctx); ok {
		return cached, nil
	}
	statuses, err := s.store.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	if statuses == nil {
		statuses = []Status{}
	}
	s.cache.SetStatuses(ctx, statuses)
	return statuses, nil
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
	slugTrim     = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns a specialty name into its URL-friendly unique slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	return slugTrim.ReplaceAllString(slug, "")
}
