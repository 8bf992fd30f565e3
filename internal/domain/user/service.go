package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes roster queries used by the dashboard aggregation.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	CountActive(ctx context.Context) (int, error)
	ActiveRoster(ctx context.Context) ([]Ref, error)
	FlaggedRoster(ctx context.Context) ([]Ref, error)
	SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates the user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CountActive(ctx context.Context) (int, error) {
	n, err := s.repo.CountActive(ctx)
	return int(n), err
}

func (s *service) ActiveRoster(ctx context.Context) ([]Ref, error) {
	users, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toRefs(users), nil
}

func (s *service) FlaggedRoster(ctx context.Context) ([]Ref, error) {
	users, err := s.repo.ListFlagged(ctx)
	if err != nil {
		return nil, err
	}
	return toRefs(users), nil
}

func (s *service) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error {
	if err := s.repo.SetFlagged(ctx, id, flagged); err != nil {
		s.logger.Error("Failed to update flag state",
			zap.Error(err),
			zap.String("user_id", id.String()))
		return err
	}
	return nil
}

func toRefs(users []User) []Ref {
	refs := make([]Ref, 0, len(users))
	for i := range users {
		refs = append(refs, users[i].ToRef())
	}
	return refs
}
