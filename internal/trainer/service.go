package trainer

import (
	"context"

	"disciplix/internal/api"
	"disciplix/internal/review"
)

const (
	defaultLimit       = 12
	maxLimit           = 50
	detailReviewLimit  = 10
	detailSessionLimit = 10
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ListItem, api.Pagination, error)
	GetDetail(ctx context.Context, id int) (*Detail, error)
	ListSpecialties(ctx context.Context) ([]string, error)
}

type service struct {
	repo    Repository
	reviews review.Repository
}

func NewService(repo Repository, reviews review.Repository) Service {
	return &service{repo: repo, reviews: reviews}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ListItem, api.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, api.Pagination{}, err
	}
	return items, api.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *service) GetDetail(ctx context.Context, id int) (*Detail, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListRecentByTrainer(ctx, id, detailReviewLimit)
	if err != nil {
		return nil, err
	}
	slots, err := s.repo.ListUpcomingSlots(ctx, id, detailSessionLimit)
	if err != nil {
		return nil, err
	}

	return &Detail{ListItem: *item, Reviews: reviews, UpcomingSessions: slots}, nil
}

func (s *service) ListSpecialties(ctx context.Context) ([]string, error) {
	return s.repo.ListSpecialties(ctx)
}
