package trainer

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]ListItem, int, error)
	GetByID(ctx context.Context, id int) (*ListItem, error)
	ListUpcomingSlots(ctx context.Context, trainerID, limit int) ([]BusySlot, error)
	ListSpecialties(ctx context.Context) ([]string, error)
	RecomputeCounters(ctx context.Context) (int, error)
}
