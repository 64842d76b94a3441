package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrTrainerNotFound = errors.New("trainer not found")

// sortColumns whitelists the directory sort keys. Anything else falls back
// to rating.
var sortColumns = map[string]string{
	"rating":       "t.rating",
	"price":        "t.hourly_rate",
	"experience":   "t.experience_years",
	"sessionCount": "t.total_sessions",
}

const listColumns = `t.id, t.user_id, t.bio, t.specialties, t.hourly_rate, t.currency,
	t.experience_years, t.availability, t.is_verified, t.is_available,
	t.rating, t.review_count, t.total_sessions, t.created_at,
	u.name, u.avatar`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]ListItem, int, error) {
	conds := []string{"t.is_verified = TRUE", "t.is_available = TRUE"}
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Specialty != "" {
		conds = append(conds, fmt.Sprintf("%s = ANY(t.specialties)", arg(filter.Specialty)))
	}
	if filter.MinRate > 0 {
		conds = append(conds, fmt.Sprintf("t.hourly_rate >= %s", arg(filter.MinRate)))
	}
	if filter.MaxRate > 0 {
		conds = append(conds, fmt.Sprintf("t.hourly_rate <= %s", arg(filter.MaxRate)))
	}
	if filter.MinRating > 0 {
		conds = append(conds, fmt.Sprintf("t.rating >= %s", arg(filter.MinRating)))
	}
	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		needle := arg(filter.Search)
		conds = append(conds, fmt.Sprintf(
			"(u.name ILIKE %s OR t.bio ILIKE %s OR %s = ANY(t.specialties))",
			pattern, pattern, needle))
	}

	where := strings.Join(conds, " AND ")
	from := "FROM trainer_profiles t JOIN users u ON u.id = t.user_id WHERE " + where

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+from, args...); err != nil {
		return nil, 0, err
	}

	orderCol, ok := sortColumns[filter.SortBy]
	if !ok {
		orderCol = "t.rating"
	}
	dir := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		dir = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, t.id ASC LIMIT %s OFFSET %s",
		listColumns, from, orderCol, dir, arg(filter.Limit), arg(offset))

	items := []ListItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*ListItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM trainer_profiles t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1`, listColumns)

	var item ListItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListUpcomingSlots(ctx context.Context, trainerID, limit int) ([]BusySlot, error) {
	query := `SELECT scheduled_at, duration_minutes
		FROM training_sessions
		WHERE trainer_id = $1
		  AND status IN ('SCHEDULED', 'IN_PROGRESS')
		  AND scheduled_at >= NOW()
		ORDER BY scheduled_at ASC
		LIMIT $2`

	slots := []BusySlot{}
	if err := r.db.SelectContext(ctx, &slots, query, trainerID, limit); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) ListSpecialties(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT unnest(specialties) AS specialty
		FROM trainer_profiles
		WHERE is_verified = TRUE AND is_available = TRUE
		ORDER BY specialty ASC`

	specialties := []string{}
	if err := r.db.SelectContext(ctx, &specialties, query); err != nil {
		return nil, err
	}
	return specialties, nil
}

// RecomputeCounters refreshes the denormalized rating and session counters
// from the source tables. Safe to run repeatedly.
func (r *repository) RecomputeCounters(ctx context.Context) (int, error) {
	query := `UPDATE trainer_profiles t SET
		rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE trainer_id = t.id), 0),
		review_count = (SELECT COUNT(*) FROM reviews WHERE trainer_id = t.id),
		total_sessions = (SELECT COUNT(*) FROM training_sessions WHERE trainer_id = t.id AND status = 'COMPLETED')`

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
