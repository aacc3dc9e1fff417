package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository aggregates counts for the admin dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the headline entity counts in one round trip.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalLecturers, totalClasses, totalQuestions int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM lecturers),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM questions WHERE active)`,
	).Scan(&totalStudents, &totalLecturers, &totalClasses, &totalQuestions)
	return
}
