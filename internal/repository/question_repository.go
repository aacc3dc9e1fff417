package repository

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question catalogue data access, including the
// type and group categories.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, content, order_num, type_id, group_id, active, created_at, updated_at
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Content, &q.OrderNum, &q.TypeID, &q.GroupID, &q.Active, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// List retrieves all questions ordered by order_num. Soft-deleted questions
// are included only when includeInactive is set.
func (r *QuestionRepository) List(ctx context.Context, includeInactive bool) ([]model.Question, error) {
	query := `SELECT id, content, order_num, type_id, group_id, active, created_at, updated_at FROM questions`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY order_num, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Content, &q.OrderNum, &q.TypeID, &q.GroupID, &q.Active, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (content, order_num, type_id, group_id, active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, active, created_at, updated_at`,
		q.Content, q.OrderNum, q.TypeID, q.GroupID,
	).Scan(&q.ID, &q.Active, &q.CreatedAt, &q.UpdatedAt)
}

// Update modifies an existing question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET content = $1, order_num = $2, type_id = $3, group_id = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		q.Content, q.OrderNum, q.TypeID, q.GroupID, q.ID,
	)
	return err
}

// SoftDelete marks a question inactive. Past submissions keep referencing
// its answers, so rows are never removed.
func (r *QuestionRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

// ─── Categories ─────────────────────────────────────────────────────────────

// ListTypes retrieves all question types.
func (r *QuestionRepository) ListTypes(ctx context.Context) ([]model.QuestionType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM question_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []model.QuestionType
	for rows.Next() {
		var t model.QuestionType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ListGroups retrieves all question groups.
func (r *QuestionRepository) ListGroups(ctx context.Context) ([]model.QuestionGroup, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM question_groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.QuestionGroup
	for rows.Next() {
		var g model.QuestionGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreateType inserts a new question type.
func (r *QuestionRepository) CreateType(ctx context.Context, t *model.QuestionType) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

// CreateGroup inserts a new question group.
func (r *QuestionRepository) CreateGroup(ctx context.Context, g *model.QuestionGroup) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_groups (name) VALUES ($1) RETURNING id`, g.Name).Scan(&g.ID)
}
