package repository

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnswerRepository handles answer catalogue data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// GetByID retrieves an answer by ID.
func (r *AnswerRepository) GetByID(ctx context.Context, id int) (*model.Answer, error) {
	a := &model.Answer{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_id, content, score, active, created_at, updated_at
		 FROM answers WHERE id = $1`, id,
	).Scan(&a.ID, &a.QuestionID, &a.Content, &a.Score, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActive retrieves all active answers ordered by question and id.
func (r *AnswerRepository) ListActive(ctx context.Context) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, content, score, active, created_at, updated_at
		 FROM answers WHERE active ORDER BY question_id, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Content, &a.Score, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// ListByQuestion retrieves all answers of one question.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, content, score, active, created_at, updated_at
		 FROM answers WHERE question_id = $1 ORDER BY id`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Content, &a.Score, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// ScoresByIDs retrieves the score lookup for the given answer IDs. IDs that
// do not exist are simply absent from the map; the scoring function treats
// them as zero.
func (r *AnswerRepository) ScoresByIDs(ctx context.Context, ids []int) (map[int]int, error) {
	scores := make(map[int]int, len(ids))
	if len(ids) == 0 {
		return scores, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, score FROM answers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, score int
		if err := rows.Scan(&id, &score); err != nil {
			return nil, err
		}
		scores[id] = score
	}
	return scores, rows.Err()
}

// Create inserts a new answer.
func (r *AnswerRepository) Create(ctx context.Context, a *model.Answer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answers (question_id, content, score, active)
		 VALUES ($1, $2, $3, TRUE)
		 RETURNING id, active, created_at, updated_at`,
		a.QuestionID, a.Content, a.Score,
	).Scan(&a.ID, &a.Active, &a.CreatedAt, &a.UpdatedAt)
}

// Update modifies an existing answer. Score edits retroactively change every
// computed total that references this answer.
func (r *AnswerRepository) Update(ctx context.Context, a *model.Answer) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answers SET question_id = $1, content = $2, score = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		a.QuestionID, a.Content, a.Score, a.ID,
	)
	return err
}

// SoftDelete marks an answer inactive without removing it, so historic
// submissions keep their score contribution.
func (r *AnswerRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answers SET active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}
