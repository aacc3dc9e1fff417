package service

import (
	"context"

	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/rs/zerolog"
)

// QuestionService manages the conduct criteria: questions, their selectable
// answers, and the type/group categories.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.AnswerRepository
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Form assembles the active questions with their active answers for the
// submission form. Answers sharing the same content within one question are
// collapsed to the first occurrence.
func (s *QuestionService) Form(ctx context.Context) ([]model.QuestionWithAnswers, error) {
	questions, err := s.questionRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	byQuestion := map[int][]model.Answer{}
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}

	form := make([]model.QuestionWithAnswers, len(questions))
	for i, q := range questions {
		form[i] = model.QuestionWithAnswers{
			Question: q,
			Answers:  dedupeAnswers(byQuestion[q.ID]),
		}
	}
	return form, nil
}

// List retrieves questions; includeInactive also returns soft-deleted ones.
func (s *QuestionService) List(ctx context.Context, includeInactive bool) ([]model.Question, error) {
	return s.questionRepo.List(ctx, includeInactive)
}

// Get retrieves one question by id.
func (s *QuestionService) Get(ctx context.Context, id int) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create inserts a new question.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	question := &model.Question{
		Content:  req.Content,
		OrderNum: req.OrderNum,
		TypeID:   req.TypeID,
		GroupID:  req.GroupID,
		Active:   true,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Update replaces a question's fields.
func (s *QuestionService) Update(ctx context.Context, id int, req *model.CreateQuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	question.Content = req.Content
	question.OrderNum = req.OrderNum
	question.TypeID = req.TypeID
	question.GroupID = req.GroupID
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete soft-deletes a question so stored submissions keep their rows.
func (s *QuestionService) Delete(ctx context.Context, id int) error {
	return s.questionRepo.SoftDelete(ctx, id)
}

// ListTypes retrieves the question type categories.
func (s *QuestionService) ListTypes(ctx context.Context) ([]model.QuestionType, error) {
	return s.questionRepo.ListTypes(ctx)
}

// ListGroups retrieves the question group categories.
func (s *QuestionService) ListGroups(ctx context.Context) ([]model.QuestionGroup, error) {
	return s.questionRepo.ListGroups(ctx)
}

// CreateType inserts a question type.
func (s *QuestionService) CreateType(ctx context.Context, req *model.CreateCategoryRequest) (*model.QuestionType, error) {
	t := &model.QuestionType{Name: req.Name}
	if err := s.questionRepo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateGroup inserts a question group.
func (s *QuestionService) CreateGroup(ctx context.Context, req *model.CreateCategoryRequest) (*model.QuestionGroup, error) {
	g := &model.QuestionGroup{Name: req.Name}
	if err := s.questionRepo.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListAnswers retrieves the answers of one question, inactive included.
func (s *QuestionService) ListAnswers(ctx context.Context, questionID int) ([]model.Answer, error) {
	return s.answerRepo.ListByQuestion(ctx, questionID)
}

// CreateAnswer inserts a new answer for a question.
func (s *QuestionService) CreateAnswer(ctx context.Context, req *model.CreateAnswerRequest) (*model.Answer, error) {
	if _, err := s.questionRepo.GetByID(ctx, req.QuestionID); err != nil {
		return nil, err
	}
	answer := &model.Answer{
		QuestionID: req.QuestionID,
		Content:    req.Content,
		Score:      *req.Score,
		Active:     true,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// UpdateAnswer replaces an answer's fields. Changing the score retroactively
// changes every stored total that references this answer.
func (s *QuestionService) UpdateAnswer(ctx context.Context, id int, req *model.CreateAnswerRequest) (*model.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	answer.QuestionID = req.QuestionID
	answer.Content = req.Content
	answer.Score = *req.Score
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}
	s.log.Info().Int("answer_id", id).Int("score", answer.Score).Msg("answer updated")
	return answer, nil
}

// DeleteAnswer soft-deletes an answer. It disappears from the submission
// form, but stored lines referencing it keep contributing to totals.
func (s *QuestionService) DeleteAnswer(ctx context.Context, id int) error {
	return s.answerRepo.SoftDelete(ctx, id)
}

// dedupeAnswers keeps the first answer for each distinct content string,
// preserving order.
func dedupeAnswers(answers []model.Answer) []model.Answer {
	if len(answers) == 0 {
		return answers
	}
	seen := map[string]bool{}
	out := make([]model.Answer, 0, len(answers))
	for _, a := range answers {
		if seen[a.Content] {
			continue
		}
		seen[a.Content] = true
		out = append(out, a)
	}
	return out
}
