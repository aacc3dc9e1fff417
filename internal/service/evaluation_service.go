package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/repository"
	"github.com/dnc-edu/conduct-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	// ErrSemesterClosed means the relevant submission window has passed.
	ErrSemesterClosed = errors.New("semester window is closed")
	// ErrSemesterInactive means the semester is disabled outright.
	ErrSemesterInactive = errors.New("semester is inactive")
	// ErrNotAllowed means the actor has no relationship with the target
	// student or class.
	ErrNotAllowed = errors.New("actor may not access this resource")
)

// Actor identifies who is performing an evaluation operation. ClassID is only
// set for students.
type Actor struct {
	Role    model.Role
	UserID  int
	ClassID int
}

// StudentDirectory resolves student profiles for access decisions and the
// class views.
type StudentDirectory interface {
	GetByID(ctx context.Context, id int) (*model.Profile, error)
	ListByClass(ctx context.Context, classID int) ([]model.Profile, error)
}

// ClassRoster answers whether a lecturer is assigned to a class.
type ClassRoster interface {
	IsLecturerOf(ctx context.Context, classID, lecturerID int) (bool, error)
}

// EvaluationService implements submission, scoring, and the class views.
type EvaluationService struct {
	cfg            *config.Config
	evaluationRepo *repository.EvaluationRepository
	answerRepo     *repository.AnswerRepository
	semesterRepo   *repository.SemesterRepository
	studentRepo    StudentDirectory
	classRepo      ClassRoster
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewEvaluationService creates a new EvaluationService.
func NewEvaluationService(
	cfg *config.Config,
	evaluationRepo *repository.EvaluationRepository,
	answerRepo *repository.AnswerRepository,
	semesterRepo *repository.SemesterRepository,
	studentRepo StudentDirectory,
	classRepo ClassRoster,
	rdb *redis.Client,
	log zerolog.Logger,
) *EvaluationService {
	return &EvaluationService{
		cfg:            cfg,
		evaluationRepo: evaluationRepo,
		answerRepo:     answerRepo,
		semesterRepo:   semesterRepo,
		studentRepo:    studentRepo,
		classRepo:      classRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "evaluation_service").Logger(),
	}
}

// Submit replaces the target student's evaluation for one semester and
// returns the resulting submission event. Resubmission is a full replacement;
// an empty detail list clears the submission.
func (s *EvaluationService) Submit(ctx context.Context, actor Actor, req *model.SubmitEvaluationRequest) (*model.SubmissionEvent, error) {
	studentID := req.StudentID
	if studentID == 0 {
		if actor.Role != model.RoleStudent {
			return nil, ErrNotAllowed
		}
		studentID = actor.UserID
	}
	selfService := actor.Role == model.RoleStudent && studentID == actor.UserID

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !selfService {
		if err := s.checkReviewAccess(ctx, actor, student); err != nil {
			return nil, err
		}
	}

	semester, err := s.semesterRepo.GetByID(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWindow(semester, actor, selfService); err != nil {
		return nil, err
	}

	scores, err := s.answerRepo.ScoresByIDs(ctx, answerIDs(req.Details))
	if err != nil {
		return nil, err
	}

	details := normalizeDetails(req.Details, scores)
	if err := s.evaluationRepo.Replace(ctx, studentID, semester.ID, details); err != nil {
		return nil, err
	}

	total := scoring.Total(toSelections(details), scores)
	event := &model.SubmissionEvent{
		StudentID:   student.ID,
		StudentName: student.Name,
		SemesterID:  semester.ID,
		TotalScore:  total,
		SubmittedAt: time.Now(),
	}
	if student.ClassID != nil {
		event.ClassID = *student.ClassID
		s.notify(ctx, event)
	}

	s.log.Info().
		Int("student_id", student.ID).
		Int("semester_id", semester.ID).
		Int("total", total).
		Bool("self_service", selfService).
		Msg("evaluation replaced")

	return event, nil
}

// StudentEvaluation retrieves the stored lines and the current total for one
// (student, semester) pair. The total reflects answer scores as they are now.
func (s *EvaluationService) StudentEvaluation(ctx context.Context, actor Actor, studentID, semesterID int) ([]model.EvaluationLine, int, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.checkViewAccess(ctx, actor, student); err != nil {
		return nil, 0, err
	}

	lines, err := s.evaluationRepo.ListLines(ctx, studentID, semesterID)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int, len(lines))
	selections := make([]scoring.Selection, len(lines))
	for i, l := range lines {
		ids[i] = l.AnswerID
		selections[i] = scoring.Selection{AnswerID: l.AnswerID, Amount: l.Amount}
	}
	scores, err := s.answerRepo.ScoresByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	return lines, scoring.Total(selections, scores), nil
}

// History computes the per-semester conduct totals of one student, most
// recent semester first.
func (s *EvaluationService) History(ctx context.Context, actor Actor, studentID int) ([]model.HistoryEntry, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkViewAccess(ctx, actor, student); err != nil {
		return nil, err
	}

	lines, err := s.evaluationRepo.ListStudentLines(ctx, studentID)
	if err != nil {
		return nil, err
	}

	semesterIDs := make([]int, 0, len(lines))
	seen := map[int]bool{}
	for _, l := range lines {
		if !seen[l.SemesterID] {
			seen[l.SemesterID] = true
			semesterIDs = append(semesterIDs, l.SemesterID)
		}
	}
	semesters, err := s.semesterRepo.MapByIDs(ctx, semesterIDs)
	if err != nil {
		return nil, err
	}

	return buildHistory(lines, semesters), nil
}

// ClassSummary retrieves the per-student totals of one class within one
// semester, reading through the Redis cache when possible.
func (s *EvaluationService) ClassSummary(ctx context.Context, actor Actor, classID, semesterID int) ([]model.ClassSummaryEntry, error) {
	if err := s.checkClassAccess(ctx, actor, classID); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, config.CacheKey.ClassSummaryKey(classID, semesterID)).Result()
		if err == nil {
			var cached []model.ClassSummaryEntry
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	return s.RefreshClassSummary(ctx, classID, semesterID)
}

// RefreshClassSummary recomputes one class summary from the database and
// rewrites its cache entry. Called on cache miss and by the summary worker.
func (s *EvaluationService) RefreshClassSummary(ctx context.Context, classID, semesterID int) ([]model.ClassSummaryEntry, error) {
	students, err := s.studentRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	lines, err := s.evaluationRepo.ListClassLines(ctx, classID, semesterID)
	if err != nil {
		return nil, err
	}

	summary := buildClassSummary(students, lines)

	if s.rdb != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.rdb.Set(ctx,
				config.CacheKey.ClassSummaryKey(classID, semesterID),
				raw, s.cfg.SummaryCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Int("class_id", classID).Msg("failed to cache class summary")
			}
		}
	}

	return summary, nil
}

// CheckClassAccess reports whether the actor may observe a class feed. Used
// by the SSE and websocket endpoints before they subscribe.
func (s *EvaluationService) CheckClassAccess(ctx context.Context, actor Actor, classID int) error {
	return s.checkClassAccess(ctx, actor, classID)
}

func (s *EvaluationService) checkWindow(semester *model.Semester, actor Actor, selfService bool) error {
	if !semester.Active {
		return ErrSemesterInactive
	}
	if actor.Role == model.RoleAdmin {
		return nil
	}
	now := time.Now()
	if selfService {
		if !semester.OpenForStudent(now) {
			return ErrSemesterClosed
		}
		return nil
	}
	if !semester.OpenForReview(now) {
		return ErrSemesterClosed
	}
	return nil
}

// checkReviewAccess gates on-behalf submission: admins, the class's homeroom
// lecturer, and the class monitor.
func (s *EvaluationService) checkReviewAccess(ctx context.Context, actor Actor, student *model.Profile) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleLecturer:
		if student.ClassID == nil {
			return ErrNotAllowed
		}
		ok, err := s.classRepo.IsLecturerOf(ctx, *student.ClassID, actor.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAllowed
		}
		return nil
	case model.RoleStudent:
		if student.ClassID == nil || *student.ClassID != actor.ClassID {
			return ErrNotAllowed
		}
		monitor, err := s.studentRepo.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if !monitor.IsMonitor {
			return ErrNotAllowed
		}
		return nil
	default:
		return ErrNotAllowed
	}
}

func (s *EvaluationService) checkViewAccess(ctx context.Context, actor Actor, student *model.Profile) error {
	if actor.Role == model.RoleStudent && student.ID == actor.UserID {
		return nil
	}
	return s.checkReviewAccess(ctx, actor, student)
}

func (s *EvaluationService) checkClassAccess(ctx context.Context, actor Actor, classID int) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleLecturer:
		ok, err := s.classRepo.IsLecturerOf(ctx, classID, actor.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAllowed
		}
		return nil
	case model.RoleStudent:
		if actor.ClassID != classID {
			return ErrNotAllowed
		}
		// Class-wide totals are monitor privilege; a plain classmate only
		// sees their own submission.
		monitor, err := s.studentRepo.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if !monitor.IsMonitor {
			return ErrNotAllowed
		}
		return nil
	default:
		return ErrNotAllowed
	}
}

// notify publishes the submission event for live feeds and queues the class
// summary for recomputation. Both are best effort.
func (s *EvaluationService) notify(ctx context.Context, event *model.SubmissionEvent) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.ClassSubmissionChannel(event.ClassID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("class_id", event.ClassID).Msg("failed to publish submission event")
	}
	job := fmt.Sprintf("%d:%d", event.ClassID, event.SemesterID)
	if err := s.rdb.RPush(ctx, config.WorkerKey.SummaryRefreshQueue, job).Err(); err != nil {
		s.log.Warn().Err(err).Str("job", job).Msg("failed to enqueue summary refresh")
	}
}

func answerIDs(details []model.EvaluationDetail) []int {
	ids := make([]int, len(details))
	for i, d := range details {
		ids[i] = d.AnswerID
	}
	return ids
}

func toSelections(details []model.EvaluationDetail) []scoring.Selection {
	selections := make([]scoring.Selection, len(details))
	for i, d := range details {
		selections[i] = scoring.Selection{AnswerID: d.AnswerID, Amount: d.Amount}
	}
	return selections
}

// normalizeDetails drops selections of answers that no longer exist and
// collapses duplicate answer ids, keeping the last occurrence. The result is
// safe to store under the (student, semester, answer) unique constraint.
func normalizeDetails(details []model.EvaluationDetail, scores map[int]int) []model.EvaluationDetail {
	index := map[int]int{}
	out := make([]model.EvaluationDetail, 0, len(details))
	for _, d := range details {
		if _, ok := scores[d.AnswerID]; !ok {
			continue
		}
		if d.Amount < 1 {
			d.Amount = 1
		}
		if pos, ok := index[d.AnswerID]; ok {
			out[pos] = d
			continue
		}
		index[d.AnswerID] = len(out)
		out = append(out, d)
	}
	return out
}

// buildHistory groups a student's lines per semester and computes each
// semester's total under the current answer scores. Lines whose answer has
// been removed contribute nothing. Semesters arrive most recent first and
// stay that way.
func buildHistory(lines []repository.StudentLine, semesters map[int]model.Semester) []model.HistoryEntry {
	// Non-nil so an empty history serializes as [] rather than null.
	entries := []model.HistoryEntry{}
	byID := map[int]int{}

	for _, l := range lines {
		pos, ok := byID[l.SemesterID]
		if !ok {
			entry := model.HistoryEntry{SemesterID: l.SemesterID}
			if sem, found := semesters[l.SemesterID]; found {
				entry.SemesterName = sem.Name
				entry.SchoolYear = sem.SchoolYear
			}
			pos = len(entries)
			byID[l.SemesterID] = pos
			entries = append(entries, entry)
		}
		if l.Score != nil {
			entries[pos].TotalScore += lineScore(*l.Score, l.Amount)
		}
		if l.CreatedAt.After(entries[pos].EvaluationDate) {
			entries[pos].EvaluationDate = l.CreatedAt
		}
	}

	for i := range entries {
		entries[i].TotalScore = scoring.Clamp(entries[i].TotalScore)
	}
	return entries
}

// buildClassSummary lists every student of the class; those without lines
// show a zero total and no submission time.
func buildClassSummary(students []model.Profile, lines []repository.ClassLine) []model.ClassSummaryEntry {
	entries := make([]model.ClassSummaryEntry, len(students))
	byID := map[int]int{}
	for i, st := range students {
		entries[i] = model.ClassSummaryEntry{
			StudentID:   st.ID,
			StudentCode: st.Code,
			StudentName: st.Name,
		}
		byID[st.ID] = i
	}

	for _, l := range lines {
		pos, ok := byID[l.StudentID]
		if !ok {
			continue
		}
		if l.Score != nil {
			entries[pos].TotalScore += lineScore(*l.Score, l.Amount)
		}
		if entries[pos].SubmittedAt == nil || l.CreatedAt.After(*entries[pos].SubmittedAt) {
			t := l.CreatedAt
			entries[pos].SubmittedAt = &t
		}
	}

	for i := range entries {
		entries[i].TotalScore = scoring.Clamp(entries[i].TotalScore)
	}
	return entries
}

// lineScore applies the demerit multiplier rule for one stored line.
func lineScore(score, amount int) int {
	if amount > 1 && score < 0 {
		return score * amount
	}
	return score
}
