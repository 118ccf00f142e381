package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"mbti-service/internal/domain"
)

// ResultStore abstracts where per-session results live (in-memory, Redis, etc).
// Get returns domain.ErrResultNotFound when the session holds no result.
type ResultStore interface {
	Put(ctx context.Context, sessionID string, record domain.ResultRecord) error
	Get(ctx context.Context, sessionID string) (domain.ResultRecord, error)
	Clear(ctx context.Context, sessionID string) error
}

// ResultArchive keeps an append-only history of scoring runs.
type ResultArchive interface {
	Archive(ctx context.Context, sessionID string, record domain.ResultRecord) error
	TypeCounts(ctx context.Context) ([]domain.TypeCount, error)
}

// AssessmentService contains the questionnaire use cases.
type AssessmentService struct {
	results ResultStore
	archive ResultArchive
	catalog domain.Catalog
	now     func() time.Time
	log     zerolog.Logger
}

func NewAssessmentService(results ResultStore, archive ResultArchive, log zerolog.Logger) *AssessmentService {
	return NewAssessmentServiceWithClock(results, archive, log, time.Now)
}

// NewAssessmentServiceWithClock is used by tests for deterministic timestamps.
func NewAssessmentServiceWithClock(results ResultStore, archive ResultArchive, log zerolog.Logger, now func() time.Time) *AssessmentService {
	return &AssessmentService{
		results: results,
		archive: archive,
		catalog: domain.DefaultCatalog(),
		now:     now,
		log:     log,
	}
}

// Questions returns the catalog in display order.
func (s *AssessmentService) Questions() []domain.Question {
	return s.catalog.Questions()
}

// Start resets the session to the empty state.
func (s *AssessmentService) Start(ctx context.Context, sessionID string) error {
	return s.results.Clear(ctx, sessionID)
}

// Submit scores a complete answer set and stores the result for the session,
// replacing any earlier one.
func (s *AssessmentService) Submit(ctx context.Context, sessionID string, answers domain.AnswerSet) (domain.ResultRecord, error) {
	if !s.catalog.Complete(answers) {
		return domain.ResultRecord{}, domain.ErrIncompleteSubmission
	}

	code, tally := s.catalog.Score(answers)
	record := domain.ResultRecord{
		TypeCode: code,
		Tally:    tally,
		Answers:  s.retain(answers),
		ScoredAt: s.now().UTC(),
	}

	if err := s.results.Put(ctx, sessionID, record); err != nil {
		return domain.ResultRecord{}, err
	}

	if s.archive != nil {
		if err := s.archive.Archive(ctx, sessionID, record); err != nil {
			s.log.Warn().Err(err).Str("session", sessionID).Msg("archive result failed")
		}
	}

	s.log.Debug().Str("session", sessionID).Str("type", string(code)).Msg("submission scored")
	return record, nil
}

// Result returns the stored result for the session along with its description.
func (s *AssessmentService) Result(ctx context.Context, sessionID string) (domain.Result, error) {
	record, err := s.results.Get(ctx, sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{
		ResultRecord: record,
		Description:  domain.Describe(record.TypeCode),
	}, nil
}

// TypeDistribution reports how often each type has been scored.
func (s *AssessmentService) TypeDistribution(ctx context.Context) ([]domain.TypeCount, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.TypeCounts(ctx)
}

// retain copies only the answers belonging to catalog questions.
func (s *AssessmentService) retain(answers domain.AnswerSet) domain.AnswerSet {
	kept := make(domain.AnswerSet, len(s.catalog))
	for _, q := range s.catalog {
		if choice, ok := answers[q.ID]; ok {
			kept[q.ID] = choice
		}
	}
	return kept
}
