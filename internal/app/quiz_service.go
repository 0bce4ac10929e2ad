package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"advent-quiz-service/internal/domain"
	"advent-quiz-service/internal/validation"
	"github.com/google/uuid"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Create(quizID, hostID string) *Session
	Get(quizID string) (*Session, bool)
	DeleteIfEmpty(quizID string)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// AnswerEvaluator judges a free-text submission against a question. The
// validation engine provides the production implementation.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, day int, submitted, canonical string) validation.Verdict
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	sessions  SessionRepository
	quizzes   QuizRepository
	evaluator AnswerEvaluator
}

func NewQuizService(store SessionRepository, quizzes QuizRepository, evaluator AnswerEvaluator) *QuizService {
	return &QuizService{sessions: store, quizzes: quizzes, evaluator: evaluator}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id, hostID string) *Session {
	return newSession(id, hostID)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id, hostID string, now func() time.Time) *Session {
	return newSessionWithClock(id, hostID, now)
}

// Create registers a new quiz session and returns its ID and the host token.
// Quiz content must be loadable up front so hosts cannot share dead links.
func (s *QuizService) Create(ctx context.Context) (string, string, error) {
	quizID := uuid.NewString()[:8]
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return "", "", err
	}
	hostID := uuid.NewString()
	s.sessions.Create(quizID, hostID)
	return quizID, hostID, nil
}

// Join registers a participant in a quiz session. Joining is rejected once
// the host has started the quiz, and display names must be unique.
func (s *QuizService) Join(ctx context.Context, quizID, userID, displayName string) (domain.Leaderboard, error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return domain.Leaderboard{}, err
	}
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return domain.Leaderboard{}, domain.ErrSessionNotFound
	}
	return session.join(userID, displayName)
}

// Start begins the quiz. Only the host may start, and at least one
// participant must have joined.
func (s *QuizService) Start(_ context.Context, quizID, hostID string) error {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return session.start(hostID)
}

// Questions returns the quiz content for display. Callers must not expose
// Answer or Rule to players; the transport layer strips them.
func (s *QuizService) Questions(ctx context.Context, quizID string) ([]domain.Question, error) {
	if _, ok := s.sessions.Get(quizID); !ok {
		return nil, domain.ErrSessionNotFound
	}
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return quiz.Questions, nil
}

// SubmitAnswer evaluates an answer for a participant and updates the
// leaderboard. Each participant gets one attempt per day.
func (s *QuizService) SubmitAnswer(ctx context.Context, quizID, userID string, submission domain.AnswerSubmission) (domain.Leaderboard, domain.AnswerResult, error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return domain.Leaderboard{}, domain.AnswerResult{}, domain.ErrSessionNotFound
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Leaderboard{}, domain.AnswerResult{}, err
	}

	var question *domain.Question
	for i := range quiz.Questions {
		if quiz.Questions[i].Day == submission.Day {
			question = &quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return domain.Leaderboard{}, domain.AnswerResult{}, domain.ErrQuestionNotFound
	}

	verdict := s.evaluator.Evaluate(ctx, submission.Day, submission.Answer, question.Answer)
	points := question.Points
	if points == 0 {
		points = domain.DefaultPoints
	}
	awarded := 0
	if verdict.Correct {
		awarded = points
	}

	lb, total, err := session.applyVerdict(userID, submission.Day, verdict, awarded)
	if err != nil {
		return domain.Leaderboard{}, domain.AnswerResult{}, err
	}
	return lb, domain.AnswerResult{
		Day:        submission.Day,
		Correct:    verdict.Correct,
		Awarded:    awarded,
		TotalScore: total,
		Method:     string(verdict.Method),
		Confidence: verdict.Confidence,
		Reasoning:  verdict.Reasoning,
	}, nil
}

// Answered reports which questions a participant has already answered, so
// clients can restore state after a reload.
func (s *QuizService) Answered(_ context.Context, quizID, userID string) ([]domain.AnswerRecord, error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.answered(userID)
}

// Subscribe returns a channel that receives leaderboard updates for a quiz.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, quizID string) (<-chan domain.Leaderboard, func(), error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Leave removes a participant from the session and drops the session if empty.
func (s *QuizService) Leave(_ context.Context, quizID, userID string) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return
	}
	session.leave(userID)
	if session.isEmpty() {
		s.sessions.DeleteIfEmpty(quizID)
	}
}

type participantState struct {
	domain.Participant
	answers map[int]domain.AnswerRecord
}

// Session is an in-memory representation of one hosted quiz.
type Session struct {
	id           string
	hostID       string
	createdAt    time.Time
	now          func() time.Time
	mu           sync.RWMutex
	started      bool
	participants map[string]*participantState
	subscribers  map[chan domain.Leaderboard]struct{}
}

func newSession(id, hostID string) *Session {
	return newSessionWithClock(id, hostID, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(id, hostID string, now func() time.Time) *Session {
	return &Session{
		id:           id,
		hostID:       hostID,
		createdAt:    now(),
		now:          now,
		participants: make(map[string]*participantState),
		subscribers:  make(map[chan domain.Leaderboard]struct{}),
	}
}

func (s *Session) join(userID, displayName string) (domain.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return domain.Leaderboard{}, domain.ErrQuizStarted
	}
	for id, p := range s.participants {
		if id != userID && strings.EqualFold(p.DisplayName, displayName) {
			return domain.Leaderboard{}, domain.ErrNameTaken
		}
	}

	now := s.now()
	if participant, ok := s.participants[userID]; ok {
		participant.DisplayName = displayName
		participant.LastUpdated = now
	} else {
		s.participants[userID] = &participantState{
			Participant: domain.Participant{
				UserID:      userID,
				DisplayName: displayName,
				Score:       0,
				LastUpdated: now,
			},
			answers: make(map[int]domain.AnswerRecord),
		}
	}
	return s.broadcastLocked(), nil
}

func (s *Session) start(hostID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hostID != s.hostID {
		return domain.ErrNotHost
	}
	if len(s.participants) == 0 {
		return domain.ErrNoParticipants
	}
	s.started = true
	return nil
}

func (s *Session) applyVerdict(userID string, day int, verdict validation.Verdict, awarded int) (domain.Leaderboard, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return domain.Leaderboard{}, 0, domain.ErrQuizNotStarted
	}
	participant, ok := s.participants[userID]
	if !ok {
		return domain.Leaderboard{}, 0, domain.ErrParticipantNotFound
	}
	if _, done := participant.answers[day]; done {
		return domain.Leaderboard{}, 0, domain.ErrAlreadyAnswered
	}

	now := s.now()
	participant.answers[day] = domain.AnswerRecord{
		Day:        day,
		Correct:    verdict.Correct,
		Points:     awarded,
		Method:     string(verdict.Method),
		AnsweredAt: now,
	}
	participant.Score += awarded
	participant.LastUpdated = now

	return s.broadcastLocked(), participant.Score, nil
}

func (s *Session) answered(userID string) ([]domain.AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participant, ok := s.participants[userID]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	records := make([]domain.AnswerRecord, 0, len(participant.answers))
	for _, record := range participant.answers {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Day < records[j].Day })
	return records, nil
}

func (s *Session) leave(userID string) domain.Leaderboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, userID)
	return s.broadcastLocked()
}

func (s *Session) isEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants) == 0
}

// IsEmpty reports whether the session has no participants.
func (s *Session) IsEmpty() bool {
	return s.isEmpty()
}

// Started reports whether the host has started the quiz.
func (s *Session) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Session) subscribe() (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() domain.Leaderboard {
	lb := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// Drop the stale update so slow clients cannot block the broadcast.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
	return lb
}

func (s *Session) snapshotLocked() domain.Leaderboard {
	entries := make([]domain.LeaderboardEntry, 0, len(s.participants))
	for _, participant := range s.participants {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      participant.UserID,
			DisplayName: participant.DisplayName,
			Score:       participant.Score,
		})
	}

	// Score desc, then whoever reached their score first, then name.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		pi := s.participants[entries[i].UserID]
		pj := s.participants[entries[j].UserID]
		if pi != nil && pj != nil && !pi.LastUpdated.Equal(pj.LastUpdated) {
			return pi.LastUpdated.Before(pj.LastUpdated)
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	return domain.Leaderboard{
		QuizID:    s.id,
		Entries:   entries,
		UpdatedAt: s.now(),
	}
}
