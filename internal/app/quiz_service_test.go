package app_test

import (
	"context"
	"testing"
	"time"

	"advent-quiz-service/internal/app"
	"advent-quiz-service/internal/domain"
	"advent-quiz-service/internal/infra/memory"
	"advent-quiz-service/internal/validation"
)

func TestHostedQuizLifecycle(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)

	quizID, hostID, err := service.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.Join(ctx, quizID, "u1", "Alice"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := service.Join(ctx, quizID, "u2", "Bob"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := service.Join(ctx, quizID, "u3", "alice"); err != domain.ErrNameTaken {
		t.Fatalf("expected duplicate name rejection, got %v", err)
	}

	// Answers before start are rejected.
	_, _, err = service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{Day: 1, Answer: "Stockholm"})
	if err != domain.ErrQuizNotStarted {
		t.Fatalf("expected not-started error, got %v", err)
	}

	if err := service.Start(ctx, quizID, "not-the-host"); err != domain.ErrNotHost {
		t.Fatalf("expected host check, got %v", err)
	}
	if err := service.Start(ctx, quizID, hostID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Late joiners are rejected once the quiz has started.
	if _, err := service.Join(ctx, quizID, "u4", "Carol"); err != domain.ErrQuizStarted {
		t.Fatalf("expected started rejection, got %v", err)
	}

	lb, result, err := service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{Day: 1, Answer: "stockholm"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Correct || result.Awarded != domain.DefaultPoints || result.Method != string(validation.MethodExactMatch) {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(lb.Entries) != 2 || lb.Entries[0].UserID != "u2" || lb.Entries[0].Score != domain.DefaultPoints {
		t.Fatalf("expected Bob to lead, got %+v", lb.Entries)
	}

	// One attempt per day.
	_, _, err = service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{Day: 1, Answer: "Stockholm"})
	if err != domain.ErrAlreadyAnswered {
		t.Fatalf("expected duplicate answer rejection, got %v", err)
	}

	records, err := service.Answered(ctx, quizID, "u2")
	if err != nil {
		t.Fatalf("answered failed: %v", err)
	}
	if len(records) != 1 || records[0].Day != 1 || !records[0].Correct || records[0].Points != domain.DefaultPoints {
		t.Fatalf("unexpected report %+v", records)
	}
}

func TestSubmitUsesValidationRules(t *testing.T) {
	ctx := context.Background()
	rules := map[int]validation.Rule{
		9: {Kind: validation.KindNumeric, Accepted: []string{"110"}, Tolerance: 5},
	}
	service := newTestService(rules)

	quizID, hostID, err := service.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Join(ctx, quizID, "u1", "Alice"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := service.Start(ctx, quizID, hostID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, result, err := service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{Day: 9, Answer: "around 112 km/h"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Correct || result.Method != string(validation.MethodRuleBased) {
		t.Fatalf("rule-based verdict expected, got %+v", result)
	}

	_, _, err = service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{Day: 99, Answer: "x"})
	if err != domain.ErrQuestionNotFound {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)

	quizID, hostID, err := service.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Join(ctx, quizID, "u1", "Alice"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := service.Start(ctx, quizID, hostID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	ch, cancel, err := service.Subscribe(ctx, quizID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	<-ch // initial snapshot

	if _, _, err := service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{Day: 1, Answer: "Stockholm"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	update := <-ch
	if len(update.Entries) != 1 || update.Entries[0].Score != domain.DefaultPoints {
		t.Fatalf("expected updated score, got %+v", update.Entries)
	}
}

func TestSubmitRequiresSessionAndParticipant(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil)

	_, _, err := service.SubmitAnswer(ctx, "quiz-unknown", "u1", domain.AnswerSubmission{Day: 1, Answer: "x"})
	if err != domain.ErrSessionNotFound {
		t.Fatalf("expected session error, got %v", err)
	}
	if _, err := service.Questions(ctx, "quiz-unknown"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected session error for questions, got %v", err)
	}

	quizID, hostID, err := service.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, _ = service.Join(ctx, quizID, "u1", "Alice")
	if err := service.Start(ctx, quizID, hostID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	_, _, err = service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{Day: 1, Answer: "Stockholm"})
	if err != domain.ErrParticipantNotFound {
		t.Fatalf("expected participant error, got %v", err)
	}
}

func newTestService(rules map[int]validation.Rule) *app.QuizService {
	sessionStore := memory.NewSessionStore()
	quizRepo := memory.NewQuizRepository(memory.NewSharedQuestionLoader([]domain.Question{
		{Day: 1, Prompt: "What is the capital of Sweden?", Answer: "Stockholm"},
		{Day: 9, Prompt: "Top speed of a cheetah in km/h?", Answer: "110"},
	}), 5*time.Minute)
	evaluator := validation.NewEvaluator(validation.NewRegistry(rules), nil, 0, 0)
	return app.NewQuizService(sessionStore, quizRepo, evaluator)
}
