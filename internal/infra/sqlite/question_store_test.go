package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"advent-quiz-service/internal/domain"
)

func TestQuestionStoreRoundTrip(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	questions := []domain.Question{
		{Day: 1, Prompt: "Which company sells juleskum?", Answer: "Cloetta", Points: 10,
			Rule: json.RawMessage(`{"kind":"exact","accepted":["Cloetta"]}`)},
		{Day: 9, Prompt: "Top speed of a cheetah in km/h?", Answer: "110", Points: 10},
	}
	for _, q := range questions {
		if err := store.Save(ctx, q); err != nil {
			t.Fatalf("save day %d: %v", q.Day, err)
		}
	}

	quiz, err := store.LoadQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if quiz.ID != "quiz-1" || len(quiz.Questions) != 2 {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
	if quiz.Questions[0].Answer != "Cloetta" || len(quiz.Questions[0].Rule) == 0 {
		t.Fatalf("question content lost: %+v", quiz.Questions[0])
	}

	// Save over the same day replaces, not duplicates.
	if err := store.Save(ctx, domain.Question{Day: 1, Prompt: "updated", Answer: "Cloetta"}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	quiz, err = store.LoadQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(quiz.Questions) != 2 || quiz.Questions[0].Prompt != "updated" {
		t.Fatalf("upsert failed: %+v", quiz.Questions)
	}
}

func TestQuestionStoreEmpty(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadQuiz(context.Background(), "quiz-1"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}
