package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"advent-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizLoader loads the advent question set from Postgres. All hosted
// sessions share the same calendar, so the quiz ID only labels the result.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	rows, err := l.pool.Query(ctx, `SELECT day, data FROM questions ORDER BY day`)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var day int
		var raw []byte
		if err := rows.Scan(&day, &raw); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return domain.Quiz{}, fmt.Errorf("unmarshal question day %d: %w", day, err)
		}
		q.Day = day
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, fmt.Errorf("iterate questions: %w", err)
	}
	if len(questions) == 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return domain.Quiz{ID: quizID, Questions: questions}, nil
}
