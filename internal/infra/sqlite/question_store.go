package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"advent-quiz-service/internal/domain"
	_ "modernc.org/sqlite" // driver: sqlite
)

// QuestionStore keeps the advent question set in SQLite for single-binary
// deploys without a Postgres instance. It implements the quiz loader
// contract used by the caches.
type QuestionStore struct {
	db *sql.DB
}

// Open creates the store and its schema. Use ":memory:" for tests.
func Open(path string) (*QuestionStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS questions (
		day INTEGER PRIMARY KEY CHECK (day BETWEEN 1 AND 24),
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create questions table: %w", err)
	}
	return &QuestionStore{db: db}, nil
}

func (s *QuestionStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the question for its day.
func (s *QuestionStore) Save(ctx context.Context, q domain.Question) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (day, data) VALUES (?, ?)
		 ON CONFLICT(day) DO UPDATE SET data=excluded.data`,
		q.Day, string(data))
	if err != nil {
		return fmt.Errorf("save question day %d: %w", q.Day, err)
	}
	return nil
}

// LoadQuiz returns the stored question set labeled with the given quiz ID.
func (s *QuestionStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, data FROM questions ORDER BY day`)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var day int
		var raw string
		if err := rows.Scan(&day, &raw); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
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
