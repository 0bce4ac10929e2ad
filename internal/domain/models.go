package domain

import (
	"encoding/json"
	"time"
)

// Participant represents a quiz player and their accumulated score.
type Participant struct {
	UserID      string
	DisplayName string
	Score       int
	LastUpdated time.Time
}

// LeaderboardEntry is a snapshot-friendly view of a participant.
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
}

// Leaderboard captures the ordered scoreboard for a quiz session.
type Leaderboard struct {
	QuizID    string             `json:"quizId"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// AnswerSubmission is one player's free-text answer to an advent question.
type AnswerSubmission struct {
	Day    int
	Answer string
}

// AnswerResult summarizes the verdict for one submission.
type AnswerResult struct {
	Day        int    `json:"day"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
	TotalScore int    `json:"totalScore"`
	Method     string `json:"method"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// AnswerRecord lists a previously answered question for the history report.
type AnswerRecord struct {
	Day        int       `json:"day"`
	Correct    bool      `json:"correct"`
	Points     int       `json:"points"`
	Method     string    `json:"method"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Question is one advent calendar question, keyed by day number 1-24.
// Rule optionally carries a persisted validation rule as JSON; malformed
// rules are skipped at load time.
type Question struct {
	Day    int             `json:"day"`
	Prompt string          `json:"prompt"`
	Answer string          `json:"answer"`
	Points int             `json:"points"` // defaults to 10 if zero
	Rule   json.RawMessage `json:"rule,omitempty"`
}

// Quiz is a hosted session's content.
type Quiz struct {
	ID        string     `json:"id"`
	HostID    string     `json:"hostId"`
	Questions []Question `json:"questions"`
}

// DefaultPoints is awarded for a correct answer when the question does not
// set its own value.
const DefaultPoints = 10
