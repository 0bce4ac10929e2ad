package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrParticipantNotFound is returned when a user tries to act before joining.
	ErrParticipantNotFound = errors.New("participant not found in quiz")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted day number has no question.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuizStarted is returned when a player joins after the host started the quiz.
	ErrQuizStarted = errors.New("quiz already started")
	// ErrQuizNotStarted is returned when answers arrive before the host starts.
	ErrQuizNotStarted = errors.New("quiz not started yet")
	// ErrNameTaken rejects duplicate display names within one session.
	ErrNameTaken = errors.New("display name already taken")
	// ErrNotHost is returned when a non-host tries to start the quiz.
	ErrNotHost = errors.New("only the host can start the quiz")
	// ErrNoParticipants requires at least one player before starting.
	ErrNoParticipants = errors.New("need at least one participant to start")
	// ErrAlreadyAnswered rejects a second submission for the same day.
	ErrAlreadyAnswered = errors.New("question already answered")
)
