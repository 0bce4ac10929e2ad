package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"advent-quiz-service/internal/app"
	"advent-quiz-service/internal/domain"
)

// APIHandler serves the host-side REST operations that do not need a
// websocket: creating a session, starting it, and the answered report.
type APIHandler struct {
	service     *app.QuizService
	frontendURL string
}

func NewAPIHandler(service *app.QuizService, frontendURL string) *APIHandler {
	return &APIHandler{service: service, frontendURL: frontendURL}
}

// Register attaches the REST routes to mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/quiz/create", h.createQuiz)
	mux.HandleFunc("/api/quiz/start", h.startQuiz)
	mux.HandleFunc("/api/quiz/questions", h.questions)
	mux.HandleFunc("/api/quiz/answered", h.answered)
}

type createResponse struct {
	QuizID   string `json:"quizId"`
	HostID   string `json:"hostId"`
	JoinLink string `json:"joinLink"`
}

func (h *APIHandler) createQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	quizID, hostID, err := h.service.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, createResponse{
		QuizID:   quizID,
		HostID:   hostID,
		JoinLink: fmt.Sprintf("%s/join/%s", h.frontendURL, quizID),
	})
}

func (h *APIHandler) startQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	quizID := r.URL.Query().Get("quizId")
	hostID := r.URL.Query().Get("hostId")
	if quizID == "" || hostID == "" {
		http.Error(w, "missing quizId or hostId", http.StatusBadRequest)
		return
	}
	if err := h.service.Start(r.Context(), quizID, hostID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"started": true})
}

// questionView is what players see: never the answer or validation rule.
type questionView struct {
	Day    int    `json:"day"`
	Prompt string `json:"prompt"`
	Points int    `json:"points"`
}

func (h *APIHandler) questions(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}
	questions, err := h.service.Questions(r.Context(), quizID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		points := q.Points
		if points == 0 {
			points = domain.DefaultPoints
		}
		views = append(views, questionView{Day: q.Day, Prompt: q.Prompt, Points: points})
	}

	if dayParam := r.URL.Query().Get("day"); dayParam != "" {
		day, err := strconv.Atoi(dayParam)
		if err != nil {
			http.Error(w, "invalid day", http.StatusBadRequest)
			return
		}
		for _, view := range views {
			if view.Day == day {
				writeJSON(w, view)
				return
			}
		}
		writeError(w, domain.ErrQuestionNotFound)
		return
	}
	writeJSON(w, map[string][]questionView{"questions": views})
}

func (h *APIHandler) answered(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	if quizID == "" || userID == "" {
		http.Error(w, "missing quizId or userId", http.StatusBadRequest)
		return
	}
	records, err := h.service.Answered(r.Context(), quizID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string][]domain.AnswerRecord{"answered": records})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrParticipantNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotHost):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrQuizStarted),
		errors.Is(err, domain.ErrQuizNotStarted),
		errors.Is(err, domain.ErrNameTaken),
		errors.Is(err, domain.ErrNoParticipants),
		errors.Is(err, domain.ErrAlreadyAnswered):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
