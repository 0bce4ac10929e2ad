package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"advent-quiz-service/internal/config"
	"advent-quiz-service/internal/domain"
	sqlitestore "advent-quiz-service/internal/infra/sqlite"
	"advent-quiz-service/internal/validation"
	"github.com/spf13/cobra"
)

// NewAddQuestionCmd creates or replaces one advent question in the SQLite
// store. The server picks it up on the next cache refresh; a rule supplied
// here is merged into the validation registry at startup.
func NewAddQuestionCmd(configPath *string) *cobra.Command {
	var (
		day    int
		prompt string
		answer string
		points int
		rule   string
	)
	cmd := &cobra.Command{
		Use:   "add-question",
		Short: "Create or replace an advent question in the SQLite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			question := domain.Question{Day: day, Prompt: prompt, Answer: answer, Points: points}
			return runAddQuestion(cmd.Context(), *configPath, question, rule)
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "advent day (1-24)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "question text shown to players")
	cmd.Flags().StringVar(&answer, "answer", "", "canonical answer")
	cmd.Flags().IntVar(&points, "points", 0, "points awarded (0 uses the default)")
	cmd.Flags().StringVar(&rule, "rule", "", "optional validation rule as JSON")
	return cmd
}

func runAddQuestion(ctx context.Context, configPath string, question domain.Question, rule string) error {
	if question.Day < 1 || question.Day > 24 {
		return fmt.Errorf("day must be between 1 and 24, got %d", question.Day)
	}
	if question.Prompt == "" || question.Answer == "" {
		return fmt.Errorf("prompt and answer are required")
	}
	if rule != "" {
		// Reject malformed rules here instead of silently dropping them at startup.
		if _, err := validation.ParseRule([]byte(rule)); err != nil {
			return fmt.Errorf("invalid rule: %w", err)
		}
		question.Rule = json.RawMessage(rule)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.SQLite.Path == "" {
		return fmt.Errorf("sqlite path not configured")
	}

	store, err := sqlitestore.Open(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, question); err != nil {
		return err
	}
	log.Printf("saved question for day %d", question.Day)
	return nil
}
