package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"advent-quiz-service/internal/validation"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

const systemPrompt = `You grade trivia answers. Given the expected answer and a player's
submission, decide whether the submission means the same thing. Accept synonyms,
translations, and spelling variants; reject different facts. Respond with JSON only:
{"is_correct": bool, "confidence": integer 0-100, "reasoning": "one short sentence"}`

// Judge compares answers semantically using Gemini. It implements
// validation.Judge; the coordinator owns timeouts and failure policy.
type Judge struct {
	apiKey string
	model  string
}

func New(apiKey, model string) *Judge {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Judge{apiKey: strings.TrimSpace(apiKey), model: strings.TrimSpace(model)}
}

type judgeResponse struct {
	IsCorrect  bool   `json:"is_correct"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// Judge asks the model whether submitted means the same as canonical.
func (j *Judge) Judge(ctx context.Context, submitted, canonical string) (validation.Judgment, error) {
	if j.apiKey == "" {
		return validation.Judgment{}, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(j.apiKey))
	if err != nil {
		return validation.Judgment{}, err
	}
	defer client.Close()

	model := client.GenerativeModel(j.model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	prompt := fmt.Sprintf("Expected answer: %q\nPlayer answered: %q", canonical, submitted)

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			time.Sleep(200 * time.Millisecond)
			continue
		}
		text, err := responseText(resp)
		if err != nil {
			lastErr = err
			continue
		}
		judgment, err := parseJudgment(text)
		if err != nil {
			lastErr = err
			continue
		}
		return judgment, nil
	}
	return validation.Judgment{}, lastErr
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: no text parts in response")
	}
	return sb.String(), nil
}

// parseJudgment decodes the model's JSON verdict, tolerating code fences the
// model occasionally wraps around its output.
func parseJudgment(text string) (validation.Judgment, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var parsed judgeResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return validation.Judgment{}, fmt.Errorf("gemini: malformed judgment: %w", err)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 100 {
		return validation.Judgment{}, fmt.Errorf("gemini: confidence %d out of range", parsed.Confidence)
	}
	return validation.Judgment{
		Correct:    parsed.IsCorrect,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}, nil
}

func ptrFloat32(v float32) *float32 { return &v }
