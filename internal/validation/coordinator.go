package validation

import (
	"context"
	"log"
	"time"
)

// Judgment is what the external semantic judge reports for one pair.
type Judgment struct {
	Correct    bool
	Confidence int // 0-100
	Reasoning  string
}

// Judge compares a submission against the canonical answer semantically.
// Implementations are expected to be slow and fallible; the coordinator
// bounds each call with a timeout and treats any error as "judge unavailable".
type Judge interface {
	Judge(ctx context.Context, submitted, canonical string) (Judgment, error)
}

const (
	// DefaultConfidenceThreshold is the minimum judge confidence required to
	// accept a "correct" judgment.
	DefaultConfidenceThreshold = 80
	// DefaultJudgeTimeout bounds a single judge call.
	DefaultJudgeTimeout = 4 * time.Second
)

// Evaluator routes a submission through the rule-based path, plain exact
// comparison, or the semantic judge, and normalizes the result to a Verdict.
type Evaluator struct {
	registry  *Registry
	judge     Judge // nil when the judge capability is disabled
	threshold int
	timeout   time.Duration
}

// NewEvaluator wires the coordinator. Pass a nil judge to disable the AI
// fallback; threshold and timeout fall back to defaults when zero.
func NewEvaluator(registry *Registry, judge Judge, threshold int, timeout time.Duration) *Evaluator {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	if timeout <= 0 {
		timeout = DefaultJudgeTimeout
	}
	return &Evaluator{registry: registry, judge: judge, threshold: threshold, timeout: timeout}
}

// Evaluate judges one submission. A configured rule always wins: it is
// strictly faster and more predictable than the judge, which is consulted
// only when no rule exists and plain comparison fails. Judge failures
// degrade to an incorrect exact-match verdict; they never block submission.
func (e *Evaluator) Evaluate(ctx context.Context, day int, submitted, canonical string) Verdict {
	if rule, ok := e.registry.Lookup(day); ok {
		correct, reason := EvaluateRule(rule, submitted)
		return Verdict{Correct: correct, Method: MethodRuleBased, Confidence: 100, Reasoning: reason}
	}

	normalized := Normalize(submitted)
	if normalized == "" {
		// Blank submissions never reach the judge.
		return Verdict{Correct: false, Method: MethodExactMatch, Confidence: 100, Reasoning: "empty answer"}
	}
	if normalized == Normalize(canonical) {
		return Verdict{Correct: true, Method: MethodExactMatch, Confidence: 100, Reasoning: "exact match"}
	}

	if e.judge == nil {
		return Verdict{Correct: false, Method: MethodExactMatch, Confidence: 100, Reasoning: "does not match expected answer"}
	}

	judgeCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	judgment, err := e.judge.Judge(judgeCtx, submitted, canonical)
	if err != nil {
		log.Printf("validation: judge unavailable, degrading to exact comparison: %v", err)
		return Verdict{Correct: false, Method: MethodExactMatch, Confidence: 100, Reasoning: "does not match expected answer"}
	}

	correct := judgment.Correct
	if correct && judgment.Confidence < e.threshold {
		// Keep the reasoning and confidence for audit, but do not award.
		correct = false
	}
	return Verdict{
		Correct:    correct,
		Method:     MethodAIFallback,
		Confidence: judgment.Confidence,
		Reasoning:  judgment.Reasoning,
	}
}
