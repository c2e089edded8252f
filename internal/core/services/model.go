package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// defaultModelTimeout bounds a model call when no timeout is configured.
const defaultModelTimeout = 30 * time.Second

// ModelOutcome is the two-branch result of a model-backed step: either the
// model produced a usable value (Ok) or the caller must use its
// deterministic path (Fallback) for the recorded reason.
type ModelOutcome[T any] struct {
	value  T
	ok     bool
	reason string
}

// Ok wraps a usable model value.
func Ok[T any](v T) ModelOutcome[T] {
	return ModelOutcome[T]{value: v, ok: true}
}

// Fallback records why the model value cannot be used.
func Fallback[T any](reason string) ModelOutcome[T] {
	return ModelOutcome[T]{reason: reason}
}

// Value returns the model value and whether it is usable.
func (o ModelOutcome[T]) Value() (T, bool) {
	return o.value, o.ok
}

// IsOk reports whether the model branch was taken.
func (o ModelOutcome[T]) IsOk() bool {
	return o.ok
}

// Reason returns why the fallback branch was taken, or "".
func (o ModelOutcome[T]) Reason() string {
	return o.reason
}

// modelClient wraps an optional LLM with a per-call timeout.
type modelClient struct {
	llm     driven.LLMService
	timeout time.Duration
}

func newModelClient(llm driven.LLMService, timeout time.Duration) modelClient {
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	return modelClient{llm: llm, timeout: timeout}
}

// chat runs one bounded chat call. Every failure becomes a Fallback.
func (m modelClient) chat(ctx context.Context, system, user string, opts driven.ChatOptions) ModelOutcome[string] {
	if m.llm == nil {
		return Fallback[string](domain.ErrLLMUnavailable.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	msgs := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: user},
	}
	reply, err := m.llm.Chat(ctx, msgs, opts)
	if err != nil {
		return Fallback[string](fmt.Sprintf("model call failed: %v", err))
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Fallback[string]("model returned an empty reply")
	}
	return Ok(reply)
}

// chatJSON runs a deterministic call and decodes the reply into out.
func (m modelClient) chatJSON(ctx context.Context, system, user string, out any) ModelOutcome[struct{}] {
	reply := m.chat(ctx, system, user, driven.Deterministic())
	text, ok := reply.Value()
	if !ok {
		return Fallback[struct{}](reply.Reason())
	}
	if err := decodeJSONObject(text, out); err != nil {
		return Fallback[struct{}](err.Error())
	}
	return Ok(struct{}{})
}

// decodeJSONObject extracts the outermost JSON object from text, tolerating
// code fences and chatter around it.
func decodeJSONObject(text string, out any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("%w: no JSON object in reply", domain.ErrModelOutput)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrModelOutput, err)
	}
	return nil
}
