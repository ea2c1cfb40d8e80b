package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/pdf-extract/internal/common"
	"github.com/joseph-ayodele/pdf-extract/internal/llm"
)

// ResolveFields implements llm.FieldResolver against chat/completions with
// the JSON response format. One request covers every unresolved field; the
// batch is never split into per-field calls.
func (c *Client) ResolveFields(ctx context.Context, req llm.ResolveRequest) (map[string]*string, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if c.cfg.APIKey == "" {
		return nil, nil, common.WrapError(common.ErrFallbackTransport, "OPENAI_API_KEY is not set")
	}

	c.logger.Info("llm.resolve.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"label", req.Label,
		"text_len", len(req.Text),
		"fields", req.Fields.Len(),
	)

	responseSchema := llm.BuildFieldsJSONSchema(req.Fields)
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
		},
	}

	raw, status, err := c.postJSON(ctx, rid, body)
	if err != nil {
		c.logger.Error("llm.resolve.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("openai call failed: %v: %w", err, common.ErrFallbackTransport)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, raw, fmt.Errorf("decode openai response: %v: %w", err, common.ErrFallbackTransport)
	}
	if len(cc.Choices) == 0 {
		return nil, raw, common.WrapError(common.ErrFallbackTransport, "no choices in openai response")
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	// Validate strictly first; on failure, sanitize and re-validate.
	if err := llm.ValidateAnswer(responseSchema, content); err != nil {
		cleaned, touched, sErr := llm.SanitizeFields(req.Fields, content)
		if sErr != nil {
			c.logger.Error("llm.resolve.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, content, fmt.Errorf("malformed model answer: %v: %w", sErr, common.ErrFallbackTransport)
		}
		if vErr := llm.ValidateAnswer(responseSchema, cleaned); vErr != nil {
			c.logger.Error("llm.resolve.schema_validation_failed",
				"req_id", rid, "error", vErr, "content", string(content),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, content, fmt.Errorf("schema validation failed: %v: %w", vErr, common.ErrFallbackTransport)
		}
		c.logger.Warn("llm.resolve.sanitize_applied",
			"req_id", rid, "touched", touched,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		content = cleaned
	}

	var answer map[string]*string
	if err := json.Unmarshal(content, &answer); err != nil {
		return nil, content, fmt.Errorf("unmarshal fields: %v: %w", err, common.ErrFallbackTransport)
	}

	// Cover exactly the requested subset: a field the model omitted is an
	// explicit absence, extras are dropped.
	out := make(map[string]*string, req.Fields.Len())
	found := 0
	for _, name := range req.Fields.Names() {
		v := answer[name]
		out[name] = v
		if v != nil {
			found++
		}
	}

	c.logger.Info("llm.resolve.ok",
		"req_id", rid,
		"fields", req.Fields.Len(),
		"found", found,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}
