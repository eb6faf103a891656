// Package reasoning is the HTTP client to the external reasoning service.
// The service speaks the OpenAI chat-completions wire shape; responses are
// parsed strictly and every failure is returned as an error so callers
// fall back to the deterministic draft.
package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/vintry/internal/core/planner"
	"github.com/example/vintry/internal/models"
)

// DefaultTimeout bounds every reasoning call. Refinement is advisory;
// a slow service must never stall plan generation indefinitely.
const DefaultTimeout = 60 * time.Second

// Config selects the service endpoint and the models used for each role.
type Config struct {
	Endpoint    string // base URL, e.g. https://api.example.com/v1
	APIKey      string
	RefineModel string // plan refinement and routine review
	ReviewModel string // escalated review (more capable model)
	Timeout     time.Duration
}

// Client implements planner.Reasoner over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a reasoning client. Returns nil when no endpoint is
// configured, which disables refinement throughout the pipeline.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

const proposeSystemPrompt = `You are a wine cellar layout planner. Given the cellar state and a draft reallocation plan, produce an improved plan.
Respond with ONLY a JSON object: {"reasoning": "...", "actions": [...]}.
Each action: {"type": "reallocate_row"|"merge_zones"|"retire_zone"|"expand_zone"|"assign_orphan_row", "sourceZone": "...", "targetZone": "...", "row": "R<n>", "priority": 1-10, "reason": "..."}.
Only move rows between zones that appear in the state. Keep zones color-coherent and contiguous where possible.`

const reviewSystemPrompt = `You are reviewing a wine cellar reallocation plan for safety and coherence.
Respond with ONLY a JSON object: {"verdict": "approve"|"patch"|"reject", "reason": "...", "actions": [...]}.
Include "actions" only when the verdict is "patch"; it replaces the plan's action list.`

// ProposePlan sends the state snapshot and draft to the refine model.
func (c *Client) ProposePlan(ctx context.Context, snapshot planner.StateSnapshot, draft models.Plan) (*planner.Proposal, error) {
	user, err := json.Marshal(map[string]any{
		"state": snapshot,
		"draft": draft,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode refine request: %w", err)
	}

	content, err := c.complete(ctx, c.cfg.RefineModel, proposeSystemPrompt, string(user))
	if err != nil {
		return nil, err
	}

	var prop planner.Proposal
	if err := json.Unmarshal([]byte(content), &prop); err != nil {
		return nil, fmt.Errorf("unparseable refinement response: %w", err)
	}
	return &prop, nil
}

// ReviewPlan asks for a verdict on a plan. Escalated reviews use the more
// capable review model.
func (c *Client) ReviewPlan(ctx context.Context, req planner.ReviewRequest) (*planner.ReviewResponse, error) {
	model := c.cfg.RefineModel
	if req.Escalate && c.cfg.ReviewModel != "" {
		model = c.cfg.ReviewModel
	}

	user, err := json.Marshal(map[string]any{
		"state": req.Snapshot,
		"plan":  req.Plan,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode review request: %w", err)
	}

	content, err := c.complete(ctx, model, reviewSystemPrompt, string(user))
	if err != nil {
		return nil, err
	}

	var resp planner.ReviewResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("unparseable review response: %w", err)
	}
	switch resp.Verdict {
	case models.VerdictApprove, models.VerdictPatch, models.VerdictReject:
	default:
		return nil, fmt.Errorf("unknown review verdict %q", resp.Verdict)
	}
	return &resp, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, model, system, user string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("no reasoning model configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.Endpoint, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("reasoning request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read reasoning response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reasoning service returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("malformed reasoning response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("reasoning response has no choices")
	}
	return stripFences(parsed.Choices[0].Message.Content), nil
}

// stripFences removes a surrounding markdown code fence if the model
// wrapped its JSON in one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
