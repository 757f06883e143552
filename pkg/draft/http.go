package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// HTTPGenerator calls a JSON drafting endpoint. The endpoint receives the
// trip context and prompt and must answer with day-shaped records.
type HTTPGenerator struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
	Timeout  time.Duration
}

type draftRequest struct {
	TripName  string     `json:"tripName"`
	StartDate string     `json:"startDate"`
	Days      []trip.Day `json:"existingDays"`
	Prompt    string     `json:"userPrompt"`
	DayID     string     `json:"dayId,omitempty"`
	Plan      string     `json:"targetPlanId,omitempty"`
}

type draftResponse struct {
	Days []trip.Day `json:"days"`
}

// Draft implements Generator. Output is validated before it is returned so
// malformed generations surface as errors instead of merging.
func (g *HTTPGenerator) Draft(ctx context.Context, req Request) ([]trip.Day, error) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(draftRequest{
		TripName:  req.TripName,
		StartDate: trip.FormatDate(req.StartDate),
		Days:      req.ExistingDays,
		Prompt:    req.Prompt,
		DayID:     req.DayID,
		Plan:      string(req.TargetPlan),
	})
	if err != nil {
		return nil, fmt.Errorf("draft: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("draft: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	httpClient := g.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("draft: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("draft: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("draft: generation failed with status %d", resp.StatusCode)
	}

	var out draftResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDraft, err)
	}
	if err := ValidateDays(req, out.Days); err != nil {
		return nil, err
	}
	return out.Days, nil
}
