package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const hfInferenceBase = "https://api-inference.huggingface.co/models/"

// HFProvider calls one model on the Hugging Face inference API.
type HFProvider struct {
	apiKey string
	model  string
	client *http.Client
}

func NewHFProvider(apiKey, model string, timeout time.Duration) *HFProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HFProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HFProvider) Name() string  { return "huggingface" }
func (h *HFProvider) Model() string { return h.model }

func (h *HFProvider) Summarize(ctx context.Context, req Request) (string, error) {
	if h.apiKey == "" {
		return "", fmt.Errorf("hugging face key missing")
	}
	maxLen := req.MaxLength
	if maxLen > 500 {
		maxLen = 500
	}
	minLen := req.MinLength
	if minLen < 20 {
		minLen = 20
	}
	payload, _ := json.Marshal(map[string]any{
		"inputs": req.Text,
		"parameters": map[string]any{
			"max_length":           maxLen,
			"min_length":           minLen,
			"do_sample":            false,
			"early_stopping":       true,
			"length_penalty":       2.0,
			"repetition_penalty":   1.2,
			"no_repeat_ngram_size": 3,
		},
	})
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, hfInferenceBase+h.model, bytes.NewReader(payload))
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("hf summarize request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("hf summarize error %d: %s", resp.StatusCode, string(body))
	}
	summary, err := parseHFSummary(body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("hf model %s returned empty summary", h.model)
	}
	return summary, nil
}

// parseHFSummary accepts both response shapes of the inference API: a single
// object or a one-element array, with either summary_text or generated_text.
func parseHFSummary(body []byte) (string, error) {
	type item struct {
		SummaryText   string `json:"summary_text"`
		GeneratedText string `json:"generated_text"`
	}
	pick := func(it item) string {
		if it.SummaryText != "" {
			return it.SummaryText
		}
		return it.GeneratedText
	}

	var arr []item
	if err := json.Unmarshal(body, &arr); err == nil {
		if len(arr) == 0 {
			return "", fmt.Errorf("hf returned empty result array")
		}
		return pick(arr[0]), nil
	}
	var single item
	if err := json.Unmarshal(body, &single); err != nil {
		return "", fmt.Errorf("decode hf response: %w", err)
	}
	return pick(single), nil
}
