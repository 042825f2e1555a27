package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"hotel-reservation/internal/domain/reservation"
	"hotel-reservation/internal/pkg/correlation"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/pkg/ptr"
	"hotel-reservation/internal/pkg/resilience"
	"hotel-reservation/internal/usecase/queries"
)

var ErrNoJSON = errs.New("no JSON object in model response")

var (
	fencedJSON = regexp.MustCompile("(?s)```.*?(\\{.*?\\}).*?```")
	bareJSON   = regexp.MustCompile(`(?s)\{.*\}`)
	isoDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const promptTemplate = `Return ONLY valid JSON. Extract from "%s": {"roomType": "junior|king|presidential|null", "maxPriceDollars": number|null, "numGuests": number|null, "checkIn": "YYYY-MM-DD"|null, "checkOut": "YYYY-MM-DD"|null}`

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// rawIntent mirrors what the model is asked to produce; any field may be
// missing or of the wrong type.
type rawIntent struct {
	RoomType        any `json:"roomType"`
	MaxPriceDollars any `json:"maxPriceDollars"`
	NumGuests       any `json:"numGuests"`
	CheckIn         any `json:"checkIn"`
	CheckOut        any `json:"checkOut"`
}

// OllamaParser extracts room search intent through the Ollama generate API.
type OllamaParser struct {
	httpClient *http.Client
	baseURL    string
	model      string
	breaker    *resilience.Breaker
	logger     *slog.Logger
}

func NewOllamaParser(baseURL, model string, breaker *resilience.Breaker, logger *slog.Logger) *OllamaParser {
	return &OllamaParser{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		breaker: breaker,
		logger:  logger,
	}
}

func (p *OllamaParser) ParseIntent(ctx context.Context, query string) (queries.RoomIntent, error) {
	text, err := resilience.Run(ctx, p.breaker, func(ctx context.Context) (string, error) {
		if timeout := p.breaker.Timeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return p.generate(ctx, fmt.Sprintf(promptTemplate, query))
	})
	if err != nil {
		return queries.RoomIntent{}, errs.Wrap(err, "failed to parse query")
	}

	raw, err := extractJSON(text)
	if err != nil {
		correlation.Logger(ctx, p.logger).Warn("unusable model response",
			"model", p.model,
			"error", err)
		return queries.RoomIntent{}, errs.Wrap(err, "failed to parse query")
	}
	return sanitize(raw), nil
}

func (p *OllamaParser) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.1,
			TopP:        0.9,
			MaxTokens:   200,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generate returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	return out.Response, nil
}

// extractJSON prefers an object inside a markdown code fence, then falls back
// to the widest brace-delimited span.
func extractJSON(text string) (rawIntent, error) {
	var candidate string
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else if m := bareJSON.FindString(text); m != "" {
		candidate = m
	} else {
		return rawIntent{}, ErrNoJSON
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return rawIntent{}, errs.Wrap(err, "invalid JSON in model response")
	}
	return raw, nil
}

func sanitize(raw rawIntent) queries.RoomIntent {
	var intent queries.RoomIntent

	if s, ok := raw.RoomType.(string); ok {
		if rt := reservation.RoomType(s); rt.IsValid() {
			intent.RoomType = ptr.To(rt.String())
		}
	}
	if f, ok := raw.MaxPriceDollars.(float64); ok {
		intent.MaxPriceDollars = ptr.To(f)
	}
	if f, ok := raw.NumGuests.(float64); ok && f > 0 {
		intent.NumGuests = ptr.To(int(f))
	}
	intent.CheckIn = isoDateOrNil(raw.CheckIn)
	intent.CheckOut = isoDateOrNil(raw.CheckOut)
	return intent
}

func isoDateOrNil(v any) *string {
	s, ok := v.(string)
	if !ok || !isoDate.MatchString(s) {
		return nil
	}
	return ptr.NonZero(s)
}
