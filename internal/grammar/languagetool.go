package grammar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/ppiankov/clarity/internal/cache"
	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/util"
	"go.uber.org/zap"
)

const (
	maxResponseBytes = 4 << 20
	maxReplacements  = 5
	retryBaseDelay   = 500 * time.Millisecond
)

// retrySleepFunc waits between attempts (injectable for tests)
var retrySleepFunc = sleepContext

// Query is one request to a grammar service
type Query struct {
	Text       string
	Language   string
	Categories []string
}

// Service is a remote grammar checker. Implementations return an error for
// any reachability or protocol failure; the Checker decides what to do.
type Service interface {
	Check(ctx context.Context, q Query) ([]model.Issue, error)
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, http.StatusText(e.Code))
}

// LanguageTool talks to a LanguageTool-compatible /v2/check endpoint
type LanguageTool struct {
	endpoint   string
	userAgent  string
	attempts   int
	httpClient *http.Client
	limiter    *util.HostLimiter
	cache      cache.Cache
	logger     *zap.Logger
}

// NewLanguageTool creates a client from the grammar config. c may be nil
// to disable response caching.
func NewLanguageTool(cfg model.GrammarConfig, c cache.Cache, logger *zap.Logger) *LanguageTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}

	return &LanguageTool{
		endpoint:   cfg.ServiceURL,
		userAgent:  cfg.UserAgent,
		attempts:   attempts,
		httpClient: util.NewHTTPClient(EffectiveTimeout(cfg.Timeout), cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		limiter:    util.NewHostLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
		cache:      c,
		logger:     logger,
	}
}

// Check posts the query and converts the returned matches into issues
// with byte offsets into q.Text.
func (lt *LanguageTool) Check(ctx context.Context, q Query) ([]model.Issue, error) {
	enabled := strings.Join(q.Categories, ",")
	key := cache.Key(q.Language, enabled, q.Text)

	if lt.cache != nil {
		if body, found := lt.cache.Get(key); found {
			if issues, err := decodeMatches(q.Text, body); err == nil {
				lt.logger.Debug("grammar cache hit", zap.String("key", key))
				return issues, nil
			}
			_ = lt.cache.Delete(key)
		}
	}

	form := url.Values{}
	form.Set("text", q.Text)
	form.Set("language", q.Language)
	form.Set("enabledRules", enabled)

	body, err := lt.postWithRetry(ctx, form)
	if err != nil {
		return nil, err
	}

	issues, err := decodeMatches(q.Text, body)
	if err != nil {
		return nil, err
	}

	if lt.cache != nil {
		if err := lt.cache.Set(key, body, 0); err != nil {
			lt.logger.Debug("grammar cache write failed", zap.Error(err))
		}
	}
	return issues, nil
}

// postWithRetry retries transient failures with exponential backoff until
// the attempts or ctx run out
func (lt *LanguageTool) postWithRetry(ctx context.Context, form url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < lt.attempts; attempt++ {
		body, err := lt.post(ctx, form)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isRetryable(err) || attempt == lt.attempts-1 {
			break
		}

		backoff := time.Duration(1<<uint(attempt)) * retryBaseDelay
		lt.logger.Debug("grammar service attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		if err := retrySleepFunc(ctx, backoff); err != nil {
			return nil, fmt.Errorf("wait for retry: %w", err)
		}
	}
	return nil, lastErr
}

func (lt *LanguageTool) post(ctx context.Context, form url.Values) ([]byte, error) {
	if err := lt.limiter.Wait(ctx, lt.endpoint); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if lt.userAgent != "" {
		req.Header.Set("User-Agent", lt.userAgent)
	}

	resp, err := lt.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// isRetryable reports transient failures: 429, 5xx and network errors
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type ltResponse struct {
	Matches *[]ltMatch `json:"matches"`
}

type ltMatch struct {
	Message      string `json:"message"`
	ShortMessage string `json:"shortMessage"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID       string `json:"id"`
		Category struct {
			ID string `json:"id"`
		} `json:"category"`
	} `json:"rule"`
}

// decodeMatches parses a /v2/check response. Matches whose span does not
// fall on character boundaries of text are dropped.
func decodeMatches(text string, body []byte) ([]model.Issue, error) {
	var resp ltResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Matches == nil {
		return nil, fmt.Errorf("decode response: no matches field")
	}

	offsets := newOffsetMap(text)
	issues := make([]model.Issue, 0, len(*resp.Matches))
	for _, m := range *resp.Matches {
		if m.Length < 0 {
			continue
		}
		start, ok := offsets.byteOffset(m.Offset)
		if !ok {
			continue
		}
		end, ok := offsets.byteOffset(m.Offset + m.Length)
		if !ok {
			continue
		}

		category := model.Category(m.Rule.Category.ID)
		if category == "" {
			category = model.CategoryOther
		}

		replacements := make([]string, 0, maxReplacements)
		for _, r := range m.Replacements {
			if len(replacements) == maxReplacements {
				break
			}
			replacements = append(replacements, r.Value)
		}

		issues = append(issues, model.Issue{
			RuleID:       m.Rule.ID,
			Category:     category,
			Message:      m.Message,
			ShortMessage: m.ShortMessage,
			Offset:       start,
			Length:       end - start,
			Replacements: replacements,
		})
	}
	return issues, nil
}

// offsetMap translates UTF-16 code unit positions, which LanguageTool
// reports, into byte offsets. Positions inside a surrogate pair hold -1.
type offsetMap []int

func newOffsetMap(text string) offsetMap {
	m := make(offsetMap, 0, len(text)+1)
	for i, r := range text {
		m = append(m, i)
		if len(utf16.Encode([]rune{r})) == 2 {
			m = append(m, -1)
		}
	}
	return append(m, len(text))
}

func (m offsetMap) byteOffset(unit int) (int, bool) {
	if unit < 0 || unit >= len(m) {
		return 0, false
	}
	b := m[unit]
	return b, b >= 0
}
