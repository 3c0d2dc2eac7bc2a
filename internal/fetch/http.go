package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Defaults applied by NewHTTPSource when the config leaves them unset.
const (
	DefaultTimeout        = 10 * time.Second
	DefaultBreakerTimeout = 30 * time.Second

	maxBodyBytes    = 4 << 20
	maxDrainBytes   = 4 << 10
	breakerInterval = 60 * time.Second
)

// HTTPConfig configures an HTTPSource.
type HTTPConfig struct {
	// BaseURL is the scheme and host of the API, e.g. http://localhost:5000.
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RateLimit is the client-side request budget in requests per second.
	// Zero disables client-side limiting.
	RateLimit float64
	Burst     int

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit. Zero disables the breaker.
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// PathFunc maps a key to the request path.
type PathFunc func(key string) string

// InfluencerPath is the detail endpoint path for a username.
func InfluencerPath(key string) string {
	return "/api/influencer/" + url.PathEscape(key)
}

// LeaderboardKey is the cache key of the single leaderboard document.
const LeaderboardKey = "leaderboard"

// LeaderboardPath is the leaderboard endpoint path. The key is ignored.
func LeaderboardPath(string) string {
	return "/api/leaderboard"
}

// HTTPSource fetches JSON documents over HTTP and decodes them into T.
type HTTPSource[T any] struct {
	baseURL  string
	path     PathFunc
	client   *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	validate func(*T) error
}

// NewHTTPSource builds an HTTPSource. validate, when non-nil, runs on every
// decoded body and its failure is reported as ErrParse.
func NewHTTPSource[T any](name string, cfg HTTPConfig, path PathFunc, validate func(*T) error) *HTTPSource[T] {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	s := &HTTPSource[T]{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		path:     path,
		client:   client,
		validate: validate,
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if cfg.BreakerFailures > 0 {
		s.breaker = newBreaker(name, cfg.BreakerFailures, cfg.BreakerTimeout)
	}
	return s
}

func newBreaker(name string, failures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}
	st := gobreaker.Settings{Name: name}
	st.Interval = breakerInterval
	st.Timeout = timeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= failures
	}
	// Only transport failures and 5xx responses count against the circuit.
	st.IsSuccessful = func(err error) bool {
		if err == nil {
			return true
		}
		if errors.Is(err, context.Canceled) {
			return true
		}
		var se *StatusError
		if errors.As(err, &se) {
			return se.Code < http.StatusInternalServerError
		}
		return !errors.Is(err, ErrNetwork)
	}
	return gobreaker.NewCircuitBreaker(st)
}

// Fetch implements Source.
func (s *HTTPSource[T]) Fetch(ctx context.Context, key string) (T, error) {
	var zero T

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, fmt.Errorf("%w: client rate limit: %w", ErrNetwork, err)
		}
	}

	if s.breaker == nil {
		return s.do(ctx, key)
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.do(ctx, key)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		return zero, err
	}
	return out.(T), nil
}

func (s *HTTPSource[T]) do(ctx context.Context, key string) (T, error) {
	var zero T
	target := s.baseURL + s.path(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return zero, fmt.Errorf("%w: building request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		return zero, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		return zero, &StatusError{Code: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		return zero, fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if s.validate != nil {
		if err := s.validate(&v); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	return v, nil
}
