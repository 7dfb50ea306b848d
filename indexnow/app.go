package indexnow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrUnexpectedStatusCode = errors.New("unexpected status code")

type limiter interface {
	Wait(context.Context) error
}

type App struct {
	Config  Config
	Results *Results
	Client  *http.Client
	limiter limiter
	logger  *zap.Logger
}

func NewApp(cfg Config, logger *zap.Logger) *App {
	rateLimit := rate.Inf
	if cfg.RateLimit > 0 {
		rateLimit = rate.Limit(cfg.RateLimit)
	}

	return &App{
		Config:  cfg,
		Client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rateLimit, 1),
		logger:  logger,
		Results: &Results{
			Notified: []string{},
			Findings: []Finding{},
		},
	}
}

// Run notifies every configured page. It only returns an error when the run
// cannot start because the key is unresolvable. Failed pings and an
// interrupted sequence are logged and recorded in Results.
func (a *App) Run(ctx context.Context) error {
	if !ShouldNotify(a.Config.Context) {
		a.logger.Info("Skipping ping because CONTEXT is not 'production'.",
			zap.String("context", a.Config.Context))

		return nil
	}

	if len(a.Config.Pages) == 0 {
		return ErrNoPagesDefined
	}

	key, err := LoadKey(a.Config.EnvKey, a.Config.KeyFile)
	if err != nil {
		return err
	}

	keyLocation := a.Config.keyLocation()
	if !IsPageURL(keyLocation) {
		a.logger.Warn("key location is not an absolute URL, the endpoint will likely reject it",
			zap.String("keyLocation", keyLocation))
	}

	a.logger.Info("Notifying URLs to Bing/Yandex via IndexNow...",
		zap.Int("pages", len(a.Config.Pages)))
	for _, page := range a.Config.Pages {
		if err := a.limiter.Wait(ctx); err != nil {
			a.logger.Warn("Ping sequence interrupted.",
				zap.String("next", page),
				zap.Int("notified", len(a.Results.Notified)),
				zap.Error(err))

			return nil
		}

		a.Ping(ctx, page, key, keyLocation)
	}

	a.logger.Info("Ping sequence completed.",
		zap.Int("notified", len(a.Results.Notified)),
		zap.Int("failed", len(a.Results.Findings)))

	return nil
}

// Ping sends one IndexNow notification for page. The outcome is logged and
// recorded, never returned.
func (a *App) Ping(ctx context.Context, page, key, keyLocation string) {
	requestURL, err := BuildRequestURL(a.Config.Endpoint, page, key, keyLocation)
	if err != nil {
		a.logger.Error("Failed to notify", zap.String("url", page), zap.Error(err))
		a.addFinding(page, 0, err)

		return
	}

	statusCode, err := a.makeHTTPRequest(ctx, requestURL)
	if err != nil {
		a.logger.Error("Failed to notify", zap.String("url", page), zap.Error(err))
		a.addFinding(page, 0, err)

		return
	}

	if statusCode != http.StatusOK {
		a.logger.Warn("responded with unexpected status",
			zap.String("url", page), zap.Int("status", statusCode))
		a.addFinding(page, statusCode, a.statusCodeMismatchError(statusCode))

		return
	}

	a.logger.Info("Successfully notified", zap.String("url", page))
	a.Results.Notified = append(a.Results.Notified, page)
}

// BuildRequestURL encodes page, key and keyLocation as query parameters of
// the endpoint.
func BuildRequestURL(endpoint, page, key, keyLocation string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	query := u.Query()
	query.Set("url", page)
	query.Set("key", key)
	query.Set("keyLocation", keyLocation)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func (a *App) makeHTTPRequest(ctx context.Context, requestURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("client: could not create request: %w", err)
	}

	res, err := a.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("client: error making http request: %w", err)
	}
	defer res.Body.Close()

	// drain so the connection can be reused for the next page
	_, _ = io.Copy(io.Discard, res.Body)

	return res.StatusCode, nil
}

func (a *App) statusCodeMismatchError(statusCode int) error {
	return fmt.Errorf(
		"%w: expected %d, got %d",
		ErrUnexpectedStatusCode,
		http.StatusOK,
		statusCode,
	)
}

func (a *App) addFinding(page string, statusCode int, err error) {
	a.Results.Findings = append(
		a.Results.Findings,
		Finding{URL: page, StatusCode: statusCode, Error: fmt.Sprint(err)},
	)
}
