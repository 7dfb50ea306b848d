package pagecheck

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const (
	DefaultSettle      = 2 * time.Second
	DefaultStateGlobal = "__PRELOADED_STATE__"
)

var (
	ErrBrowserLaunch      = errors.New("failed to launch browser")
	ErrNavigation         = errors.New("navigation failed")
	ErrStateEval          = errors.New("failed to read global state")
	ErrInvalidStateGlobal = errors.New("invalid global state name")
)

// DefaultPages are the localized home pages of the site, relative to its root.
var DefaultPages = []string{
	"index.html",
	"fr/index.html",
	"es/index.html",
	"de/index.html",
}

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

type Options struct {
	// Root is the directory relative page paths resolve against.
	Root string
	// BrowserBin overrides the Chromium binary; empty lets rod find or fetch one.
	BrowserBin  string
	Headless    bool
	NoSandbox   bool
	Settle      time.Duration
	StateGlobal string
}

func DefaultOptions() Options {
	return Options{
		Headless:    true,
		Settle:      DefaultSettle,
		StateGlobal: DefaultStateGlobal,
	}
}

type Analyzer struct {
	opts   Options
	logger *zap.Logger
}

func NewAnalyzer(opts Options, logger *zap.Logger) (*Analyzer, error) {
	if opts.StateGlobal == "" {
		opts.StateGlobal = DefaultStateGlobal
	}
	if !jsIdentifier.MatchString(opts.StateGlobal) {
		return nil, fmt.Errorf("%q: %w", opts.StateGlobal, ErrInvalidStateGlobal)
	}

	return &Analyzer{opts: opts, logger: logger}, nil
}

// Analyze loads path in a fresh headless browser and collects what the page
// logged during the settle window plus the keys of its global state object.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Report, error) {
	uri, err := FileURI(a.resolve(path))
	if err != nil {
		return nil, err
	}

	l := launcher.New().
		Context(ctx).
		Headless(a.opts.Headless).
		NoSandbox(a.opts.NoSandbox)
	if a.opts.BrowserBin != "" {
		l = l.Bin(a.opts.BrowserBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}
	a.logger.Debug("browser launched", zap.String("controlURL", controlURL))

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()

		return nil, fmt.Errorf("%w: could not connect: %w", ErrBrowserLaunch, err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			a.logger.Warn("failed to close browser", zap.Error(closeErr))
		}
		l.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: could not open page: %w", ErrBrowserLaunch, err)
	}

	pageCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	page = page.Context(pageCtx)

	logs := &logCollector{}
	// subscribe before navigating so scripts running during load are captured
	wait := page.EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			logs.add(formatConsole(e))
		},
		func(e *proto.RuntimeExceptionThrown) {
			logs.add(formatException(e))
		},
	)
	go wait()

	if err := page.Navigate(uri); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNavigation, uri, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %s: waiting for load: %w", ErrNavigation, uri, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(a.opts.Settle):
	}

	stateKeys, hasState, err := a.readStateKeys(page)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Path:      path,
		URI:       uri,
		Logs:      logs.snapshot(),
		StateKeys: stateKeys,
		HasState:  hasState,
	}
	a.logger.Debug("page analyzed",
		zap.String("path", path),
		zap.Int("logs", len(report.Logs)),
		zap.Bool("hasState", hasState))

	return report, nil
}

func (a *Analyzer) resolve(path string) string {
	if a.opts.Root == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(a.opts.Root, path)
}

func (a *Analyzer) readStateKeys(page *rod.Page) ([]string, bool, error) {
	res, err := page.Eval(stateExpression(a.opts.StateGlobal))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStateEval, err)
	}

	if res.Type != proto.RuntimeRemoteObjectTypeObject ||
		res.Subtype == proto.RuntimeRemoteObjectSubtypeNull {
		return nil, false, nil
	}

	keys := []string{}
	for _, key := range res.Value.Arr() {
		keys = append(keys, key.Str())
	}

	return keys, true, nil
}

func stateExpression(global string) string {
	return fmt.Sprintf(
		`() => window.%[1]s ? Object.keys(window.%[1]s) : null`,
		global,
	)
}

// FileURI resolves path against the working directory and returns it as a
// file:// URI.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", path, err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// windows drive letter
		p = "/" + p
	}

	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}

type logCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *logCollector) add(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *logCollector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string{}, c.lines...)
}
