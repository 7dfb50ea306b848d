package indexnow

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultEndpoint   = "https://api.indexnow.org/indexnow"
	DefaultKeyFile    = "89ec8c9a460d489e9f48ce70be1d24be.txt"
	DefaultSiteURL    = "https://prosperfactory.com"
	DefaultTimeout    = 10 * time.Second
	DefaultRateLimit  = 5.0
	ProductionContext = "production"
)

// Config holds everything a notification run needs. Env-sourced values are
// filled by ConfigFromEnv, the rest by the caller.
type Config struct {
	Context     string
	EnvKey      string
	KeyLocation string
	KeyFile     string
	SiteURL     string
	Endpoint    string
	Pages       []string
	Timeout     time.Duration
	RateLimit   float64 // requests per second
}

// ConfigFromEnv reads CONTEXT, INDEXNOW_KEY and INDEXNOW_KEY_LOCATION and
// applies defaults for everything else.
func ConfigFromEnv(getenv func(string) string) Config {
	return Config{
		Context:     getenv("CONTEXT"),
		EnvKey:      getenv("INDEXNOW_KEY"),
		KeyLocation: getenv("INDEXNOW_KEY_LOCATION"),
		KeyFile:     DefaultKeyFile,
		SiteURL:     DefaultSiteURL,
		Endpoint:    DefaultEndpoint,
		Pages:       DefaultPages(DefaultSiteURL),
		Timeout:     DefaultTimeout,
		RateLimit:   DefaultRateLimit,
	}
}

// ShouldNotify reports whether the deploy context is a production deploy.
// Deploy previews and branch deploys are skipped.
func ShouldNotify(context string) bool {
	return strings.ToLower(context) == ProductionContext
}

// DefaultKeyLocation is where the key-verification file is hosted on the site.
func DefaultKeyLocation(siteURL, keyFile string) string {
	return strings.TrimRight(siteURL, "/") + "/" + filepath.Base(keyFile)
}

func (c Config) keyLocation() string {
	if c.KeyLocation != "" {
		return c.KeyLocation
	}

	return DefaultKeyLocation(c.SiteURL, c.KeyFile)
}
