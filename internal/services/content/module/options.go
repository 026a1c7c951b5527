package module

import (
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/platform/config"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
	"github.com/lambilly/hass-tian-free/internal/services/content/service"
)

// apiKeyLen is the fixed length of a Tian API key
const apiKeyLen = 32

// Options holds configuration settings for the content module
type Options struct {
	APIKey       string
	EnabledTypes []catalog.Type
	CacheTTL     time.Duration
	RetryDelay   time.Duration
	PollEvery    time.Duration
	HTTPTimeout  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("TIAN_")

	key := tf.MustString("API_KEY")
	if len(key) != apiKeyLen {
		logger.Get().Panic().Str("key", "TIAN_API_KEY").Int("len", len(key)).Msg("api key must be 32 characters")
	}

	var enabled []catalog.Type
	for _, s := range tf.MayCSV("ENABLED_TYPES", nil) {
		enabled = append(enabled, catalog.Type(s))
	}

	return Options{
		APIKey:       key,
		EnabledTypes: enabled,
		CacheTTL:     tf.MayDuration("CACHE_TTL", service.DefaultTTL),
		RetryDelay:   tf.MayDuration("RETRY_DELAY", service.DefaultRetryDelay),
		PollEvery:    tf.MayDuration("POLL_EVERY", service.DefaultPollEvery),
		HTTPTimeout:  tf.MayDuration("HTTP_TIMEOUT", 15*time.Second),
	}
}
