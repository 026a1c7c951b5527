package module

import (
	"github.com/lambilly/hass-tian-free/internal/platform/config"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
	"github.com/lambilly/hass-tian-free/internal/services/highlight/service"
)

// Options holds configuration settings for the highlight module
type Options struct {
	ScrollIntervalMinutes int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("TIAN_")

	minutes := tf.MayInt("SCROLL_INTERVAL", service.DefaultIntervalMinutes)
	if minutes < service.MinIntervalMinutes || minutes > service.MaxIntervalMinutes {
		logger.Get().Panic().
			Str("key", "TIAN_SCROLL_INTERVAL").
			Int("value", minutes).
			Msg("scroll interval must be 1..60 minutes")
	}

	return Options{ScrollIntervalMinutes: minutes}
}
