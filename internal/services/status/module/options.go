package module

import "slotwatch/internal/platform/config"

// Options holds configuration settings for the status module
type Options struct {
	Workers int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_STATUS_")
	return Options{
		Workers: sf.MayInt("WORKERS", 4),
	}
}
