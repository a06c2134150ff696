package config

import (
	"flag"
	"time"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLibrary  = flag.String("library", "", "Path to animation library")
	flagTickRate = flag.Int("tick-rate", 0, "Updates per second")
	flagDuration = flag.Duration("duration", 0, "Simulated playback time")
	flagWatch    = flag.Bool("watch", false, "Reload the animation library on change")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns positional arguments, which name clips to queue.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLibrary != "" {
		cfg.Animation.Library = *flagLibrary
	}
	if *flagTickRate > 0 {
		cfg.Playback.TickRate = *flagTickRate
	}
	if *flagDuration > 0 {
		cfg.Playback.Duration = *flagDuration
	}
	if *flagWatch {
		cfg.Playback.Watch = true
		cfg.Playback.Duration = time.Duration(0)
	}
	if args := Args(); len(args) > 0 {
		cfg.Playback.Queue = append(cfg.Playback.Queue, args...)
	}
}
