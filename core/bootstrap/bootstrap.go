package bootstrap

import (
	"fmt"

	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	"github.com/xbnstudios/furcast-nsfw-bot/core/metrics"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit      func(*coreconfig.Config) error
	RegisterMetrics func()
}

// Run initializes the logger and registers metrics collectors.
func Run(opts Options) error {
	if opts.Config == nil {
		return fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	register := opts.RegisterMetrics
	if register == nil {
		register = metrics.MustRegister
	}
	register()

	return nil
}
