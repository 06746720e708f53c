package bootstrap

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/ContestBot_Go/internal/config"
	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
)

// InitializeEventSystem builds the in-process bus and the retrying publisher the
// contest services publish through. Unset retry settings use the bootstrap defaults;
// the dead-letter directory is created if needed.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	var (
		retries    = cmp.Or(cfg.EventMaxRetries, EventDefaultMaxRetries)
		delay      = cmp.Or(cfg.EventRetryDelay, EventDefaultRetryDelay)
		deadLetter = cmp.Or(cfg.EventDeadLetterPath, EventDefaultDeadLetterPath)
	)

	if err := os.MkdirAll(filepath.Dir(deadLetter), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, retries, delay, deadLetter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", retries,
		"retry_delay", delay,
		"deadletter_path", deadLetter)
	return bus, publisher, nil
}
