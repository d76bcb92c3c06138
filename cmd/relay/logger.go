package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// botLogger routes the telegram client's internal logging into zerolog.
// The client uses Println for polling errors and Printf for debug dumps.
type botLogger struct {
	logger zerolog.Logger
}

func newBotLogger(logger zerolog.Logger) *botLogger {
	return &botLogger{
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

func (b *botLogger) Println(v ...interface{}) {
	b.logger.Warn().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (b *botLogger) Printf(format string, v ...interface{}) {
	b.logger.Debug().Msg(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}
