package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggersUsableBeforeSetup(t *testing.T) {
	// Services log during tests where SetupLogger never runs; the
	// package-level loggers must work out of the box.
	assert.NotPanics(t, func() {
		Info("info message %d", 1)
		Warning("warning message %d", 2)
		Error("error message %d", 3)
	})
}
