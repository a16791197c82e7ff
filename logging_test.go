package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, setupLogger(OutputConfig{LogLevel: "debug"}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, setupLogger(OutputConfig{LogLevel: "info"}).GetLevel())
	assert.Equal(t, logrus.WarnLevel, setupLogger(OutputConfig{LogLevel: "warn"}).GetLevel())
	assert.Equal(t, logrus.ErrorLevel, setupLogger(OutputConfig{LogLevel: "error"}).GetLevel())

	// Unknown or empty levels fall back on the verbose switch
	assert.Equal(t, logrus.InfoLevel, setupLogger(OutputConfig{LogLevel: "weird"}).GetLevel())
	assert.Equal(t, logrus.DebugLevel, setupLogger(OutputConfig{Verbose: true}).GetLevel())

	// Level names are case-insensitive
	assert.Equal(t, logrus.WarnLevel, setupLogger(OutputConfig{LogLevel: "WARN"}).GetLevel())
}
