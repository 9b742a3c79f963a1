package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUsableBeforeSetup(t *testing.T) {
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Error("boom", "key", "value")
		Warn("careful")
	})
}

func TestSetupReplacesGlobal(t *testing.T) {
	before := Log
	Setup("development")
	assert.NotNil(t, Log)
	assert.NotSame(t, before, Log)
}
