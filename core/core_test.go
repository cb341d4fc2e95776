package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "READY", StateReady.String())
	assert.Equal(t, "SCRIPT_ERROR", StateScriptError.String())
	assert.Equal(t, "CLOSING", StateClosing.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
