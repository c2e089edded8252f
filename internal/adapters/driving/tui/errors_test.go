package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingOrchestrator.Error(), ErrInvalidPorts.Error())
	assert.Contains(t, ErrMissingOrchestrator.Error(), "orchestrator")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
