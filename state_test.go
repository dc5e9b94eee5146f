package vt102

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateNames(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateGround, "Ground"},
		{StateEscape, "Escape"},
		{StateCSI, "CSI"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestStateDefaultValue(t *testing.T) {
	var s State
	assert.Equal(t, StateGround, s, "default state should be Ground")
}

func TestStateStringUnknown(t *testing.T) {
	assert.Equal(t, "State(99)", State(99).String())
}
