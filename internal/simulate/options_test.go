package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOptions_AppliesFunctionalOptions(t *testing.T) {
	opts := NewOptions(WithStepPeriodUs(50), WithNoiseSeed(42))
	assert.Equal(t, uint32(50), opts.StepPeriodUs)
	assert.Equal(t, uint64(42), opts.NoiseSeed)
}

func TestNewOptions_DefaultsToZeroValue(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, Options{}, opts)
}
