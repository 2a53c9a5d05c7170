package config

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestConfig(vals [numericFieldCount]float32) []byte {
	buf := make([]byte, DecodedBotConfigurationSize)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	return buf
}

func TestDecodeBotConfiguration_RoundTrips(t *testing.T) {
	buf := encodeTestConfig([numericFieldCount]float32{150, 150, 30, 5, 30, 1, 20, 5, 5})

	cfg, err := DecodeBotConfiguration(buf)
	require.NoError(t, err)
	assert.Equal(t, float32(150), cfg.WidthAxle)
	assert.Equal(t, float32(20), cfg.GearRatioDen)
	assert.Equal(t, float32(15), cfg.WheelRadius())
}

func TestDecodeBotConfiguration_RejectsWrongSize(t *testing.T) {
	_, err := DecodeBotConfiguration([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDecodeBotConfiguration_RejectsOutOfRange(t *testing.T) {
	buf := encodeTestConfig([numericFieldCount]float32{1, 150, 30, 5, 30, 1, 20, 5, 5})
	_, err := DecodeBotConfiguration(buf)
	assert.Error(t, err, "width_axle=1 is below the valid range")
}
