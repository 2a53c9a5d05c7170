// Package config loads and validates the guest-supplied BotConfiguration
// (spec §3) and the host-side track description (spec §6), following
// the teacher's YAML-first configuration style (pkg/core/pipeline's
// StepConfigurator: Config()/SetConfig() around a plain struct).
package config

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BotConfiguration is exactly the type returned by the guest's setup()
// export (spec §3/§6). All dimensions are millimeters except the gear
// ratio, matching the source's unit convention.
type BotConfiguration struct {
	Name           string `yaml:"name"`
	ColorMain      string `yaml:"color_main"`
	ColorSecondary string `yaml:"color_secondary"`

	WidthAxle   float32 `yaml:"width_axle"`
	LengthFront float32 `yaml:"length_front"`
	LengthBack  float32 `yaml:"length_back"`
	ClearingBack float32 `yaml:"clearing_back"`

	WheelDiameter float32 `yaml:"wheel_diameter"`

	GearRatioNum float32 `yaml:"gear_ratio_num"`
	GearRatioDen float32 `yaml:"gear_ratio_den"`

	FrontSensorsSpacing float32 `yaml:"front_sensors_spacing"`
	FrontSensorsHeight  float32 `yaml:"front_sensors_height"`
}

// WheelRadius is half of WheelDiameter, in millimeters.
func (c BotConfiguration) WheelRadius() float32 {
	return c.WheelDiameter / 2
}

// Validate checks every range in spec §3's BotConfiguration table. It
// returns a ConfigError wrapping every violation found, not just the
// first, so the driver can reject setup() with a complete report (spec
// §7 "Configuration" errors are rejected before building physics).
func (c BotConfiguration) Validate() error {
	var errs ConfigError

	inRange := func(field string, v, lo, hi float32) {
		if v < lo || v > hi {
			errs = append(errs, errors.Errorf("%s=%g out of range [%g,%g]", field, v, lo, hi))
		}
	}

	inRange("width_axle", c.WidthAxle, 100, 200)
	inRange("length_front", c.LengthFront, 100, 300)
	inRange("length_back", c.LengthBack, 10, 50)
	inRange("clearing_back", c.ClearingBack, 1, c.WheelRadius())
	inRange("wheel_diameter", c.WheelDiameter, 20, 40)
	inRange("gear_ratio_num", c.GearRatioNum, 1, 100)
	inRange("gear_ratio_den", c.GearRatioDen, 1, 100)
	inRange("front_sensors_spacing", c.FrontSensorsSpacing, 1, 15)
	inRange("front_sensors_height", c.FrontSensorsHeight, 1, c.WheelRadius())

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ConfigError collects every validation failure from Validate.
type ConfigError []error

func (e ConfigError) Error() string {
	msg := "invalid bot configuration:"
	for _, err := range e {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// LoadBotConfiguration parses a YAML document into a BotConfiguration
// and validates it.
func LoadBotConfiguration(data []byte) (BotConfiguration, error) {
	var cfg BotConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BotConfiguration{}, errors.Wrap(err, "parsing bot configuration")
	}
	if err := cfg.Validate(); err != nil {
		return BotConfiguration{}, err
	}
	return cfg, nil
}

// numericFieldCount is the number of little-endian float32 fields the
// guest's setup() export packs into its returned buffer: the
// dimensional fields used to build the physics world, in declaration
// order, skipping Name/ColorMain/ColorSecondary (presentation-only,
// irrelevant to physics and not worth a string wire format here).
const numericFieldCount = 9

// DecodedBotConfigurationSize is the byte length setup() must return.
const DecodedBotConfigurationSize = numericFieldCount * 4

// DecodeBotConfiguration unpacks the guest's setup() return value (spec
// §4.G step 3) into a BotConfiguration and validates it. This wire
// format — nine packed little-endian float32s in field order — is an
// implementation choice filling in for the absent WIT/component-model
// bindgen toolchain (see DESIGN.md); it carries only the numeric
// dimensions the physics bridge and sensors need.
func DecodeBotConfiguration(data []byte) (BotConfiguration, error) {
	if len(data) != DecodedBotConfigurationSize {
		return BotConfiguration{}, errors.Errorf(
			"setup() returned %d bytes, want %d", len(data), DecodedBotConfigurationSize)
	}
	readF32 := func(i int) float32 {
		bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
		return math.Float32frombits(bits)
	}
	cfg := BotConfiguration{
		WidthAxle:           readF32(0),
		LengthFront:         readF32(1),
		LengthBack:          readF32(2),
		ClearingBack:        readF32(3),
		WheelDiameter:       readF32(4),
		GearRatioNum:        readF32(5),
		GearRatioDen:        readF32(6),
		FrontSensorsSpacing: readF32(7),
		FrontSensorsHeight:  readF32(8),
	}
	if err := cfg.Validate(); err != nil {
		return BotConfiguration{}, err
	}
	return cfg, nil
}
