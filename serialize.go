package figkit

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ToJSON renders the configuration as indented JSON. Field order is
// fixed by the struct, so repeated calls are byte-stable.
func (c ChartConfig) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ToYAML renders the configuration as YAML.
func (c ChartConfig) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// FromJSON loads a configuration from JSON. Unknown fields are
// ignored and missing fields keep their defaults, so configs written
// by older or newer versions still load.
func FromJSON(data []byte) (ChartConfig, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ChartConfig{}, err
	}
	return cfg, nil
}

// FromYAML loads a configuration from YAML with the same field policy
// as FromJSON.
func FromYAML(data []byte) (ChartConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ChartConfig{}, err
	}
	return cfg, nil
}
