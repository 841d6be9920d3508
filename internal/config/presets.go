package config

import "sort"

// Presets name the file sets written by the ProMP learning pipeline.
var Presets = map[string]*Config{
	"training": {
		DemoPattern: "demo%d.csv", DemoCount: 10,
		MeanFile: "mean.csv", DeviationFile: "variance.csv",
	},
	"std": {
		DemoPattern: "demo%d.csv", DemoCount: 10,
		MeanFile: "mean.csv", DeviationFile: "stdDeviation.csv",
	},
	"modulated": {
		DemoPattern: "demo%d.csv", DemoCount: 10,
		MeanFile: "meanModulated.csv", DeviationFile: "stdDeviationModulated.csv",
	},
	"conditioned": {
		DemoPattern: "demo%d.csv", DemoCount: 10,
		MeanFile: "meanConditioned.csv", DeviationFile: "stdDeviationConditioned.csv",
	},
	"testing": {
		DemoPattern: "test%d.csv", DemoCount: 6,
		MeanFile: "mean.csv", DeviationFile: "stdDeviation.csv",
	},
}

// GetPreset returns the defaults with the preset's file set applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.DemoPattern = p.DemoPattern
	cfg.DemoCount = p.DemoCount
	cfg.MeanFile = p.MeanFile
	cfg.DeviationFile = p.DeviationFile
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
