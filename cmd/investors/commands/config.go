package commands

import (
	"investorparser/internal/components/telemetry"
	"investorparser/internal/recordstore"
)

const configFile = "investors.json5"

type FetchConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	UserAgent         string  `json:"user_agent"`
}

type Config struct {
	// PagesDir holds the saved profile pages, one .html file per investor.
	PagesDir string `json:"pages_dir"`
	// Output is the JSON file the batch command writes and show reads.
	Output  string                  `json:"output"`
	Workers int                     `json:"workers"`
	Store   recordstore.Config      `json:"store"`
	Fetch   FetchConfig             `json:"fetch"`
	Log     telemetry.LogFileConfig `json:"log"`
	Otlp    telemetry.OtlpConfig    `json:"otlp"`
}

var defaultConfig = Config{
	PagesDir: "pages",
	Output:   "investors.json",
	Workers:  4,
	Fetch: FetchConfig{
		RequestsPerSecond: 2,
		TimeoutSeconds:    30,
	},
	Log: telemetry.LogFileConfig{
		MaxSizeMB:  10,
		MaxBackups: 3,
	},
}
