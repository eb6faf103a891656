package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when neither the config file nor the environment sets
// a value.
const (
	DefaultThresholdPct = 10
	DefaultStability    = "moderate"
)

// Config represents the flat vintry configuration.
type Config struct {
	Version           string `json:"version"`
	CellarID          string `json:"cellar_id,omitempty"`          // active cellar
	ReportPath        string `json:"report_path,omitempty"`        // analysis report JSON
	ReasoningEndpoint string `json:"reasoning_endpoint,omitempty"` // OpenAI-compatible base URL
	ReasoningKey      string `json:"reasoning_key,omitempty"`      // API key (VINTRY_REASONING_KEY overrides)
	RefineModel       string `json:"refine_model,omitempty"`       // plan refinement model
	ReviewModel       string `json:"review_model,omitempty"`       // escalated review model
	ThresholdPct      int    `json:"threshold_pct,omitempty"`      // default change threshold percentage
	DefaultStability  string `json:"default_stability,omitempty"`  // low|moderate|high
}

// LoadConfig reads .vintry/config.json from the specified directory.
// Resolution order: the given directory, then the user's home directory.
// A missing config is not an error; defaults apply.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := readConfig(filepath.Join(dir, ".vintry", "config.json"))
	if err == nil {
		return applyEnv(cfg), nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	if home, herr := os.UserHomeDir(); herr == nil {
		cfg, err = readConfig(filepath.Join(home, ".vintry", "config.json"))
		if err == nil {
			return applyEnv(cfg), nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return applyEnv(&Config{}), nil
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyEnv layers environment overrides and fills defaults.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("VINTRY_CELLAR_ID"); v != "" {
		cfg.CellarID = v
	}
	if v := os.Getenv("VINTRY_REPORT_PATH"); v != "" {
		cfg.ReportPath = v
	}
	if v := os.Getenv("VINTRY_REASONING_ENDPOINT"); v != "" {
		cfg.ReasoningEndpoint = v
	}
	if v := os.Getenv("VINTRY_REASONING_KEY"); v != "" {
		cfg.ReasoningKey = v
	}
	if v := os.Getenv("VINTRY_REFINE_MODEL"); v != "" {
		cfg.RefineModel = v
	}
	if v := os.Getenv("VINTRY_REVIEW_MODEL"); v != "" {
		cfg.ReviewModel = v
	}

	if cfg.ThresholdPct <= 0 || cfg.ThresholdPct > 100 {
		cfg.ThresholdPct = DefaultThresholdPct
	}
	if cfg.DefaultStability == "" {
		cfg.DefaultStability = DefaultStability
	}
	if cfg.CellarID == "" {
		cfg.CellarID = "default"
	}
	return cfg
}

// SaveConfig writes config.json to the directory's .vintry folder.
func SaveConfig(dir string, cfg *Config) error {
	vintryDir := filepath.Join(dir, ".vintry")
	if err := os.MkdirAll(vintryDir, 0755); err != nil {
		return fmt.Errorf("failed to create .vintry dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(vintryDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
