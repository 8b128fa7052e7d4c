package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Output struct {
		Dir       string `yaml:"dir"`
		Language  string `yaml:"language"` // csharp or cpp
		ClassName string `yaml:"class_name"`
		Comments  bool   `yaml:"comments"`
	} `yaml:"output"`
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"` // SQLite database file
	} `yaml:"cache"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Output.Dir = "."
	cfg.Output.Language = "csharp"
	cfg.Output.Comments = true
	cfg.Cache.Enabled = true
	cfg.Cache.Path = "scenegen-cache.db"
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if lang := os.Getenv("SCENEGEN_LANGUAGE"); lang != "" {
		cfg.Output.Language = lang
	}
	if dir := os.Getenv("SCENEGEN_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if cache := os.Getenv("SCENEGEN_CACHE"); cache != "" {
		cfg.Cache.Path = cache
	}

	return cfg, nil
}
