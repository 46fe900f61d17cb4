package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"commander/internal/jamf"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Jamf struct {
	BaseURL        string `yaml:"base_url"`
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	TokenEndpoint  string `yaml:"token_endpoint"`
	ReadAttempts   int    `yaml:"read_attempts"`
}

// Configured 表示是否具备连接后端的最少配置。
func (j Jamf) Configured() bool {
	return strings.TrimSpace(j.BaseURL) != "" && j.ClientID != "" && j.ClientSecret != ""
}

// TokenURL 返回换取 token 的完整地址。
func (j Jamf) TokenURL() string {
	if strings.HasPrefix(j.TokenEndpoint, "http://") || strings.HasPrefix(j.TokenEndpoint, "https://") {
		return j.TokenEndpoint
	}
	return strings.TrimRight(j.BaseURL, "/") + j.TokenEndpoint
}

type Storage struct {
	Dir string `yaml:"dir"`
}

type Matching struct {
	RefreshCron    string `yaml:"refresh_cron"`
	AutoRunOnStart *bool  `yaml:"auto_run_on_start"`
}

type Hydrate struct {
	Concurrency int `yaml:"concurrency"`
}

type Bulk struct {
	DeployDelayMS *int `yaml:"deploy_delay_ms"`
	MutateDelayMS int  `yaml:"mutate_delay_ms"`
}

// DeployDelay 返回部署间隔。
func (b Bulk) DeployDelay() time.Duration {
	if b.DeployDelayMS == nil {
		return 500 * time.Millisecond
	}
	return time.Duration(*b.DeployDelayMS) * time.Millisecond
}

// MutateDelay 返回移动/删除间隔。
func (b Bulk) MutateDelay() time.Duration {
	return time.Duration(b.MutateDelayMS) * time.Millisecond
}

type Log struct {
	Level string `yaml:"level"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Jamf     Jamf     `yaml:"jamf"`
	Storage  Storage  `yaml:"storage"`
	Matching Matching `yaml:"matching"`
	Hydrate  Hydrate  `yaml:"hydrate"`
	Bulk     Bulk     `yaml:"bulk"`
	Log      Log      `yaml:"log"`
}

// AutoRun 表示启动时恢复到完整输入后是否自动匹配，默认开启。
func (c Config) AutoRun() bool {
	return c.Matching.AutoRunOnStart == nil || *c.Matching.AutoRunOnStart
}

// LoadConfig 从文件加载配置，文件不存在时只使用默认值与环境变量。
// 同目录或工作目录下的 .env 会先被载入，JAMF_* 变量覆盖文件中的值。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env")

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("解析配置失败: %w", err)
		}
	}

	envOverride(&cfg.Jamf.BaseURL, "JAMF_BASE_URL")
	envOverride(&cfg.Jamf.ClientID, "JAMF_CLIENT_ID")
	envOverride(&cfg.Jamf.ClientSecret, "JAMF_CLIENT_SECRET")
	envOverride(&cfg.Storage.Dir, "COMMANDER_STORAGE_DIR")
	envOverride(&cfg.Log.Level, "COMMANDER_LOG_LEVEL")

	cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) withDefaults() {
	if strings.TrimSpace(c.HTTP.Listen) == "" {
		c.HTTP.Listen = ":8080"
	}
	if c.Jamf.TimeoutSeconds <= 0 {
		c.Jamf.TimeoutSeconds = 30
	}
	if c.Jamf.TokenEndpoint == "" {
		c.Jamf.TokenEndpoint = jamf.DefaultTokenPath
	}
	if c.Jamf.ReadAttempts <= 0 {
		c.Jamf.ReadAttempts = 3
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		c.Storage.Dir = filepath.Join(home, ".commander")
	}
	if c.Hydrate.Concurrency <= 0 {
		c.Hydrate.Concurrency = 8
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c Config) validate() error {
	if c.Bulk.DeployDelayMS != nil && *c.Bulk.DeployDelayMS < 0 {
		return errors.New("bulk.deploy_delay_ms 不能为负数")
	}
	if c.Bulk.MutateDelayMS < 0 {
		return errors.New("bulk.mutate_delay_ms 不能为负数")
	}
	return nil
}

func loadDotEnv(files ...string) {
	seen := make(map[string]bool)
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
