package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v2"
)

// =============================================================================
// BLAST configuration, with environment overrides
// =============================================================================

type Config struct {
	Frame      FrameConfig      `yaml:"frame"`
	Bitcoin    BitcoinConfig    `yaml:"bitcoin"`
	Paths      PathsConfig      `yaml:"paths"`
	Workload   WorkloadConfig   `yaml:"workload"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Log        LogConfig        `yaml:"log"`
}

// FrameConfig controls the event scheduler's cadence. Defaults mirror the
// original FRAME_RATE/MINE_RATE/BLOCKS_PER_MINE constants.
type FrameConfig struct {
	RateSec       int `yaml:"rate_sec"`
	MineEvery     int `yaml:"mine_every_frames"`
	BlocksPerMine int `yaml:"blocks_per_mine"`

	// WarmupSec is how long StartSimulation waits after setup and before
	// the scheduler/dispatcher/workload fan-out, giving freshly opened
	// channels time to reach usable depth.
	WarmupSec int `yaml:"warmup_sec"`
}

// BitcoinConfig points at the backing bitcoind regtest instance.
type BitcoinConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Pass     string `yaml:"pass"`
	UseTLS   bool   `yaml:"use_tls"`
	OpenConf int    `yaml:"open_channel_confirm_blocks"`
	FundConf int    `yaml:"fund_node_confirm_blocks"`
}

// PathsConfig locates the model catalog and simulation data on disk.
type PathsConfig struct {
	ModelsDir string `yaml:"models_dir"`
	SimsDir   string `yaml:"sims_dir"`
}

// WorkloadConfig carries the sim-ln traffic generator defaults.
type WorkloadConfig struct {
	ExpectedPaymentMsat int64   `yaml:"expected_payment_msat"`
	ActivityMultiplier  float64 `yaml:"activity_multiplier"`
	ResultsDir          string  `yaml:"results_dir"`
	ResultsBatchSize    int     `yaml:"results_batch_size"`
}

// DispatcherConfig holds settings for the per-model RPC circuit breaker.
// Nothing reads them: circuitbreaker.ModelRPCConfig uses its own fixed
// values, which equal the defaults applied below.
type DispatcherConfig struct {
	BreakerMaxHalfOpen    int `yaml:"breaker_max_half_open"`
	BreakerTimeoutSec     int `yaml:"breaker_timeout_sec"`
	BreakerFailThreshold  int `yaml:"breaker_fail_threshold"`
	BreakerIntervalSec    int `yaml:"breaker_interval_sec"`
}

// LogConfig controls where structured logs land.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the process-wide singleton config, loaded from CONFIG_PATH
// (default "blast.yaml") with environment overrides and defaults applied.
func Get() *Config {
	once.Do(func() {
		cfg, err := LoadConfig(getEnv("CONFIG_PATH", "blast.yaml"))
		if err != nil {
			slog.Warn("config: failed to load config file, using defaults", "error", err)
		}
		if cfg == nil {
			cfg = &Config{}
		}
		cfg.applyEnvOverrides()
		cfg.applyDefaults()
		instance = cfg
	})
	return instance
}

// LoadConfig loads config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := getEnvInt("BLAST_FRAME_RATE_SEC", 0); v > 0 {
		c.Frame.RateSec = v
	}
	if v := getEnvInt("BLAST_MINE_EVERY_FRAMES", 0); v > 0 {
		c.Frame.MineEvery = v
	}
	if v := getEnvInt("BLAST_BLOCKS_PER_MINE", 0); v > 0 {
		c.Frame.BlocksPerMine = v
	}

	c.Bitcoin.Host = getEnv("BLAST_BITCOIN_HOST", c.Bitcoin.Host)
	c.Bitcoin.User = getEnv("BLAST_BITCOIN_USER", c.Bitcoin.User)
	c.Bitcoin.Pass = getEnv("BLAST_BITCOIN_PASS", c.Bitcoin.Pass)
	c.Bitcoin.UseTLS = getEnvBool("BLAST_BITCOIN_TLS", c.Bitcoin.UseTLS)

	c.Paths.ModelsDir = getEnv("BLAST_MODELS_DIR", c.Paths.ModelsDir)
	c.Paths.SimsDir = getEnv("BLAST_SIMS_DIR", c.Paths.SimsDir)

	if v := getEnvInt("BLAST_EXPECTED_PAYMENT_MSAT", 0); v > 0 {
		c.Workload.ExpectedPaymentMsat = int64(v)
	}
	if v := getEnvFloat("BLAST_ACTIVITY_MULTIPLIER", 0); v > 0 {
		c.Workload.ActivityMultiplier = v
	}
	c.Workload.ResultsDir = getEnv("BLAST_RESULTS_DIR", c.Workload.ResultsDir)

	c.Log.Path = getEnv("BLAST_LOG_PATH", c.Log.Path)
	c.Log.Level = getEnv("BLAST_LOG_LEVEL", c.Log.Level)
}

// applyDefaults sets sensible defaults for zero-valued config fields. The
// numeric defaults match the constants the original harness compiled in
// (FRAME_RATE=1, MINE_RATE=5, BLOCKS_PER_MINE=10,
// EXPECTED_PAYMENT_AMOUNT=3_800_000, ACTIVITY_MULTIPLIER=2.0).
func (c *Config) applyDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	blastHome := filepath.Join(home, ".blast")

	if c.Frame.RateSec == 0 {
		c.Frame.RateSec = 1
	}
	if c.Frame.MineEvery == 0 {
		c.Frame.MineEvery = 5
	}
	if c.Frame.BlocksPerMine == 0 {
		c.Frame.BlocksPerMine = 10
	}
	if c.Frame.WarmupSec == 0 {
		c.Frame.WarmupSec = 10
	}
	if c.Bitcoin.Host == "" {
		c.Bitcoin.Host = "127.0.0.1:18443"
	}
	if c.Bitcoin.User == "" {
		c.Bitcoin.User = "user"
	}
	if c.Bitcoin.Pass == "" {
		c.Bitcoin.Pass = "pass"
	}
	if c.Bitcoin.OpenConf == 0 {
		c.Bitcoin.OpenConf = 100
	}
	if c.Bitcoin.FundConf == 0 {
		c.Bitcoin.FundConf = 50
	}
	if c.Paths.ModelsDir == "" {
		c.Paths.ModelsDir = filepath.Join(blastHome, "blast_models")
	}
	if c.Paths.SimsDir == "" {
		c.Paths.SimsDir = filepath.Join(blastHome, "blast_sims")
	}
	if c.Workload.ExpectedPaymentMsat == 0 {
		c.Workload.ExpectedPaymentMsat = 3_800_000
	}
	if c.Workload.ActivityMultiplier == 0 {
		c.Workload.ActivityMultiplier = 2.0
	}
	if c.Workload.ResultsDir == "" {
		c.Workload.ResultsDir = filepath.Join(blastHome, "simln_results")
	}
	if c.Workload.ResultsBatchSize == 0 {
		c.Workload.ResultsBatchSize = 1
	}
	if c.Dispatcher.BreakerMaxHalfOpen == 0 {
		c.Dispatcher.BreakerMaxHalfOpen = 1
	}
	if c.Dispatcher.BreakerTimeoutSec == 0 {
		c.Dispatcher.BreakerTimeoutSec = 15
	}
	if c.Dispatcher.BreakerFailThreshold == 0 {
		c.Dispatcher.BreakerFailThreshold = 3
	}
	if c.Dispatcher.BreakerIntervalSec == 0 {
		c.Dispatcher.BreakerIntervalSec = 30
	}
	if c.Log.Path == "" {
		c.Log.Path = filepath.Join(blastHome, "blast.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// =============================================================================
// Helper functions
// =============================================================================

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1"
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
