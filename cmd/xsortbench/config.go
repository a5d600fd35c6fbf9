package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsortpool/pkg/config/xconf"
	"github.com/omeyang/xsortpool/pkg/observability/xlog"
	"github.com/omeyang/xsortpool/pkg/util/xsort"
)

const (
	defaultSize = 50000
	// defaultSeed 与 mt19937 的默认种子一致
	defaultSeed = 5489
)

type logConfig struct {
	Level  xlog.Level `koanf:"level"`
	Format string     `koanf:"format"`
	File   string     `koanf:"file"`
}

// benchConfig 对应配置文件中的 bench 段。
type benchConfig struct {
	Size       int            `koanf:"size"`
	Seed       uint64         `koanf:"seed"`
	Rounds     int            `koanf:"rounds"`
	Threshold  int            `koanf:"threshold"`
	Workers    int            `koanf:"workers"` // 0 表示按硬件线程数
	MaxFanout  int            `koanf:"max_fanout"`
	Policies   []xsort.Policy `koanf:"policies"`
	PinWorkers bool           `koanf:"pin_workers"`
	Metrics    bool           `koanf:"metrics"`
	Log        logConfig      `koanf:"log"`
}

func defaultConfig() benchConfig {
	return benchConfig{
		Size:      defaultSize,
		Seed:      defaultSeed,
		Rounds:    1,
		Threshold: xsort.DefaultThreshold,
		Log: logConfig{
			Level:  xlog.LevelInfo,
			Format: "text",
		},
	}
}

// loadConfig 在默认值之上叠加配置文件，path 为空时只返回默认值。
func loadConfig(path string) (benchConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		c, err := xconf.New(path, xconf.WithStrict(true))
		if err != nil {
			return cfg, err
		}
		if err := c.Unmarshal("bench", &cfg); err != nil {
			return cfg, err
		}
	}
	if len(cfg.Policies) == 0 {
		cfg.Policies = xsort.Policies()
	}
	return cfg, nil
}

// applyFlags 用命令行中显式设置的 flag 覆盖配置。
func applyFlags(cmd *cli.Command, cfg *benchConfig) error {
	if cmd.IsSet("size") {
		cfg.Size = cmd.Int("size")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("rounds") {
		cfg.Rounds = cmd.Int("rounds")
	}
	if cmd.IsSet("threshold") {
		cfg.Threshold = cmd.Int("threshold")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("max-fanout") {
		cfg.MaxFanout = cmd.Int("max-fanout")
	}
	if cmd.IsSet("pin") {
		cfg.PinWorkers = cmd.Bool("pin")
	}
	if cmd.IsSet("metrics") {
		cfg.Metrics = cmd.Bool("metrics")
	}
	if cmd.IsSet("policy") {
		policies, err := parsePolicies(cmd.StringSlice("policy"))
		if err != nil {
			return err
		}
		cfg.Policies = policies
	}
	if cmd.IsSet("log-level") {
		level, err := xlog.ParseLevel(cmd.String("log-level"))
		if err != nil {
			return err
		}
		cfg.Log.Level = level
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	return nil
}

func parsePolicies(names []string) ([]xsort.Policy, error) {
	policies := make([]xsort.Policy, 0, len(names))
	for _, name := range names {
		p, err := xsort.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func (c benchConfig) validate() error {
	switch {
	case c.Size < 0:
		return fmt.Errorf("size must be non-negative, got %d", c.Size)
	case c.Rounds < 1:
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	case c.Threshold < 0:
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	case c.Workers < 0:
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	case c.MaxFanout < 0:
		return fmt.Errorf("max-fanout must be non-negative, got %d", c.MaxFanout)
	}
	return nil
}
