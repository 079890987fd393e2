package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"othello/internal/engine"
	"othello/internal/learn"
)

// Config 命令行工具共用的配置。优先级：命令行参数 > 环境变量 > 配置文件 > 默认值。
type Config struct {
	WeightsPath string `json:"weights_path"`
	LogLevel    string `json:"log_level"`
	Seed        uint64 `json:"seed"`

	MidDepth     int   `json:"mid_depth"`
	WLDEmpties   int   `json:"wld_empties"`
	ExactEmpties int   `json:"exact_empties"`
	SortDepth    int   `json:"sort_depth"`
	NodeLimit    int64 `json:"node_limit"`

	LearnGames        int     `json:"learn_games"`
	RandomOpening     int     `json:"random_opening"`
	RandomMovePercent int     `json:"random_move_percent"`
	UpdateInterval    int     `json:"update_interval"`
	SaveInterval      int     `json:"save_interval"`
	LearningRate      float64 `json:"learning_rate"`
	MinFrequency      int     `json:"min_frequency"`
}

func DefaultConfig() Config {
	search := engine.DefaultSearchConfig()
	lc := learn.DefaultConfig()
	return Config{
		WeightsPath:       "eval.dat",
		LogLevel:          "info",
		MidDepth:          search.MidDepth,
		WLDEmpties:        search.WLDEmpties,
		ExactEmpties:      search.ExactEmpties,
		SortDepth:         search.SortDepth,
		LearnGames:        1000,
		RandomOpening:     lc.RandomOpening,
		RandomMovePercent: lc.RandomMovePercent,
		UpdateInterval:    lc.UpdateInterval,
		SaveInterval:      lc.SaveInterval,
		LearningRate:      engine.DefaultLearningRate,
		MinFrequency:      engine.DefaultMinFrequency,
	}
}

// Load 默认值 + 文件（path 为空或不存在时跳过）+ 环境变量
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "parse config %s", path)
			}
		case !os.IsNotExist(err):
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.WeightsPath = getenv("OTHELLO_WEIGHTS", c.WeightsPath)
	c.LogLevel = getenv("OTHELLO_LOG_LEVEL", c.LogLevel)
	var err error
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"OTHELLO_MID_DEPTH", &c.MidDepth},
		{"OTHELLO_WLD_EMPTIES", &c.WLDEmpties},
		{"OTHELLO_EXACT_EMPTIES", &c.ExactEmpties},
		{"OTHELLO_LEARN_GAMES", &c.LearnGames},
	} {
		if *f.dst, err = getenvInt(f.key, *f.dst); err != nil {
			return err
		}
	}
	if c.LearningRate, err = getenvFloat("OTHELLO_LEARNING_RATE", c.LearningRate); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.MidDepth < 1:
		return errors.Errorf("mid_depth must be at least 1, got %d", c.MidDepth)
	case c.ExactEmpties < 0 || c.WLDEmpties < 0:
		return errors.Errorf("endgame thresholds must not be negative (wld=%d exact=%d)", c.WLDEmpties, c.ExactEmpties)
	case c.LearningRate <= 0:
		return errors.Errorf("learning_rate must be positive, got %g", c.LearningRate)
	case c.RandomMovePercent < 0 || c.RandomMovePercent > 100:
		return errors.Errorf("random_move_percent must be within 0..100, got %d", c.RandomMovePercent)
	}
	return nil
}

// Search 转成引擎的搜索配置
func (c Config) Search() engine.SearchConfig {
	return engine.SearchConfig{
		MidDepth:     c.MidDepth,
		WLDEmpties:   c.WLDEmpties,
		ExactEmpties: c.ExactEmpties,
		SortDepth:    c.SortDepth,
		NodeLimit:    c.NodeLimit,
	}
}

// Learn 转成自对局学习配置，黑白两方用同一套搜索参数
func (c Config) Learn() learn.Config {
	lc := learn.DefaultConfig()
	lc.RandomOpening = c.RandomOpening
	lc.RandomMovePercent = c.RandomMovePercent
	lc.UpdateInterval = c.UpdateInterval
	lc.SaveInterval = c.SaveInterval
	lc.Black = c.Search()
	lc.White = c.Search()
	lc.WeightsPath = c.WeightsPath
	lc.Seed = c.Seed
	return lc
}

// ApplyEvaluator 把学习率等写进估值器
func (c Config) ApplyEvaluator(e *engine.Evaluator) {
	e.LearningRate = c.LearningRate
	e.MinFrequency = int32(c.MinFrequency)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.Wrapf(err, "failed to parse %s=%q to int", key, v)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, errors.Wrapf(err, "failed to parse %s=%q to float", key, v)
	}
	return f, nil
}
