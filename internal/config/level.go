package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"othello/internal/engine"
)

// ParseParams 解析 "k=v,k=v"；只有 key 的项视为 "true"
func ParseParams(s string) (map[string]string, error) {
	params := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, errors.Errorf("empty key in %q", s)
		}
		if _, dup := params[k]; dup {
			return nil, errors.Errorf("duplicate key %q in %q", k, s)
		}
		if !strings.Contains(part, "=") {
			v = "true"
		}
		params[k] = strings.TrimSpace(v)
	}
	return params, nil
}

// GetParamOr 取参数并转成 T，缺省时返回 defaultValue
func GetParamOr[T interface{ bool | int | int64 | float64 }](params map[string]string, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists || value == "" {
		return defaultValue, nil
	}
	var t T
	switch any(defaultValue).(type) {
	case int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		return any(v).(T), nil
	case int64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int64", key, value)
		}
		return any(v).(T), nil
	case float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		return any(v).(T), nil
	case bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to bool", key, value)
		}
		return any(v).(T), nil
	}
	return t, errors.Errorf("unsupported type %T for %s", defaultValue, key)
}

var levelKeys = map[string]bool{"mid": true, "wld": true, "exact": true, "sort": true, "nodes": true}

// ParseLevel 解析 "mid=4,wld=12,exact=12,sort=2,nodes=0"，未给出的项取 base
func ParseLevel(s string, base engine.SearchConfig) (engine.SearchConfig, error) {
	params, err := ParseParams(s)
	if err != nil {
		return base, errors.WithMessage(err, "level")
	}
	for k := range params {
		if !levelKeys[k] {
			return base, errors.Errorf("level: unknown key %q", k)
		}
	}
	cfg := base
	if cfg.MidDepth, err = GetParamOr(params, "mid", base.MidDepth); err != nil {
		return base, err
	}
	if cfg.WLDEmpties, err = GetParamOr(params, "wld", base.WLDEmpties); err != nil {
		return base, err
	}
	if cfg.ExactEmpties, err = GetParamOr(params, "exact", base.ExactEmpties); err != nil {
		return base, err
	}
	if cfg.SortDepth, err = GetParamOr(params, "sort", base.SortDepth); err != nil {
		return base, err
	}
	if cfg.NodeLimit, err = GetParamOr(params, "nodes", base.NodeLimit); err != nil {
		return base, err
	}
	if cfg.MidDepth < 1 {
		return base, errors.Errorf("level: mid must be at least 1, got %d", cfg.MidDepth)
	}
	return cfg, nil
}
