package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
)

// ErrInvalid конфигурация не прошла проверку
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	TelegramToken string
	LogLevel      string
	LogPretty     bool
	CameraDevice  string

	Marker marker.Config

	ValueThreshold float64 // порог бинаризации канала V при поиске контуров
	Epsilon        float64 // точность аппроксимации контура

	ExpectedSequence []entity.Symbol
}

type fileConfig struct {
	TelegramToken    string `toml:"telegram_token"`
	LogLevel         string `toml:"log_level"`
	LogPretty        bool   `toml:"log_pretty"`
	CameraDevice     string `toml:"camera_device"`
	ExpectedSequence string `toml:"expected_sequence"`

	Marker struct {
		CellsPerSide   int     `toml:"cells_per_side"`
		DisplayMinArea float64 `toml:"display_min_area"`
		MarkerMinArea  float64 `toml:"marker_min_area"`
		Size           int     `toml:"size"`
	} `toml:"marker"`

	Segmenter struct {
		ValueThreshold float64 `toml:"value_threshold"`
		Epsilon        float64 `toml:"epsilon"`
	} `toml:"segmenter"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		LogPretty:      true,
		CameraDevice:   "0",
		Marker:         marker.DefaultConfig(),
		ValueThreshold: 50,
		Epsilon:        10,
	}
}

// Load собирает конфигурацию: .env, затем TOML-файл (path или RECEIVER_CONFIG),
// затем переменные окружения.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("RECEIVER_CONFIG"))
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("telegram_token") {
		c.TelegramToken = strings.TrimSpace(raw.TelegramToken)
	}
	if meta.IsDefined("log_level") {
		c.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_pretty") {
		c.LogPretty = raw.LogPretty
	}
	if meta.IsDefined("camera_device") {
		c.CameraDevice = strings.TrimSpace(raw.CameraDevice)
	}
	if meta.IsDefined("expected_sequence") {
		symbols, err := entity.ParseSequence(raw.ExpectedSequence)
		if err != nil {
			return fmt.Errorf("parse expected_sequence: %w", err)
		}
		c.ExpectedSequence = symbols
	}

	if meta.IsDefined("marker", "cells_per_side") {
		c.Marker.CellsPerSide = raw.Marker.CellsPerSide
	}
	if meta.IsDefined("marker", "display_min_area") {
		c.Marker.DisplayMinArea = raw.Marker.DisplayMinArea
	}
	if meta.IsDefined("marker", "marker_min_area") {
		c.Marker.MarkerMinArea = raw.Marker.MarkerMinArea
	}
	if meta.IsDefined("marker", "size") {
		c.Marker.Size = raw.Marker.Size
	}

	if meta.IsDefined("segmenter", "value_threshold") {
		c.ValueThreshold = raw.Segmenter.ValueThreshold
	}
	if meta.IsDefined("segmenter", "epsilon") {
		c.Epsilon = raw.Segmenter.Epsilon
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup("TELEGRAM_TOKEN"); ok {
		c.TelegramToken = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_PRETTY"); ok {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse LOG_PRETTY: %w", err)
		}
		c.LogPretty = pretty
	}
	if v, ok := lookup("CAMERA_DEVICE"); ok {
		c.CameraDevice = v
	}
	if v, ok := lookup("MARKER_CELLS"); ok {
		cells, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse MARKER_CELLS: %w", err)
		}
		c.Marker.CellsPerSide = cells
	}
	if v, ok := lookup("EXPECTED_SEQUENCE"); ok {
		symbols, err := entity.ParseSequence(v)
		if err != nil {
			return fmt.Errorf("parse EXPECTED_SEQUENCE: %w", err)
		}
		c.ExpectedSequence = symbols
	}
	return nil
}

// Validate проверяет диапазоны значений
func (c *Config) Validate() error {
	if err := c.Marker.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.ValueThreshold < 0 || c.ValueThreshold > 255 {
		return fmt.Errorf("%w: value threshold %.0f is outside [0, 255]", ErrInvalid, c.ValueThreshold)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be positive", ErrInvalid)
	}
	if c.CameraDevice == "" {
		return fmt.Errorf("%w: camera device is empty", ErrInvalid)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}
