package config

import (
	"fmt"

	"github.com/figueras/belchior/internal/domain"
)

// Settings are the effective options of a run, before command line flags
// are applied.
type Settings struct {
	Format domain.Format
	Color  bool
	Strict bool
	Tokens bool
	Log    LogSettings
}

type LogSettings struct {
	Debug bool
	File  string
}

func Default() Settings {
	return Settings{
		Format: domain.FormatLISP,
	}
}

// Map applies the keys set in the DTO over base.
func Map(path string, yc YAMLConfig, base Settings) (Settings, error) {
	s := base

	if yc.Format != "" {
		f, err := domain.ParseFormat(yc.Format)
		if err != nil {
			return Settings{}, invalidField(path, "format", err.Error())
		}
		s.Format = f
	}

	if yc.Color != nil {
		s.Color = *yc.Color
	}
	if yc.Strict != nil {
		s.Strict = *yc.Strict
	}
	if yc.Tokens != nil {
		s.Tokens = *yc.Tokens
	}
	if yc.Log.Debug != nil {
		s.Log.Debug = *yc.Log.Debug
	}
	if yc.Log.File != "" {
		s.Log.File = yc.Log.File
	}

	return s, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
