package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/figueras/belchior/internal/domain"
)

// FileName is the conventional name of the configuration file.
const FileName = ".belchior.yaml"

// Load reads the configuration file at path and applies it over the
// defaults.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindRead
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
			err = errors.Join(err, domain.ErrNotFound)
		}
		return Settings{}, &domain.OpError{
			Op:   "config.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.Join(err, domain.ErrInvalidConfig),
		}
	}

	return Map(path, dto, Default())
}
