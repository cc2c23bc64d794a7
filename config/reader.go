package config

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/pathdecider/logging"
	"go.viam.com/pathdecider/utils"
)

// Read reads a config from the given file. Environment variables in the file such as ${HOME}
// are substituted before parsing.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", filePath)
	}

	cfg, err := FromReader(filePath, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromReader reads a config from the given reader and specifies where, if applicable, the file
// the reader originated from. Unknown fields are rejected.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", originalPath)
	}
	cfg.ConfigFilePath = originalPath

	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromAttributes decodes a config from an attribute map, such as one embedded in a larger
// document. Unknown keys are rejected.
func FromAttributes(attributes utils.AttributeMap) (*Config, error) {
	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  logLevelHook,
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return nil, errors.Wrap(err, "cannot decode config attributes")
	}

	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	return cfg, nil
}

var levelType = reflect.TypeOf(logging.Level(0))

// logLevelHook lets attribute maps spell log levels the way json config files do.
func logLevelHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != levelType || from.Kind() != reflect.String {
		return data, nil
	}
	str, ok := data.(string)
	if !ok {
		return data, nil
	}
	return logging.LevelFromString(str)
}
