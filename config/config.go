/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_SEPARATOR    = "."
	DEFAULT_MAX_SEGMENTS = 32
	DEFAULT_LOG_LEVEL    = "info"
)

var ConfigStore atomic.Value

type KeyPathConfig struct {
	Separator   string `json:"separator" envconfig:"KVC_KEYPATH_SEPARATOR"`
	MaxSegments int    `json:"max_segments" envconfig:"KVC_KEYPATH_MAX_SEGMENTS"`
}

type Configuration struct {
	LogLevel string        `json:"log_level" envconfig:"KVC_LOG_LEVEL"`
	KeyPath  KeyPathConfig `json:"keypath"`
}

func loadConfigFromEnv() error {
	var cnf Configuration

	err := envconfig.Process("kvc", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return nil
}

func InitConfig() error {
	logger()
	return loadConfigFromEnv()
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded. Call InitConfig before Fetch")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	// Trim white spaces from fields
	cnf.LogLevel = strings.ToLower(strings.TrimSpace(cnf.LogLevel))

	if cnf.KeyPath.Separator == "" {
		cnf.KeyPath.Separator = DEFAULT_SEPARATOR
	}

	if cnf.KeyPath.MaxSegments == 0 {
		cnf.KeyPath.MaxSegments = DEFAULT_MAX_SEGMENTS
		log.Printf("Warning: Max key path segments not specified. Setting default value: %d", DEFAULT_MAX_SEGMENTS)
	}

	if cnf.LogLevel == "" {
		cnf.LogLevel = DEFAULT_LOG_LEVEL
	}

	return validation.ValidateStruct(cnf,
		validation.Field(&cnf.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal", "panic")),
		validation.Field(&cnf.KeyPath),
	)
}

func (c KeyPathConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Separator, validation.Required, validation.By(noWhitespace)),
		validation.Field(&c.MaxSegments, validation.Min(1)),
	)
}

func noWhitespace(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) != s {
		return errors.New("must not contain leading or trailing whitespace")
	}
	return nil
}

// Logger returns a logrus logger at the configured level.
func (cnf *Configuration) Logger() *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(cnf.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
