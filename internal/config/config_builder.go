package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	defaultPort            = 3000
	defaultTokenIssuer     = "go-voting-server"
	defaultTokenDuration   = 30000 * time.Second
	defaultServerTimeout   = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultDBName          = "voting"
	defaultLogLevel        = "debug"
	defaultDotEnvFile      = ".env"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	config.resolve()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
		},
		Storage: Storage{
			DB: DB{Name: defaultDBName},
		},
		Server: Server{
			ReadTimeout:     defaultServerTimeout,
			WriteTimeout:    defaultServerTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Log:  Log{Level: defaultLogLevel},
		Port: defaultPort,
	})
	return b
}

// withDotEnv exports variables from .env files into the process environment
// so that the following withEnv step picks them up.
func (b *configBuilder) withDotEnv(filenames ...string) *configBuilder {
	if len(filenames) == 0 {
		filenames = []string{defaultDotEnvFile}
	}

	if err := loadDotEnv(filenames...); err != nil {
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}
