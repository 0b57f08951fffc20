// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"strconv"
)

// resolve fills derived fields after all sources have been merged:
// JWT_SECRET backs an empty token sign key and PORT backs an empty
// listen address.
func (cfg *StructuredConfig) resolve() {
	if cfg.App.TokenSignKey == "" {
		cfg.App.TokenSignKey = cfg.JWTSecret
	}

	if cfg.Server.HTTPAddress == "" && cfg.Port != 0 {
		cfg.Server.HTTPAddress = net.JoinHostPort("", strconv.Itoa(cfg.Port))
	}
}

// validate checks that the final merged [StructuredConfig] can be used at
// startup. Returns nil if the configuration is valid, or one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Port < 0 || cfg.Port > 65535 || cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
