// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the parkweb to instantiate
// different components, from the adapter or use cases layers, using
// those loaded configuration settings.
// The parsed and validated configurations should be passed to their
// ultimate components as a series of individual params, so the
// components stay independent of this package and of the settings
// file format.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/adapter/hash/scram"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin"
	"github.com/momeni/parking-backend/pkg/core/repo"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Auth     Auth     // Password verification mechanism settings
}

// Database contains the database related configuration settings.
type Database struct {
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like parkweb
	User     string // database role name
	Password string // database role password
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and replace the missing ones with their
// default values by the ValidateAndNormalize method.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// Auth contains the password verification mechanism settings.
type Auth struct {
	// Method specifies how user passwords are hashed before being
	// stored and verified. Currently, only scram-sha-1 and
	// scram-sha-256 methods are supported. The scram-sha-256 is the
	// default value.
	Method string `yaml:"method,omitempty"`

	// Iterations is the key derivation iterations count. It must be
	// at least 4096 (see RFC 5802) and defaults to 15000 as the
	// RFC 7677 recommends.
	Iterations int `yaml:"iterations,omitempty"`
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	nil2Zero(&c.Gin.Logger)
	nil2Zero(&c.Gin.Recovery)
	if err := c.Auth.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	return nil
}

// nil2Zero replaces a nil pointer with a pointer to the zero value
// of its pointed-to type.
func nil2Zero[T any](p **T) {
	if *p == nil {
		*p = new(T)
	}
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := postgres.NewPool(ctx, c.Database.ConnectionURL())
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return fmt.Errorf("host must be specified")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("invalid port: %d", d.Port)
	case d.Name == "":
		return fmt.Errorf("database name must be specified")
	case d.User == "":
		return fmt.Errorf("database user must be specified")
	}
	return nil
}

// ConnectionURL serializes the connection information of the `d`
// settings as a postgresql:// URL.
func (d Database) ConnectionURL() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String()
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// ValidateAndNormalize validates the auth settings and returns an
// error if they were not acceptable. A missing method or iterations
// count is replaced by its default value.
func (a *Auth) ValidateAndNormalize() error {
	switch a.Method {
	case "":
		a.Method = "scram-sha-256"
	case "scram-sha-1", "scram-sha-256":
	default:
		return fmt.Errorf(
			"unsupported password hashing method: %q", a.Method,
		)
	}
	if a.Iterations == 0 {
		a.Iterations = 15000
	}
	if a.Iterations < scram.MinIters {
		return fmt.Errorf(
			"iterations (%d) is less than %d",
			a.Iterations, scram.MinIters,
		)
	}
	return nil
}

// NewMechanism instantiates the password hashing mechanism which is
// described by the `a` settings. The returned Mechanism satisfies the
// core layer auth.Verifier interface and can also derive fresh
// credentials for the database seeding.
func (a Auth) NewMechanism() (*scram.Mechanism, error) {
	switch a.Method {
	case "scram-sha-1":
		return scram.SHA1(a.Iterations)
	case "scram-sha-256":
		return scram.SHA256(a.Iterations)
	default:
		return nil, fmt.Errorf(
			"unsupported password hashing method: %q", a.Method,
		)
	}
}
