package lbunit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Endpoint describes a database that the application can connect to.
type Endpoint struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	DBName   string `yaml:"dbname" json:"dbname"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
}

// Complete returns true if the endpoint carries everything needed to connect.
func (e Endpoint) Complete() bool {
	return e.Host != "" && e.Port > 0 && e.DBName != "" && e.User != ""
}

// Address returns the host and port of the endpoint.
func (e Endpoint) Address() string {
	return e.Host + ":" + strconv.Itoa(e.Port)
}

// EndpointSource supplies the database endpoint when one is available.
//
// A missing endpoint is not an error. Sources return false until the
// database becomes available.
type EndpointSource interface {
	Endpoint(ctx context.Context) (Endpoint, bool, error)
}

// EndpointFile reads a database endpoint from relation data stored in a YAML
// or JSON file.
type EndpointFile struct {
	Path string
}

// Endpoint returns the endpoint described by the file. It returns false if
// the file is missing or its data is incomplete.
func (f EndpointFile) Endpoint(ctx context.Context) (Endpoint, bool, error) {
	if err := ctx.Err(); err != nil {
		return Endpoint{}, false, err
	}
	if f.Path == "" {
		return Endpoint{}, false, nil
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Endpoint{}, false, nil
		}
		return Endpoint{}, false, fmt.Errorf("failed to read database relation data \"%s\": %w", f.Path, err)
	}

	// YAML is a superset of JSON, so one decoder serves both.
	var endpoint Endpoint
	if err := yaml.Unmarshal(data, &endpoint); err != nil {
		return Endpoint{}, false, fmt.Errorf("failed to parse database relation data \"%s\": %w", f.Path, err)
	}

	if !endpoint.Complete() {
		return Endpoint{}, false, nil
	}
	return endpoint, true, nil
}

// StaticEndpoint is an EndpointSource with a fixed answer.
type StaticEndpoint struct {
	Value     Endpoint
	Available bool
}

// Endpoint returns the static endpoint.
func (s StaticEndpoint) Endpoint(ctx context.Context) (Endpoint, bool, error) {
	return s.Value, s.Available, nil
}
