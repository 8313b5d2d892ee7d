package config

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/stitcher/bundle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProject = "mongodb"
	DefaultBranch  = "main"
)

// Config represents a stitch run configuration
type Config struct {
	Site      bundle.SiteMetadata `yaml:"site"`
	Bundles   []string            `yaml:"bundles"`
	Output    string              `yaml:"output"`
	Workers   int                 `yaml:"workers,omitempty"`
	QueueSize int                 `yaml:"queueSize,omitempty"`
	Verbose   bool                `yaml:"verbose,omitempty"`
}

// Init sets defaults for unset fields
func (c *Config) Init() {
	if c.Site.Project == "" {
		c.Site.Project = DefaultProject
	}
	if c.Site.Branch == "" {
		c.Site.Branch = DefaultBranch
	}
}

// Validate checks that the run has inputs and an output
func (c *Config) Validate() error {
	if len(c.Bundles) == 0 {
		return fmt.Errorf("no input bundles")
	}
	if c.Output == "" {
		return fmt.Errorf("output was empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %v", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("invalid queueSize: %v", c.QueueSize)
	}
	return c.Site.Validate()
}

// DefaultConfig returns a config with the default output site
func DefaultConfig() *Config {
	ret := &Config{}
	ret.Init()
	return ret
}

// Load reads a YAML config from URL
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	ret.Init()
	return ret, nil
}
