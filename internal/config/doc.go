// Package config provides configuration structures and utilities for the
// scraper. It defines the main options for fetching, persistence, and
// report generation, plus the optional YAML file of named search profiles.
package config
