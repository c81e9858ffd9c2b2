// Package config loads the benchmark service's runtime configuration from
// multiple sources (YAML files, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// It exposes strongly typed settings, including the instance-size limits that
// guard the quadratic and capacity-indexed heuristics.
package config
