// Package cache provides result caching for the display pipeline.
//
// Scale analysis walks every element of every state slice; for the
// multi-gigabyte scan cubes the instrument pipelines produce, repeating
// that on every redisplay is wasted work. This package caches computed
// scale info and viewer metadata keyed by a content hash of the dataset
// plus the options that influenced the computation.
//
// Two backends are provided: a file cache for CLI usage (XDG cache
// directory) and a Redis cache for service deployments where several
// API replicas share results. NullCache disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per key class.
const (
	// ScaleTTL bounds how long cached scale analysis lives. Content
	// hashing makes entries self-invalidating; the TTL only caps
	// storage growth.
	ScaleTTL = 30 * 24 * time.Hour

	// MetadataTTL bounds cached viewer metadata.
	MetadataTTL = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL (0 means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ScaleKeyOpts are the options that influence scale analysis and must
// therefore be part of the cache key.
type ScaleKeyOpts struct {
	Axes      []string `json:"axes"`
	AutoScale bool     `json:"auto_scale"`
}

// MetadataKeyOpts are the options that influence metadata assembly.
type MetadataKeyOpts struct {
	Axes       []string `json:"axes"`
	Title      string   `json:"title"`
	StateNames []string `json:"state_names"`
	AutoScale  bool     `json:"auto_scale"`
}

// Keyer generates cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// ScaleKey generates a key for cached scale analysis of a dataset.
	ScaleKey(dataHash string, opts ScaleKeyOpts) string

	// MetadataKey generates a key for cached viewer metadata.
	MetadataKey(dataHash string, opts MetadataKeyOpts) string
}

// DefaultKeyer hashes the dataset content hash together with the
// relevant options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ScaleKey generates a key for cached scale analysis.
func (k *DefaultKeyer) ScaleKey(dataHash string, opts ScaleKeyOpts) string {
	return hashKey("scale", dataHash, opts)
}

// MetadataKey generates a key for cached viewer metadata.
func (k *DefaultKeyer) MetadataKey(dataHash string, opts MetadataKeyOpts) string {
	return hashKey("meta", dataHash, opts)
}
