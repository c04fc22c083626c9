package store

import "bulkdate/internal/platform/logger"

// Option adjusts the Store before any backend is opened
type Option func(*Store) error

// WithLogger routes driver logs and sql traces to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
