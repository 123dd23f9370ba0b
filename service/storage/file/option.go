package file

import "github.com/viant/afs"

// Option customises the file engine.
type Option func(s *Service)

// WithURL sets the backing document location (any afs URL or local path).
func WithURL(URL string) Option {
	return func(s *Service) {
		if URL != "" {
			s.URL = URL
		}
	}
}

// WithFS sets the afs service used for document I/O.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}
