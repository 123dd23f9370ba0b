package meta

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads YAML configuration documents from any afs location,
// expanding ${env.KEY} expressions before decoding.
type Service struct {
	fs afs.Service
}

// Load decodes the document at URL into target. A missing document leaves
// target unchanged and reports false.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) (bool, error) {
	URL = url.Normalize(URL, file.Scheme)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return false, fmt.Errorf("failed to check if %s exists: %w", URL, err)
	}
	if !exists {
		return false, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	if err = yaml.Unmarshal([]byte(expandEnvExpr(string(data))), target); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return true, nil
}

// New creates a meta service; a nil fs uses the default afs service.
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
