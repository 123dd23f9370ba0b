package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage"
	"github.com/viant/objstore/service/storage/criteria"
	"github.com/viant/objstore/service/storage/store"
	"github.com/viant/objstore/tracing"
)

// DefaultURL is the backing document location.
const DefaultURL = "./dev/file.json"

const tempPrefix = "~"

// Service implements a file-based storage engine. All live entities are held
// in an in-memory registry keyed by identity key; Save writes the whole
// registry to a single JSON document and Reload rebuilds it from there.
type Service struct {
	URL      string
	fs       afs.Service
	registry *store.MemoryStore[string, model.Entity]
}

// Ensure Service implements storage.Engine
var _ storage.Engine = (*Service)(nil)

// All returns registered entities of kind, every entity for an empty kind.
func (s *Service) All(_ context.Context, kind model.Kind) (map[string]model.Entity, error) {
	return s.registry.Filter(criteria.MatchKind(kind)), nil
}

// New sets or replaces the entity under its identity key.
func (s *Service) New(_ context.Context, entity model.Entity) error {
	if entity == nil {
		return storage.ErrNilEntity
	}
	s.registry.Put(entity)
	return nil
}

// Save serializes the registry to the backing document.
func (s *Service) Save(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "file.save", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"url": s.URL, "entities": strconv.Itoa(s.registry.Len())})

	data, err := s.encode()
	if err != nil {
		return err
	}
	return s.upload(ctx, data)
}

// Delete removes entity when it is the instance registered under its key.
func (s *Service) Delete(ctx context.Context, entity model.Entity) error {
	if entity == nil {
		return nil
	}
	key := model.KeyOf(entity)
	if registered, ok := s.registry.Get(key); !ok || registered != entity {
		return nil
	}
	s.registry.Delete(key)
	if span, ok := tracing.SpanFromContext(ctx); ok {
		span.WithAttributes(map[string]string{"deleted": key})
	}
	return s.Save(ctx)
}

// DeleteAll truncates the backing document, clears the registry and saves
// the empty state.
func (s *Service) DeleteAll(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "file.deleteAll", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	if err = s.truncate(ctx); err != nil {
		return err
	}
	s.registry.Replace(nil)
	return s.Save(ctx)
}

// Reload replaces the registry with the content of the backing document. A
// missing document yields an empty registry.
func (s *Service) Reload(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "file.reload", "INTERNAL")
	defer func() {
		span.WithAttributes(map[string]string{"url": s.URL, "entities": strconv.Itoa(s.registry.Len())})
		tracing.EndSpan(span, err)
	}()

	s.registry.Replace(nil)
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", s.URL, err)
	}
	if !exists {
		return nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.URL, err)
	}
	records, err := decode(data)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.URL, err)
	}
	s.registry.Replace(records)
	return nil
}

// Close reloads the registry from the backing document, discarding changes
// made since the last Save.
func (s *Service) Close(ctx context.Context) error {
	return s.Reload(ctx)
}

func (s *Service) Get(ctx context.Context, kind model.Kind, id string) (model.Entity, error) {
	return storage.Get(ctx, s, kind, id)
}

func (s *Service) Count(ctx context.Context, kind model.Kind) (int, error) {
	return storage.Count(ctx, s, kind)
}

func (s *Service) encode() ([]byte, error) {
	document := make(map[string]json.RawMessage, s.registry.Len())
	for key, entity := range s.registry.Filter(nil) {
		data, err := model.Encode(entity)
		if err != nil {
			return nil, err
		}
		document[key] = data
	}
	// map keys are sorted by encoding/json, keeping the document diffable
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registry: %w", err)
	}
	return data, nil
}

func decode(data []byte) (map[string]model.Entity, error) {
	records := map[string]model.Entity{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidEntity, err)
	}
	for key, raw := range document {
		entity, err := model.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct %s: %w", key, err)
		}
		if actual := model.KeyOf(entity); actual != key {
			return nil, fmt.Errorf("%w: %s stored under %s", model.ErrInvalidEntity, actual, key)
		}
		records[key] = entity
	}
	return records, nil
}

// upload replaces the backing document. Local documents are written to a
// sibling first and renamed so that readers never observe a partial write;
// object stores replace on upload.
func (s *Service) upload(ctx context.Context, data []byte) error {
	if err := s.ensureParent(ctx); err != nil {
		return err
	}
	if url.Scheme(s.URL, file.Scheme) != file.Scheme {
		if err := s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.URL, err)
		}
		return nil
	}
	tempURL := s.tempURL()
	if err := s.fs.Upload(ctx, tempURL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", tempURL, err)
	}
	if err := s.fs.Move(ctx, tempURL, s.URL); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.URL, err)
	}
	return nil
}

// tempURL keeps the document extension: afs moves a file into the
// destination as a folder when the extensions differ.
func (s *Service) tempURL() string {
	parent, name := url.Split(s.URL, file.Scheme)
	return url.Join(parent, tempPrefix+name)
}

func (s *Service) truncate(ctx context.Context) error {
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", s.URL, err)
	}
	if !exists {
		return nil
	}
	if err = s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, strings.NewReader("")); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", s.URL, err)
	}
	return nil
}

func (s *Service) ensureParent(ctx context.Context) error {
	parent, _ := url.Split(s.URL, file.Scheme)
	exists, err := s.fs.Exists(ctx, parent)
	if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", parent, err)
	}
	if exists {
		return nil
	}
	if err = s.fs.Create(ctx, parent, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", parent, err)
	}
	return nil
}

// New creates a file storage engine. Call Reload before use.
func New(options ...Option) *Service {
	ret := &Service{URL: DefaultURL}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.URL = url.Normalize(ret.URL, file.Scheme)
	ret.registry = store.NewMemoryStore[string, model.Entity](model.KeyOf)
	return ret
}
