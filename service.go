package ruler

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/ruler/internal/idgen"
	"github.com/viant/ruler/runtime/execution"
	"github.com/viant/ruler/tracing"
	"gopkg.in/yaml.v3"
)

// Service creates execution contexts sharing the same seed and listeners
type Service struct {
	fs        afs.Service
	fsOptions []storage.Option
	seed      map[string]interface{}
	seedURL   string
	listeners []execution.StateListener
	tracing   bool

	seedMu sync.Mutex
	loaded map[string]interface{}
}

// NewContext creates a context holding a copy of the seed overridden by initial.
// When tracing is enabled mutations are recorded on the span carried by ctx.
func (s *Service) NewContext(ctx context.Context, initial map[string]interface{}) (*execution.Context, error) {
	seed, err := s.Seed(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]interface{}, len(seed)+len(initial))
	for k, v := range seed {
		values[k] = cloneValue(v)
	}
	for k, v := range initial {
		values[k] = v
	}
	options := []execution.Option{
		execution.WithID(idgen.New()),
		execution.WithStateListeners(s.listeners...),
	}
	if s.tracing {
		options = append(options, execution.WithStateListeners(tracing.StateListener(ctx)))
	}
	return execution.NewContext(values, options...), nil
}

// Seed returns the seed values. The seed document is cached after the first
// successful load; a failed load is retried by the next call.
func (s *Service) Seed(ctx context.Context) (map[string]interface{}, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.loaded != nil {
		return s.loaded, nil
	}
	loaded, err := s.loadSeed(ctx)
	if err != nil {
		return nil, err
	}
	s.loaded = loaded
	return loaded, nil
}

func (s *Service) loadSeed(ctx context.Context) (map[string]interface{}, error) {
	result := map[string]interface{}{}
	if s.seedURL != "" {
		data, err := s.fs.DownloadWithURL(ctx, s.seedURL, s.fsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed from %s: %w", s.seedURL, err)
		}
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to decode seed %s: %w", s.seedURL, err)
		}
		if result == nil {
			result = map[string]interface{}{}
		}
	}
	for k, v := range s.seed {
		result[k] = v
	}
	return result, nil
}

// cloneValue copies nested maps and slices of any type so that contexts
// created from the same seed never share containers.
func cloneValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	return cloneReflect(reflect.ValueOf(value)).Interface()
}

func cloneReflect(value reflect.Value) reflect.Value {
	switch value.Kind() {
	case reflect.Interface:
		if value.IsNil() {
			return value
		}
		ret := reflect.New(value.Type()).Elem()
		ret.Set(cloneReflect(value.Elem()))
		return ret
	case reflect.Map:
		if value.IsNil() {
			return value
		}
		ret := reflect.MakeMapWithSize(value.Type(), value.Len())
		iter := value.MapRange()
		for iter.Next() {
			ret.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return ret
	case reflect.Slice:
		if value.IsNil() {
			return value
		}
		ret := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		for i := 0; i < value.Len(); i++ {
			ret.Index(i).Set(cloneReflect(value.Index(i)))
		}
		return ret
	}
	return value
}

// New creates a service
func New(options ...Option) *Service {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// NewFromConfig creates a service from cfg; options are applied after the config
func NewFromConfig(cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var fromConfig []Option
	if cfg.Seed.URL != "" {
		fromConfig = append(fromConfig, WithSeedURL(cfg.Seed.URL))
	}
	if len(cfg.Seed.Values) > 0 {
		fromConfig = append(fromConfig, WithSeed(cfg.Seed.Values))
	}
	if cfg.Tracing.Enabled {
		fromConfig = append(fromConfig, WithTracing(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, cfg.Tracing.OutputFile))
	}
	return New(append(fromConfig, options...)...), nil
}
