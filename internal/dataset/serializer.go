package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dsgprompt/internal/logging"
	"dsgprompt/internal/serialization"
)

// DefaultWorkers bounds SerializeAll when no worker count is given.
const DefaultWorkers = 4

// Serializer encodes many scenes with one encoding and one detail key list.
// The encoding and keys are checked once, when the Serializer is built.
type Serializer struct {
	kind    serialization.Kind
	encode  serialization.Encoder
	keys    serialization.DetailKeys
	workers int
	verbose bool
	logger  *zap.Logger
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithWorkers sets the number of scenes encoded at once.
func WithWorkers(n int) Option {
	return func(s *Serializer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger; the dataset category is applied.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Serializer) { s.logger = logging.Get(logger, logging.CategoryDataset) }
}

// WithVerbose logs every encoding in full at debug level.
func WithVerbose(v bool) Option {
	return func(s *Serializer) { s.verbose = v }
}

// NewSerializer resolves the encoding by name and validates the detail keys.
func NewSerializer(encoding string, keys []string, opts ...Option) (*Serializer, error) {
	kind, err := serialization.ParseKind(encoding)
	if err != nil {
		return nil, err
	}
	enc, err := kind.Encoder()
	if err != nil {
		return nil, err
	}
	detail := serialization.DetailKeys(keys)
	if err := detail.Validate(); err != nil {
		return nil, err
	}

	s := &Serializer{
		kind:    kind,
		encode:  enc,
		keys:    detail,
		workers: DefaultWorkers,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Kind returns the resolved encoding.
func (s *Serializer) Kind() serialization.Kind { return s.kind }

// Result holds the encodings of one SerializeAll run.
type Result struct {
	RunID     uuid.UUID
	Kind      serialization.Kind
	Names     []string
	Encodings map[string]string
	Elapsed   time.Duration
}

// Get returns the encoding of the named scene.
func (r *Result) Get(name string) (string, bool) {
	text, ok := r.Encodings[name]
	return text, ok
}

// SerializeAll encodes every scene. The first failure cancels the remaining
// work and no partial result is returned. Scene names must be unique.
func (s *Serializer) SerializeAll(ctx context.Context, scenes []Scene) (*Result, error) {
	res := &Result{
		RunID:     uuid.New(),
		Kind:      s.kind,
		Names:     make([]string, len(scenes)),
		Encodings: make(map[string]string, len(scenes)),
	}
	for i, sc := range scenes {
		if _, dup := res.Encodings[sc.Name]; dup {
			return nil, fmt.Errorf("duplicate scene name %q", sc.Name)
		}
		res.Encodings[sc.Name] = ""
		res.Names[i] = sc.Name
	}

	log := s.logger.With(zap.String("run_id", res.RunID.String()), zap.Stringer("encoding", s.kind))
	timer := logging.StartTimer(log, "serialize dataset")

	texts := make([]string, len(scenes))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, sc := range scenes {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			text, err := s.encode(sc.Graph, s.keys)
			if err != nil {
				return fmt.Errorf("scene %s: %w", sc.Name, err)
			}
			texts[i] = text
			if s.verbose {
				log.Debug("serialized scene", zap.String("scene", sc.Name), zap.String("text", text))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, name := range res.Names {
		res.Encodings[name] = texts[i]
	}
	res.Elapsed = timer.StopWithInfo(zap.Int("scenes", len(scenes)))
	return res, nil
}
