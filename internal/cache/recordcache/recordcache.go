// Package recordcache is a read-through cache of single-record lookups in
// front of any lookup.Source. An in-process LRU is consulted first, then an
// optional remote store (Redis). Only successful LookupOne results are
// cached; LookupMany always goes to the underlying store.
package recordcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mohammed-shakir/ongc/internal/cache"
	"github.com/mohammed-shakir/ongc/internal/cache/keys"
	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/core/observability"
	"github.com/mohammed-shakir/ongc/internal/lookup"
)

const (
	tierLRU   = "lru"
	tierRedis = "redis"
)

type Options struct {
	// Dataset scopes every key to one catalog release.
	Dataset string
	// LRUSize <= 0 disables the in-process tier.
	LRUSize int
	// Remote nil disables the remote tier.
	Remote    cache.Store
	TTL       time.Duration
	OpTimeout time.Duration
	Logger    *slog.Logger
}

type Source struct {
	next   lookup.Source
	opts   Options
	local  *lru.Cache[string, model.Object]
	logger *slog.Logger
}

var _ lookup.Source = (*Source)(nil)

func New(next lookup.Source, opts Options) (*Source, error) {
	if next == nil {
		return nil, errors.New("recordcache: underlying source is required")
	}
	if opts.Dataset == "" {
		return nil, errors.New("recordcache: dataset version is required")
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 250 * time.Millisecond
	}
	s := &Source{next: next, opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if opts.LRUSize > 0 {
		c, err := lru.New[string, model.Object](opts.LRUSize)
		if err != nil {
			return nil, fmt.Errorf("recordcache: lru: %w", err)
		}
		s.local = c
	}
	return s, nil
}

func (s *Source) Open(ctx context.Context) (lookup.Handle, error) {
	h, err := s.next.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &handle{Handle: h, src: s}, nil
}

type handle struct {
	lookup.Handle
	src *Source
}

var _ lookup.Stats = (*handle)(nil)

func (h *handle) LookupOne(ctx context.Context, id model.Identifier) (*model.Object, error) {
	s := h.src
	key := keys.Record(s.opts.Dataset, id.Catalog, id.Key)

	if s.local != nil {
		if o, ok := s.local.Get(key); ok {
			observability.IncRecordCache(tierLRU, true)
			return &o, nil
		}
		observability.IncRecordCache(tierLRU, false)
	}

	if s.opts.Remote != nil {
		if o, ok := h.remoteGet(ctx, key); ok {
			observability.IncRecordCache(tierRedis, true)
			if s.local != nil {
				s.local.Add(key, *o)
			}
			return o, nil
		}
		observability.IncRecordCache(tierRedis, false)
	}

	o, err := h.Handle.LookupOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.local != nil {
		s.local.Add(key, *o)
	}
	if s.opts.Remote != nil {
		h.remoteSet(ctx, key, o)
	}
	return o, nil
}

// remoteGet treats every remote failure as a miss.
func (h *handle) remoteGet(ctx context.Context, key string) (*model.Object, bool) {
	s := h.src
	cctx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()

	b, ok, err := s.opts.Remote.Get(cctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "record cache get failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var o model.Object
	if err := json.Unmarshal(b, &o); err != nil {
		s.logger.WarnContext(ctx, "record cache entry undecodable", "key", key, "err", err)
		return nil, false
	}
	return &o, true
}

func (h *handle) remoteSet(ctx context.Context, key string, o *model.Object) {
	s := h.src
	b, err := json.Marshal(o)
	if err != nil {
		s.logger.WarnContext(ctx, "record cache encode failed", "key", key, "err", err)
		return
	}
	cctx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()
	if err := s.opts.Remote.Set(cctx, key, b, s.opts.TTL); err != nil {
		s.logger.WarnContext(ctx, "record cache set failed", "key", key, "err", err)
	}
}

func (h *handle) TypeCounts(ctx context.Context) ([]lookup.TypeCount, error) {
	st, ok := h.Handle.(lookup.Stats)
	if !ok {
		return nil, errors.New("recordcache: underlying store does not report type counts")
	}
	return st.TypeCounts(ctx)
}
