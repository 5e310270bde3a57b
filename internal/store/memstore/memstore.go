// Package memstore is an in-memory, read-only catalog store. It indexes
// records the same way the SQLite catalog does: by upper-cased name, by every
// recognizable cross identifier and by Messier number.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/names"
)

type Store struct {
	objs    []*model.Object
	byID    map[string]int
	messier map[string]int
}

var (
	_ lookup.Source = (*Store)(nil)
	_ lookup.Handle = (*Store)(nil)
	_ lookup.Stats  = (*Store)(nil)
)

// New indexes objs. Two records claiming the same identifier is an error.
func New(objs []model.Object) (*Store, error) {
	s := &Store{
		objs:    make([]*model.Object, 0, len(objs)),
		byID:    make(map[string]int, len(objs)),
		messier: make(map[string]int),
	}
	for i := range objs {
		o := objs[i]
		if o.TypeDesc == "" {
			o.TypeDesc = model.TypeDescriptions[o.Type]
		}
		idx := len(s.objs)
		s.objs = append(s.objs, &o)

		if err := s.index(strings.ToUpper(o.Name), idx); err != nil {
			return nil, err
		}
		for _, raw := range strings.Split(o.OtherIDs, ",") {
			id, err := names.Parse(raw)
			if err != nil || id.Catalog == names.Messier {
				continue
			}
			if err := s.index(id.Key, idx); err != nil {
				return nil, err
			}
		}
		if o.Messier != "" {
			s.messier[o.Messier] = idx
		}
	}
	return s, nil
}

func (s *Store) index(key string, idx int) error {
	if prev, ok := s.byID[key]; ok && prev != idx {
		return fmt.Errorf("memstore: identifier %q claimed by %s and %s",
			key, s.objs[prev].Name, s.objs[idx].Name)
	}
	s.byID[key] = idx
	return nil
}

// Open returns the store itself; there is nothing to acquire.
func (s *Store) Open(context.Context) (lookup.Handle, error) { return s, nil }

func (s *Store) Close() error { return nil }

func (s *Store) LookupOne(_ context.Context, id model.Identifier) (*model.Object, error) {
	var (
		idx int
		ok  bool
	)
	if id.Catalog == names.Messier {
		idx, ok = s.messier[id.Key]
	} else {
		idx, ok = s.byID[id.Key]
	}
	if !ok {
		return nil, &model.NotFoundError{Name: id.Key}
	}
	cp := *s.objs[idx]
	return &cp, nil
}

func (s *Store) LookupMany(_ context.Context, q lookup.Query) ([]string, error) {
	matched := make([]*model.Object, 0)
	for _, o := range s.objs {
		if q.Matches(o) {
			matched = append(matched, o)
		}
	}
	switch q.OrderBy {
	case lookup.OrderName:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	case lookup.OrderMessier:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Messier < matched[j].Messier })
	}
	out := make([]string, len(matched))
	for i, o := range matched {
		out[i] = o.Name
	}
	return out, nil
}

func (s *Store) TypeCounts(context.Context) ([]lookup.TypeCount, error) {
	counts := map[string]int{}
	for _, o := range s.objs {
		counts[o.Type]++
	}
	out := make([]lookup.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, lookup.TypeCount{Type: t, Description: model.TypeDescriptions[t], Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}
