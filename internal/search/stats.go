package search

import (
	"context"
	"errors"
	"time"

	"github.com/mohammed-shakir/ongc/internal/logger"
	"github.com/mohammed-shakir/ongc/internal/lookup"
)

type Stats struct {
	DatasetVersion string             `json:"dataset_version"`
	Total          int                `json:"total"`
	ByType         []lookup.TypeCount `json:"by_type"`
}

// Stats counts the records of the catalog per object type.
func (s *Service) Stats(ctx context.Context) (st Stats, err error) {
	ctx = logger.WithQueryID(ctx, "")
	defer s.observe(ctx, "stats", time.Now(), &err)

	h, err := s.src.Open(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer h.Close()

	counter, ok := h.(lookup.Stats)
	if !ok {
		return Stats{}, errors.New("search: catalog store does not report type counts")
	}
	byType, err := counter.TypeCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	st = Stats{DatasetVersion: s.dataset, ByType: byType}
	for _, tc := range byType {
		st.Total += tc.Count
	}
	return st, nil
}
