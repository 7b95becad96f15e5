package bd

import (
	"context"
	"time"

	"github.com/eneca-dev/enecawork-backend/pkg/metrics"
)

type instrumentedStore struct {
	backend string
	next    Store
}

// Instrument оборачивает Store сбором метрик по каждому вызову.
func Instrument(backend string, next Store) Store {
	return &instrumentedStore{backend: backend, next: next}
}

func (s *instrumentedStore) observe(op, table string, start time.Time, err error) {
	metrics.ObserveStoreCall(s.backend, op, table, err, time.Since(start))
}

func (s *instrumentedStore) Select(ctx context.Context, q Query, dest interface{}) error {
	start := time.Now()
	err := s.next.Select(ctx, q, dest)
	s.observe("select", q.Table, start, err)
	return err
}

func (s *instrumentedStore) Insert(ctx context.Context, table string, row interface{}, dest interface{}) error {
	start := time.Now()
	err := s.next.Insert(ctx, table, row, dest)
	s.observe("insert", table, start, err)
	return err
}

func (s *instrumentedStore) Update(ctx context.Context, q Query, values interface{}, dest interface{}) error {
	start := time.Now()
	err := s.next.Update(ctx, q, values, dest)
	s.observe("update", q.Table, start, err)
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, q Query, dest interface{}) error {
	start := time.Now()
	err := s.next.Delete(ctx, q, dest)
	s.observe("delete", q.Table, start, err)
	return err
}
