// Package sqlitestore reads the OpenNGC catalog from its SQLite database
// (the ongc.db layout: objects, objTypes, objIdentifiers). The database is
// only ever opened read-only.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/core/observability"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/names"
)

const objectCols = `objects.id, objects.name, objects.type, objTypes.typedesc, ra, dec, const,
	majax, minax, pa, bmag, vmag, jmag, hmag, kmag, sbrightn, hubble, parallax,
	pmra, pmdec, radvel, redshift, cstarumag, cstarbmag, cstarvmag, messier,
	ngc, ic, cstarnames, identifiers, commonnames, nednotes, ongcnotes, notngc`

// Store is a lookup.Source over one database file.
type Store struct {
	path string
}

var _ lookup.Source = (*Store)(nil)

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlitestore: database path is required")
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

// Open acquires a read-only connection. The caller must Close the handle.
func (s *Store) Open(ctx context.Context) (lookup.Handle, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("sqlitestore: accessing database file at %s: %w", s.path, err)
	}
	dsn := (&url.URL{Scheme: "file", Opaque: s.path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: connect %s: %w", s.path, err)
	}
	return &handle{db: db}, nil
}

type handle struct {
	db *sql.DB
}

var (
	_ lookup.Handle = (*handle)(nil)
	_ lookup.Stats  = (*handle)(nil)
)

func (h *handle) Close() error {
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("sqlitestore: close: %w", err)
	}
	return nil
}

func (h *handle) LookupOne(ctx context.Context, id model.Identifier) (*model.Object, error) {
	start := time.Now()
	var (
		q   string
		arg string
	)
	if id.Catalog == names.Messier {
		q = `SELECT ` + objectCols + `
			FROM objects JOIN objTypes ON objects.type = objTypes.type
			WHERE messier = ? LIMIT 1`
		arg = id.Key
	} else {
		q = `SELECT ` + objectCols + `
			FROM objects JOIN objTypes ON objects.type = objTypes.type
			JOIN objIdentifiers ON objects.name = objIdentifiers.name
			WHERE objIdentifiers.identifier = ? LIMIT 1`
		arg = strings.ToUpper(id.Key)
	}

	o, err := scanObject(h.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStoreOp("lookup_one", nil, time.Since(start).Seconds())
		return nil, &model.NotFoundError{Name: id.Key}
	}
	observability.ObserveStoreOp("lookup_one", err, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: lookup %s: %w", id, err)
	}
	return o, nil
}

func (h *handle) LookupMany(ctx context.Context, q lookup.Query) ([]string, error) {
	start := time.Now()
	where, args := buildWhere(q)
	stmt := `SELECT objects.name FROM objects WHERE ` + where
	switch q.OrderBy {
	case lookup.OrderName:
		stmt += ` ORDER BY name ASC`
	case lookup.OrderMessier:
		stmt += ` ORDER BY messier ASC`
	}

	rows, err := h.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		observability.ObserveStoreOp("lookup_many", err, time.Since(start).Seconds())
		return nil, fmt.Errorf("sqlitestore: query objects: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			observability.ObserveStoreOp("lookup_many", err, time.Since(start).Seconds())
			return nil, fmt.Errorf("sqlitestore: scan name: %w", err)
		}
		out = append(out, name)
	}
	err = rows.Err()
	observability.ObserveStoreOp("lookup_many", err, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: iterate objects: %w", err)
	}
	return out, nil
}

func (h *handle) TypeCounts(ctx context.Context) ([]lookup.TypeCount, error) {
	const q = `SELECT objTypes.type, objTypes.typedesc, count(*)
		FROM objects JOIN objTypes ON objects.type = objTypes.type
		GROUP BY objects.type ORDER BY objects.type`
	rows, err := h.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: type counts: %w", err)
	}
	defer rows.Close()

	var out []lookup.TypeCount
	for rows.Next() {
		var tc lookup.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Description, &tc.Count); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan type count: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: iterate type counts: %w", err)
	}
	return out, nil
}
