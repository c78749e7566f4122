// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio/modules/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

var _ db.Client = (*PostgresConnectionPool)(nil)

type PostgresConnectionPool struct {
	writer  *pgxpool.Pool
	readers []*pgxpool.Pool

	queryTimeout time.Duration
}

func (p *PostgresConnectionPool) HealthCheck(ctx context.Context) error {
	// TODO: Make this query configurable
	_, err := p.writer.Exec(ctx, "SELECT 1")
	return err
}

// Reader returns a read replica pool, falling back to the primary when no
// replica is configured. *pgxpool.Pool is safe for concurrent use.
func (p *PostgresConnectionPool) Reader() *pgxpool.Pool {
	if len(p.readers) == 0 {
		return p.writer
	}
	return p.readers[rand.IntN(len(p.readers))]
}

func (p *PostgresConnectionPool) Writer() *pgxpool.Pool {
	return p.writer
}

func (p *PostgresConnectionPool) Select(ctx context.Context, q db.Query) ([]db.Record, error) {
	sql, args, err := buildSelect(ctx, q)
	if err != nil {
		return nil, err
	}

	if p.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.queryTimeout)
		defer cancel()
	}

	rows, err := p.Reader().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: select %s: %w", q.Table, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("postgres: collect %s: %w", q.Table, err)
	}

	records := make([]db.Record, len(maps))
	for i, m := range maps {
		records[i] = db.Record(m)
	}
	return records, nil
}

func buildSelect(ctx context.Context, q db.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}

	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.From(psql.Quote(q.Table)),
	}

	if len(q.Columns) == 0 {
		mods = append(mods, sm.Columns("*"))
	} else {
		cols := make([]any, len(q.Columns))
		for i, c := range q.Columns {
			cols[i] = psql.Quote(c)
		}
		mods = append(mods, sm.Columns(cols...))
	}

	for _, f := range q.Filters {
		if f.Fold {
			s, ok := f.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("postgres: case-insensitive filter on %q needs a string, got %T", f.Column, f.Value)
			}
			lowered := psql.Raw("lower(" + pgx.Identifier{f.Column}.Sanitize() + ")")
			mods = append(mods, sm.Where(lowered.EQ(psql.Arg(strings.ToLower(s)))))
			continue
		}
		mods = append(mods, sm.Where(psql.Quote(f.Column).EQ(psql.Arg(f.Value))))
	}

	for _, o := range q.Orders {
		if o.Desc {
			mods = append(mods, sm.OrderBy(psql.Quote(o.Column)).Desc())
		} else {
			mods = append(mods, sm.OrderBy(psql.Quote(o.Column)).Asc())
		}
	}

	if q.Limit > 0 {
		mods = append(mods, sm.Limit(q.Limit))
	}

	return psql.Select(mods...).Build(ctx)
}

func (p *PostgresConnectionPool) Shutdown(_ context.Context) error {
	if p == nil {
		return nil
	}

	p.writer.Close()
	for _, reader := range p.readers {
		reader.Close()
	}
	return nil
}

func connString(cfg *PoolConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port))),
		Path:   "/" + cfg.Database,
	}
	params := url.Values{}
	params.Set("pool_max_conns", strconv.Itoa(cfg.PoolMaxConns))
	if cfg.SSLMode != "" {
		params.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = params.Encode()
	return u.String()
}

func New(
	ctx context.Context,
	config *PostgresConfig,
	opts PostgresOptions,
) (*PostgresConnectionPool, error) {
	writer, err := initPoolFromConfig(ctx, &config.WriteConfig, opts.WriterOptions...)
	if err != nil {
		return nil, err
	}

	var readers []*pgxpool.Pool
	for _, r := range config.ReadConfigs {
		reader, err := initPoolFromConfig(ctx, &r, opts.ReaderOptions...)
		if err != nil {
			writer.Close()
			for _, opened := range readers {
				opened.Close()
			}
			return nil, err
		}
		readers = append(readers, reader)
	}

	slog.DebugContext(ctx, "postgres pools ready", slog.Int("replicas", len(readers)))

	return &PostgresConnectionPool{
		writer:       writer,
		readers:      readers,
		queryTimeout: config.QueryTimeout,
	}, nil
}

func initPoolFromConfig(
	ctx context.Context,
	config *PoolConfig,
	opts ...PgxConfigOption,
) (*pgxpool.Pool, error) {
	if config.Host == "" {
		return nil, errors.New("postgres: empty host")
	}
	poolConfig, err := pgxpool.ParseConfig(connString(config))
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if opt != nil {
			opt(poolConfig)
		}
	}

	return pgxpool.NewWithConfig(ctx, poolConfig)
}
