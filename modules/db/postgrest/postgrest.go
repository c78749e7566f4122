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

// Package postgrest implements db.Client on top of Supabase's REST interface.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"portfolio/modules/db"

	postgrestgo "github.com/supabase-community/postgrest-go"
)

const restPath = "/rest/v1"

var ErrMissingCredentials = errors.New("postgrest: url and key are required")

var _ db.Client = (*Client)(nil)

type Client struct {
	cfg       Config
	rest      *postgrestgo.Client
	http      *http.Client
	transport *http.Transport
	baseURL   string
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, ErrMissingCredentials
	}
	base := strings.TrimRight(cfg.URL, "/") + restPath

	rest := postgrestgo.NewClient(base, cfg.Schema, map[string]string{
		"apikey":        cfg.Key,
		"Authorization": "Bearer " + cfg.Key,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("postgrest: %w", rest.ClientError)
	}

	// Queries and health checks share one transport so every upstream request
	// is bounded by cfg.Timeout and Shutdown can release its connections.
	transport := newTransport(cfg.Timeout)
	var rt http.RoundTripper = transport
	if cfg.Timeout > 0 {
		rt = &deadlineTransport{base: transport, timeout: cfg.Timeout}
	}
	rest.Transport.Parent = rt

	return &Client{
		cfg:       cfg,
		rest:      rest,
		http:      &http.Client{Transport: rt},
		transport: transport,
		baseURL:   base,
	}, nil
}

func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if timeout > 0 {
		t.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
		t.TLSHandshakeTimeout = timeout
		t.ResponseHeaderTimeout = timeout
	}
	return t
}

// deadlineTransport cancels a request, body read included, once timeout has
// elapsed. The REST client takes no context, so this is the only bound on
// requests it issues.
type deadlineTransport struct {
	base    http.RoundTripper
	timeout time.Duration
}

func (t *deadlineTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), t.timeout)
	resp, err := t.base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// HealthCheck requests the REST root, which answers with the schema
// description as soon as the key is accepted.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.cfg.Key)
	req.Header.Set("Authorization", "Bearer "+c.cfg.Key)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postgrest: health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("postgrest: health: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Select translates q into a PostgREST request.
//
// Case-insensitive filters go out as ilike with wildcards escaped and are
// then re-checked locally, since ilike is a pattern match rather than an
// equality. When such a filter is present the limit is applied locally too.
func (c *Client) Select(ctx context.Context, q db.Query) ([]db.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}

	fb := c.rest.From(q.Table).Select(columns, "", false)

	folded := false
	for _, f := range q.Filters {
		if f.Fold {
			s, ok := f.Value.(string)
			if !ok {
				return nil, fmt.Errorf("postgrest: case-insensitive filter on %q needs a string, got %T", f.Column, f.Value)
			}
			fb = fb.Ilike(f.Column, escapeLike(s))
			folded = true
			continue
		}
		fb = fb.Eq(f.Column, formatValue(f.Value))
	}

	for _, o := range q.Orders {
		fb = fb.Order(o.Column, &postgrestgo.OrderOpts{Ascending: !o.Desc})
	}

	if q.Limit > 0 && !folded {
		fb = fb.Limit(q.Limit, "")
	}

	body, err := c.execute(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("postgrest: select %s: %w", q.Table, err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("postgrest: decode %s: %w", q.Table, err)
	}

	if folded {
		records = refold(records, q.Filters)
		if q.Limit > 0 && len(records) > q.Limit {
			records = records[:q.Limit]
		}
	}
	return records, nil
}

// execute runs the request in its own goroutine so a cancelled ctx stops the
// wait early. The request itself ends within cfg.Timeout via deadlineTransport.
func (c *Client) execute(ctx context.Context, fb *postgrestgo.FilterBuilder) ([]byte, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	type result struct {
		body []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		body, _, err := fb.Execute()
		done <- result{body, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.body, r.err
	}
}

func (c *Client) Shutdown(_ context.Context) error {
	c.transport.CloseIdleConnections()
	return nil
}

// decodeRecords keeps numbers as json.Number so integer columns are not
// silently widened to float64.
func decodeRecords(body []byte) ([]db.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}

	records := make([]db.Record, len(rows))
	for i, r := range rows {
		records[i] = db.Record(r)
	}
	return records, nil
}

func refold(records []db.Record, filters []db.Filter) []db.Record {
	out := records[:0]
	for _, r := range records {
		keep := true
		for _, f := range filters {
			if !f.Fold {
				continue
			}
			got, ok := r[f.Column].(string)
			if !ok || !strings.EqualFold(got, f.Value.(string)) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// `*` is left alone: PostgREST rewrites it to `%` before escapes apply, so it
// only widens the match and refold removes the extra rows.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
