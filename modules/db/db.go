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

package db

import (
	"context"
	"errors"
)

var ErrEmptyTable = errors.New("db: query without table")

type (
	// Record is one loosely typed row as returned by a store backend.
	// Value types depend on the backend (JSON numbers vs native integers, etc.),
	// so callers must go through an explicit mapping step.
	Record map[string]any

	// Filter is an equality predicate on a single column.
	//
	// When Fold is true the comparison ignores case; Value must then be a string.
	Filter struct {
		Column string
		Value  any
		Fold   bool
	}

	Order struct {
		Column string
		Desc   bool
	}

	// Query is the table-scoped read contract shared by every backend.
	// An empty Columns slice selects all columns, Limit <= 0 means unbounded.
	Query struct {
		Table   string
		Columns []string
		Filters []Filter
		Orders  []Order
		Limit   int
	}

	// Client is a handle to the hosted relational store. Implementations must be
	// safe for concurrent use; one instance is built at startup and injected.
	Client interface {
		HealthManager

		// Select runs q and returns the matching rows in store order.
		// No matching rows is not an error: an empty slice is returned.
		Select(ctx context.Context, q Query) ([]Record, error)

		// Shutdown attempts to gracefully release the underlying connections.
		Shutdown(context.Context) error
	}

	HealthManager interface {
		HealthCheck(ctx context.Context) error
	}
)

// Eq is shorthand for an exact-match filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// EqFold is shorthand for a case-insensitive string match.
func EqFold(column, value string) Filter {
	return Filter{Column: column, Value: value, Fold: true}
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

func (q Query) Validate() error {
	if q.Table == "" {
		return ErrEmptyTable
	}
	return nil
}
