// Copyright 2023 The Cascade Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package catalog

// Column is an opaque handle to a column definition in a schema snapshot.
// Identity and equality semantics belong to the snapshot that produced it;
// a Column is only valid for as long as that snapshot is.
type Column interface {
	// GetName returns the column name.
	GetName() string
}

// ColumnResolver performs column lookups against an immutable schema
// snapshot. Implementations must be pure: no side effects, and stable
// results for the duration of the operation the resolver was handed to.
type ColumnResolver interface {
	// FindColumn returns the column with the given name, or nil if no such
	// column exists in the snapshot.
	FindColumn(name string) Column
}

// ResolverFunc adapts a plain function to the ColumnResolver interface.
type ResolverFunc func(name string) Column

// FindColumn implements the ColumnResolver interface.
func (f ResolverFunc) FindColumn(name string) Column { return f(name) }

type namedColumn string

func (c namedColumn) GetName() string { return string(c) }

// MapResolver returns a ColumnResolver backed by a fixed set of column
// names. Useful in tests and tooling where only name membership matters.
func MapResolver(names ...string) ColumnResolver {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return ResolverFunc(func(name string) Column {
		if _, ok := set[name]; !ok {
			return nil
		}
		return namedColumn(name)
	})
}
