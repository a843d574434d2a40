// Copyright 2023 The Cascade Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package indextarget parses and serializes the persisted target strings
// that describe which column(s) of a table a secondary index covers.
//
// Three generations of target syntax remain readable forever:
//
//   - bare: the column name itself, e.g. "email"
//   - functional: a collection indexing mode applied to one column,
//     e.g. "keys(tags)", "entries(tags)", "values(tags)", "full(tags)"
//   - structured: a JSON object listing partition-key and clustering-key
//     columns, e.g. {"pk":["a","b"],"ck":["c"]}
//
// The stored string carries no version tag; the grammar is disambiguated
// purely by shape.
package indextarget

import (
	"github.com/cascadedb/cascade/pkg/sql/catalog"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Mode is the indexing mode a target applies to its column. For collection
// columns it selects which part of the collection gets indexed.
type Mode int

const (
	// ModeValues indexes the column value (or collection values). It is the
	// default for bare and structured targets.
	ModeValues Mode = iota
	// ModeKeys indexes the keys of a map column.
	ModeKeys
	// ModeEntries indexes the full key/value entries of a map column.
	ModeEntries
	// ModeFull indexes a frozen collection as a single value.
	ModeFull
)

var modeName = [...]string{
	ModeValues:  "values",
	ModeKeys:    "keys",
	ModeEntries: "entries",
	ModeFull:    "full",
}

func (m Mode) String() string { return modeName[m] }

// SafeValue implements the redact.SafeValue interface.
func (m Mode) SafeValue() {}

// ModeFromString maps a functional-form keyword back to its Mode.
func ModeFromString(s string) (Mode, bool) {
	for m, name := range modeName {
		if name == s {
			return Mode(m), true
		}
	}
	return 0, false
}

// Target is the parsed form of a persisted index target string. It is a
// transient value: the Columns it holds are borrowed from the schema
// snapshot behind the resolver that produced them.
type Target struct {
	Mode Mode
	// PartitionColumns are the index partition-key columns in grammar
	// order. Non-empty for any successfully parsed target.
	PartitionColumns []catalog.Column
	// ClusteringColumns are the index clustering-key columns in grammar
	// order. Only the structured JSON form can populate them.
	ClusteringColumns []catalog.Column
}

// SafeFormat implements the redact.SafeFormatter interface. Modes are
// safe; column names are user data and stay redactable.
func (t Target) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("mode=%s pk=(", t.Mode)
	formatColumns(w, t.PartitionColumns)
	w.SafeString(")")
	if len(t.ClusteringColumns) > 0 {
		w.SafeString(" ck=(")
		formatColumns(w, t.ClusteringColumns)
		w.SafeString(")")
	}
}

func (t Target) String() string { return redact.StringWithoutMarkers(t) }

func formatColumns(w redact.SafePrinter, cols []catalog.Column) {
	for i, col := range cols {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Print(col.GetName())
	}
}

// ColumnExpr is one element of an index target list handed to Serialize:
// either a single column or a group of columns treated as one unit. The
// two variants share no behavior, so this is a closed sum rather than a
// behavioral interface.
type ColumnExpr interface {
	columnExpr()
}

// SingleColumn targets one column.
type SingleColumn struct {
	Name string
}

// ColumnGroup targets several columns as a single composite unit.
type ColumnGroup struct {
	Names []string
}

func (SingleColumn) columnExpr() {}
func (ColumnGroup) columnExpr()  {}

// ErrColumnNotFound marks errors caused by a target referencing a column
// that does not exist in the schema snapshot. Detect with errors.Is.
var ErrColumnNotFound = errors.New("index target column not found")

// ErrMalformedTarget marks errors caused by a JSON-object target whose
// shape is not the expected pk/ck arrays of column names.
var ErrMalformedTarget = errors.New("malformed index target")
