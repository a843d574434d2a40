// Copyright 2023 The Cascade Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package indextarget

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/cascadedb/cascade/pkg/sql/catalog"
	"github.com/cockroachdb/errors"
)

// JSON field names of the structured target form. Part of the persisted
// format; never change these.
const (
	pkTargetKey = "pk"
	ckTargetKey = "ck"
)

var targetRegexp = regexp.MustCompile(`^(keys|entries|values|full)\((.+)\)$`)

// Parse recovers the structured Target a persisted target string was
// created with. The three syntax generations are tried in a fixed order,
// first match wins:
//
//  1. functional form, e.g. "keys(col)"
//  2. structured JSON object form, e.g. {"pk":["a"],"ck":["b"]}
//  3. bare fallback: the whole string is one column name
//
// Column names are resolved through the supplied resolver; a name missing
// from the snapshot fails the parse with an ErrColumnNotFound-marked
// error. A JSON object whose pk or ck field is not an array, or that
// names no partition-key columns at all, fails with an
// ErrMalformedTarget-marked error.
func Parse(target string, resolver catalog.ColumnResolver) (Target, error) {
	if m := targetRegexp.FindStringSubmatch(target); m != nil {
		mode, ok := ModeFromString(m[1])
		if !ok {
			return Target{}, errors.AssertionFailedf("target regexp admitted unknown mode %q", m[1])
		}
		col, err := resolveColumn(resolver, m[2])
		if err != nil {
			return Target{}, err
		}
		return Target{Mode: mode, PartitionColumns: []catalog.Column{col}}, nil
	}

	if obj, ok := asJSONObject(target); ok {
		pk, err := decodeColumnArray(obj, pkTargetKey)
		if err != nil {
			return Target{}, err
		}
		ck, err := decodeColumnArray(obj, ckTargetKey)
		if err != nil {
			return Target{}, err
		}
		if len(pk) == 0 {
			return Target{}, errors.Mark(
				errors.Newf("JSON target %s has no partition key columns", target), ErrMalformedTarget)
		}
		info := Target{Mode: ModeValues}
		for _, name := range pk {
			col, err := resolveColumn(resolver, name)
			if err != nil {
				return Target{}, err
			}
			info.PartitionColumns = append(info.PartitionColumns, col)
		}
		for _, name := range ck {
			col, err := resolveColumn(resolver, name)
			if err != nil {
				return Target{}, err
			}
			info.ClusteringColumns = append(info.ClusteringColumns, col)
		}
		return info, nil
	}

	// Fallback: treat the whole string as a single column name.
	col, err := resolveColumn(resolver, target)
	if err != nil {
		return Target{}, err
	}
	return Target{Mode: ModeValues, PartitionColumns: []catalog.Column{col}}, nil
}

// IsLocal reports whether a target string describes a local index: one
// whose partition key matches the base table's, differentiated only by
// clustering columns. True iff the string is a JSON object with non-empty
// pk AND ck arrays. Never errors; unrecognizable input is simply not
// local.
func IsLocal(target string) bool {
	obj, ok := asJSONObject(target)
	if !ok {
		return false
	}
	// Only presence and non-emptiness of the arrays matter here; the
	// elements are not inspected, so composite clustering groups still
	// classify as local.
	return len(decodeRawArray(obj[pkTargetKey])) > 0 && len(decodeRawArray(obj[ckTargetKey])) > 0
}

// decodeRawArray decodes a pk/ck field as an array without interpreting
// its elements. Missing, null, or non-array fields decode as empty.
func decodeRawArray(raw json.RawMessage) []json.RawMessage {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	return elems
}

// PrimaryColumnName extracts a representative column name from a target
// string for display purposes, without resolving against a schema. The
// first clustering column wins, then the first partition column; anything
// unrecognizable passes through verbatim.
func PrimaryColumnName(target string) string {
	obj, ok := asJSONObject(target)
	if !ok {
		return target
	}
	for _, key := range []string{ckTargetKey, pkTargetKey} {
		var elems []json.RawMessage
		if err := json.Unmarshal(obj[key], &elems); err != nil || len(elems) == 0 {
			continue
		}
		name, err := stringifyElement(elems[0])
		if err != nil {
			return target
		}
		return name
	}
	return target
}

func resolveColumn(resolver catalog.ColumnResolver, name string) (catalog.Column, error) {
	col := resolver.FindColumn(name)
	if col == nil {
		return nil, errors.Mark(errors.Newf("column %q not found", name), ErrColumnNotFound)
	}
	return col, nil
}

// asJSONObject reports whether the target string is a JSON object, and if
// so returns its fields undecoded.
func asJSONObject(target string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	// A JSON null also leaves obj nil without an unmarshal error.
	if err := json.Unmarshal([]byte(target), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// decodeColumnArray decodes the named field as an array of column names.
// A missing field decodes as empty; a present non-array field is a
// malformed target.
func decodeColumnArray(obj map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, nil
	}
	var elems []json.RawMessage
	// A JSON null leaves elems nil without an unmarshal error; an empty
	// array allocates. Only actual arrays pass.
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, errors.Mark(
			errors.Newf("pk and ck fields of JSON definition must be arrays"), ErrMalformedTarget)
	}
	names := make([]string, len(elems))
	for i, elem := range elems {
		name, err := stringifyElement(elem)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// stringifyElement turns a pk/ck array element into a column name. JSON
// strings are taken verbatim; numbers and booleans stringify to their
// literal text, matching columns whose names happen to look like scalars.
func stringifyElement(elem json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(elem, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(elem, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(elem, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	return "", errors.Mark(
		errors.Newf("target element %s does not name a column", elem), ErrMalformedTarget)
}
