// Copyright 2023 The Cascade Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package secidx holds the persisted metadata representation of secondary
// indexes and the helpers that recover structured target information from
// it.
package secidx

import (
	"github.com/cascadedb/cascade/pkg/sql/catalog"
	"github.com/cascadedb/cascade/pkg/sql/catalog/indextarget"
	"github.com/cockroachdb/errors"
)

// Persisted option keys for secondary-index metadata. These appear in
// stored schemas; never change them.
const (
	// TargetOptionName keys the target string that Parse reads back.
	TargetOptionName = "target"
	// CustomClassOptionName keys the implementation class of a custom
	// index.
	CustomClassOptionName = "class_name"
	// KeysOptionName marks a map-keys index.
	KeysOptionName = "index_keys"
	// ValuesOptionName marks a map-values index.
	ValuesOptionName = "index_values"
	// EntriesOptionName marks a map-entries index.
	EntriesOptionName = "index_keys_and_values"
)

// Kind distinguishes how an index's metadata is interpreted.
type Kind int

const (
	// KindComposites is the regular secondary-index kind.
	KindComposites Kind = iota
	// KindKeys is the legacy thrift-era kind.
	KindKeys
	// KindCustom is an index backed by a user-named implementation class.
	KindCustom
)

var kindName = [...]string{
	KindComposites: "COMPOSITES",
	KindKeys:       "KEYS",
	KindCustom:     "CUSTOM",
}

func (k Kind) String() string { return kindName[k] }

// SafeValue implements the redact.SafeValue interface.
func (k Kind) SafeValue() {}

// IndexMetadata is the stored description of one secondary index.
type IndexMetadata struct {
	Name    string
	Kind    Kind
	Options map[string]string
}

// IsCustom reports whether the index is backed by a custom implementation
// class.
func (im IndexMetadata) IsCustom() bool {
	return im.Kind == KindCustom
}

// TargetOption returns the stored target string, if any.
func (im IndexMetadata) TargetOption() (string, bool) {
	target, ok := im.Options[TargetOptionName]
	return target, ok
}

// ErrInvalidIndexConfiguration marks errors raised when stored index
// metadata cannot be interpreted.
var ErrInvalidIndexConfiguration = errors.New("invalid index configuration")

// ParseTarget recovers the structured target of a stored index. Any
// failure, including a missing target option, surfaces as a single
// configuration error naming the index and the raw target text, with the
// root cause embedded.
func ParseTarget(
	resolver catalog.ColumnResolver, im IndexMetadata,
) (indextarget.Target, error) {
	target, ok := im.TargetOption()
	if !ok {
		return indextarget.Target{}, errors.Mark(
			errors.Newf("index %s has no %s option", im.Name, TargetOptionName),
			ErrInvalidIndexConfiguration)
	}
	info, err := indextarget.Parse(target, resolver)
	if err != nil {
		return indextarget.Target{}, errors.Mark(
			errors.Wrapf(err, "unable to parse targets for index %s (%s)", im.Name, target),
			ErrInvalidIndexConfiguration)
	}
	return info, nil
}

// IsLocal reports whether the stored index is a local one. Metadata
// without a target option is not local.
func (im IndexMetadata) IsLocal() bool {
	target, ok := im.TargetOption()
	return ok && indextarget.IsLocal(target)
}

// TargetColumnName returns the representative column name of the stored
// index for display purposes, or "" when no target option is present.
func (im IndexMetadata) TargetColumnName() string {
	target, ok := im.TargetOption()
	if !ok {
		return ""
	}
	return indextarget.PrimaryColumnName(target)
}
