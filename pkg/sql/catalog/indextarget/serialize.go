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

	"github.com/cockroachdb/errors"
)

// Serialize produces the canonical persisted target string for a
// non-empty target list. A lone SingleColumn serializes to the bare
// column name, byte-for-byte what Parse's fallback path reads back. Any
// other shape produces the structured JSON form: the first element
// becomes the pk array (a SingleColumn is wrapped in a one-element
// array), and remaining elements become the ck array, each encoded as a
// name or a nested name array. No ck field is emitted for a single
// element; absence, not an empty array, means no clustering columns.
//
// Functional modes are never emitted: they are a legacy read-path syntax
// that newly created targets do not use.
func Serialize(targets []ColumnExpr) (string, error) {
	if len(targets) == 0 {
		return "", errors.AssertionFailedf("no index targets to serialize")
	}
	if len(targets) == 1 {
		if single, ok := targets[0].(SingleColumn); ok {
			return single.Name, nil
		}
	}

	var def struct {
		PK []string          `json:"pk"`
		CK []json.RawMessage `json:"ck,omitempty"`
	}
	switch t := targets[0].(type) {
	case SingleColumn:
		def.PK = []string{t.Name}
	case ColumnGroup:
		def.PK = append([]string{}, t.Names...)
	default:
		return "", errors.AssertionFailedf("unknown index target expression %T", t)
	}
	for _, target := range targets[1:] {
		elem, err := marshalTargetElement(target)
		if err != nil {
			return "", err
		}
		def.CK = append(def.CK, elem)
	}
	buf, err := json.Marshal(def)
	if err != nil {
		return "", errors.NewAssertionErrorWithWrappedErrf(err, "encoding index targets")
	}
	return string(buf), nil
}

func marshalTargetElement(target ColumnExpr) (json.RawMessage, error) {
	switch t := target.(type) {
	case SingleColumn:
		return json.Marshal(t.Name)
	case ColumnGroup:
		return json.Marshal(append([]string{}, t.Names...))
	default:
		return nil, errors.AssertionFailedf("unknown index target expression %T", t)
	}
}
