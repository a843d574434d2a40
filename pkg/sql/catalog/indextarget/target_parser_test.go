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
	"testing"

	"github.com/cascadedb/cascade/pkg/sql/catalog"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// testCol satisfies catalog.Column for resolvers that accept any name.
type testCol string

func (c testCol) GetName() string { return string(c) }

func colNames(cols []catalog.Column) []string {
	if len(cols) == 0 {
		return nil
	}
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.GetName()
	}
	return names
}

func TestParse(t *testing.T) {
	resolver := catalog.MapResolver("a", "b", "c", "my_col", "tags", "123", "true", "full")

	testData := []struct {
		target  string
		expMode Mode
		expPK   []string
		expCK   []string
	}{
		{`a`, ModeValues, []string{"a"}, nil},
		{`my_col`, ModeValues, []string{"my_col"}, nil},
		// A bare column that shadows a mode keyword still parses; the
		// functional form needs parentheses.
		{`full`, ModeValues, []string{"full"}, nil},
		// A bare name that happens to be valid JSON (a number) is not an
		// object, so it falls through to the bare path.
		{`123`, ModeValues, []string{"123"}, nil},
		{`keys(tags)`, ModeKeys, []string{"tags"}, nil},
		{`entries(tags)`, ModeEntries, []string{"tags"}, nil},
		{`values(tags)`, ModeValues, []string{"tags"}, nil},
		{`full(tags)`, ModeFull, []string{"tags"}, nil},
		{`{"pk":["a","b"],"ck":["c"]}`, ModeValues, []string{"a", "b"}, []string{"c"}},
		{`{"pk":["a"]}`, ModeValues, []string{"a"}, nil},
		{`{"pk":["a"],"ck":[]}`, ModeValues, []string{"a"}, nil},
		// Scalar elements stringify to their literal text.
		{`{"pk":[123],"ck":[true]}`, ModeValues, []string{"123"}, []string{"true"}},
	}
	for _, d := range testData {
		t.Run(d.target, func(t *testing.T) {
			info, err := Parse(d.target, resolver)
			require.NoError(t, err)
			require.Equal(t, d.expMode, info.Mode)
			require.Empty(t, cmp.Diff(d.expPK, colNames(info.PartitionColumns)))
			require.Empty(t, cmp.Diff(d.expCK, colNames(info.ClusteringColumns)))
		})
	}
}

func TestParseErrors(t *testing.T) {
	resolver := catalog.MapResolver("a", "b")

	testData := []struct {
		target      string
		expSentinel error
		expMessage  string
	}{
		{`unknown_col`, ErrColumnNotFound, `column "unknown_col" not found`},
		{`keys(unknown_col)`, ErrColumnNotFound, `column "unknown_col" not found`},
		{`{"pk":["a","unknown_col"]}`, ErrColumnNotFound, `column "unknown_col" not found`},
		{`{"pk":["a"],"ck":["unknown_col"]}`, ErrColumnNotFound, `column "unknown_col" not found`},
		// The functional keywords are case-sensitive, so this degrades to
		// the bare path and fails on the whole string.
		{`KEYS(a)`, ErrColumnNotFound, `column "KEYS(a)" not found`},
		{`{"pk":"notarray"}`, ErrMalformedTarget, `pk and ck fields of JSON definition must be arrays`},
		{`{"pk":["a"],"ck":5}`, ErrMalformedTarget, `pk and ck fields of JSON definition must be arrays`},
		{`{"pk":null}`, ErrMalformedTarget, `pk and ck fields of JSON definition must be arrays`},
		{`{"pk":["a"],"ck":null}`, ErrMalformedTarget, `pk and ck fields of JSON definition must be arrays`},
		{`{"pk":[["a","b"]]}`, ErrMalformedTarget, `does not name a column`},
		// A JSON object that names no partition-key columns cannot describe
		// an index.
		{`{}`, ErrMalformedTarget, `no partition key columns`},
		{`{"pk":[]}`, ErrMalformedTarget, `no partition key columns`},
		{`{"ck":["b"]}`, ErrMalformedTarget, `no partition key columns`},
		// A JSON null is not an object; the bare path resolves the raw text.
		{`null`, ErrColumnNotFound, `column "null" not found`},
	}
	for _, d := range testData {
		t.Run(d.target, func(t *testing.T) {
			_, err := Parse(d.target, resolver)
			require.Error(t, err)
			require.True(t, errors.Is(err, d.expSentinel), "unexpected error: %+v", err)
			require.Contains(t, err.Error(), d.expMessage)
		})
	}
}

func TestIsLocal(t *testing.T) {
	testData := []struct {
		target string
		exp    bool
	}{
		{`{"pk":["a"],"ck":["b"]}`, true},
		{`{"pk":["a","b"],"ck":["c","d"]}`, true},
		// Locality only depends on the arrays being present and non-empty;
		// composite clustering groups do not change the classification.
		{`{"pk":["a"],"ck":[["x","y"]]}`, true},
		{`{"pk":["a","b"],"ck":[["x","y"],"z"]}`, true},
		{`{"pk":["a"]}`, false},
		{`{"ck":["b"]}`, false},
		{`{"pk":["a"],"ck":[]}`, false},
		{`{"pk":[],"ck":["b"]}`, false},
		{`{"pk":"a","ck":"b"}`, false},
		{`a`, false},
		{`keys(a)`, false},
		{`[1,2]`, false},
		{`not json {{{`, false},
		{``, false},
	}
	for _, d := range testData {
		require.Equal(t, d.exp, IsLocal(d.target), "target: %s", d.target)
	}

	// A serialized multi-element target list with composite groups must
	// classify as local.
	s, err := Serialize([]ColumnExpr{
		ColumnGroup{Names: []string{"a", "b"}},
		ColumnGroup{Names: []string{"x", "y"}},
	})
	require.NoError(t, err)
	require.Equal(t, `{"pk":["a","b"],"ck":[["x","y"]]}`, s)
	require.True(t, IsLocal(s))
}

func TestPrimaryColumnName(t *testing.T) {
	testData := []struct {
		target string
		exp    string
	}{
		{`a`, `a`},
		{`keys(a)`, `keys(a)`},
		{`{"pk":["a","b"],"ck":["c"]}`, `c`},
		{`{"pk":["a","b"]}`, `a`},
		{`{"pk":["a"],"ck":[]}`, `a`},
		{`{"pk":[],"ck":[]}`, `{"pk":[],"ck":[]}`},
		{`{}`, `{}`},
		// Non-object JSON passes through verbatim.
		{`"quoted"`, `"quoted"`},
		{`5`, `5`},
		{`[1,2]`, `[1,2]`},
		// A composite ck element has no single display name.
		{`{"pk":["a"],"ck":[["x","y"]]}`, `{"pk":["a"],"ck":[["x","y"]]}`},
	}
	for _, d := range testData {
		require.Equal(t, d.exp, PrimaryColumnName(d.target), "target: %s", d.target)
	}
}

func TestSerialize(t *testing.T) {
	testData := []struct {
		targets []ColumnExpr
		exp     string
	}{
		{[]ColumnExpr{SingleColumn{Name: "a"}}, `a`},
		{[]ColumnExpr{ColumnGroup{Names: []string{"a", "b"}}}, `{"pk":["a","b"]}`},
		{[]ColumnExpr{SingleColumn{Name: "a"}, SingleColumn{Name: "b"}}, `{"pk":["a"],"ck":["b"]}`},
		{
			[]ColumnExpr{
				ColumnGroup{Names: []string{"a", "b"}},
				SingleColumn{Name: "c"},
				ColumnGroup{Names: []string{"d", "e"}},
			},
			`{"pk":["a","b"],"ck":["c",["d","e"]]}`,
		},
	}
	for _, d := range testData {
		s, err := Serialize(d.targets)
		require.NoError(t, err)
		require.Equal(t, d.exp, s)
	}

	_, err := Serialize(nil)
	require.Error(t, err)
	require.True(t, errors.HasAssertionFailure(err))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	resolver := catalog.ResolverFunc(func(name string) catalog.Column { return testCol(name) })

	testData := []struct {
		targets []ColumnExpr
		expPK   []string
		expCK   []string
	}{
		{[]ColumnExpr{SingleColumn{Name: "a"}}, []string{"a"}, nil},
		{[]ColumnExpr{ColumnGroup{Names: []string{"a", "b"}}}, []string{"a", "b"}, nil},
		{
			[]ColumnExpr{ColumnGroup{Names: []string{"a", "b"}}, SingleColumn{Name: "c"}},
			[]string{"a", "b"}, []string{"c"},
		},
		{
			[]ColumnExpr{SingleColumn{Name: "a"}, SingleColumn{Name: "b"}, SingleColumn{Name: "c"}},
			[]string{"a"}, []string{"b", "c"},
		},
	}
	for _, d := range testData {
		s, err := Serialize(d.targets)
		require.NoError(t, err)
		info, err := Parse(s, resolver)
		require.NoError(t, err)
		require.Equal(t, ModeValues, info.Mode)
		require.Empty(t, cmp.Diff(d.expPK, colNames(info.PartitionColumns)))
		require.Empty(t, cmp.Diff(d.expCK, colNames(info.ClusteringColumns)))
	}
}

func TestTargetFormatting(t *testing.T) {
	resolver := catalog.MapResolver("a", "b", "c")

	info, err := Parse(`{"pk":["a","b"],"ck":["c"]}`, resolver)
	require.NoError(t, err)
	require.Equal(t, "mode=values pk=(a, b) ck=(c)", info.String())
	// Modes are safe, column names are redactable user data.
	require.Equal(t, "mode=values pk=(‹a›, ‹b›) ck=(‹c›)", string(redact.Sprint(info)))

	info, err = Parse(`keys(a)`, resolver)
	require.NoError(t, err)
	require.Equal(t, "mode=keys pk=(a)", info.String())
}

func TestModeFromString(t *testing.T) {
	for _, m := range []Mode{ModeValues, ModeKeys, ModeEntries, ModeFull} {
		got, ok := ModeFromString(m.String())
		require.True(t, ok)
		require.Equal(t, m, got)
	}
	_, ok := ModeFromString("KEYS")
	require.False(t, ok)
	_, ok = ModeFromString("")
	require.False(t, ok)
}
