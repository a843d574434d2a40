// Copyright 2023 The Cascade Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package main

import (
	"fmt"
	"strings"

	"github.com/cascadedb/cascade/pkg/sql/catalog/indextarget"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <column-group>...",
	Short: "build the canonical target string for a list of column groups",
	Long: `Build the canonical persisted target string for a target list.

Each argument is one target element: a column name, or several
comma-separated names forming a composite group. The first element
becomes the partition key, the rest become clustering columns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := make([]indextarget.ColumnExpr, 0, len(args))
		for _, arg := range args {
			expr, err := columnExprFromArg(arg)
			if err != nil {
				return err
			}
			targets = append(targets, expr)
		}
		s, err := indextarget.Serialize(targets)
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	},
}

func columnExprFromArg(arg string) (indextarget.ColumnExpr, error) {
	names := strings.Split(arg, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
		if names[i] == "" {
			return nil, errors.Newf("empty column name in target element %q", arg)
		}
	}
	if len(names) == 1 {
		return indextarget.SingleColumn{Name: names[0]}, nil
	}
	return indextarget.ColumnGroup{Names: names}, nil
}
