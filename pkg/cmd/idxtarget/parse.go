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
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cascadedb/cascade/pkg/sql/catalog"
	"github.com/cascadedb/cascade/pkg/sql/catalog/indextarget"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var jsonOutput bool

func addOutputFlags(f *pflag.FlagSet) {
	f.BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")
}

func init() {
	addOutputFlags(parseCmd.Flags())
}

// displayColumn resolves every name: the tool has no schema to check
// against, it only recovers structure.
type displayColumn string

func (c displayColumn) GetName() string { return string(c) }

var permissiveResolver = catalog.ResolverFunc(func(name string) catalog.Column {
	return displayColumn(name)
})

var parseCmd = &cobra.Command{
	Use:   "parse <target>...",
	Short: "parse target strings and print their column structure",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, target := range args {
			info, err := indextarget.Parse(target, permissiveResolver)
			if err != nil {
				return err
			}
			if jsonOutput {
				if err := printTargetJSON(target, info); err != nil {
					return err
				}
				continue
			}
			fmt.Printf("%s: %s\n", target, info)
		}
		return nil
	},
}

var localCmd = &cobra.Command{
	Use:   "local <target>...",
	Short: "report whether target strings describe local indexes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, target := range args {
			fmt.Printf("%s: %s\n", target, strconv.FormatBool(indextarget.IsLocal(target)))
		}
		return nil
	},
}

var columnCmd = &cobra.Command{
	Use:   "column <target>...",
	Short: "print the representative display column of target strings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, target := range args {
			fmt.Println(indextarget.PrimaryColumnName(target))
		}
		return nil
	},
}

func printTargetJSON(target string, info indextarget.Target) error {
	out := struct {
		Target string   `json:"target"`
		Mode   string   `json:"mode"`
		PK     []string `json:"pk"`
		CK     []string `json:"ck,omitempty"`
	}{
		Target: target,
		Mode:   info.Mode.String(),
		PK:     columnNames(info.PartitionColumns),
		CK:     columnNames(info.ClusteringColumns),
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func columnNames(cols []catalog.Column) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.GetName()
	}
	return names
}
