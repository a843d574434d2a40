// Copyright 2023 The Cascade Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// idxtarget inspects and builds the persisted target strings of
// secondary indexes. It operates on raw strings only; no schema access.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "idxtarget",
	Short:         "inspect persisted secondary-index target strings",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(encodeCmd)
}
