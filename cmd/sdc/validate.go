// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdhender/sdc/internal/sdc/parser"
)

var cmdValidate = &cobra.Command{
	Use:   "validate <file>",
	Short: "parse a story document and check every cross-reference",
	Long:  `Parse a story document and run the reference validator, reporting the first unresolved reference found.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		res := parser.ParseFile(path)
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", res.Err.Error())
			return fmt.Errorf("parse failed")
		}

		if bad := res.Graph.ValidateReferences(); bad != nil {
			fmt.Fprintf(os.Stderr, "%s\n", bad.Error())
			return fmt.Errorf("validation failed")
		}

		fmt.Printf("%q: all references resolved\n", path)
		return nil
	},
}
