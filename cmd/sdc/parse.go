// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mdhender/sdc/internal/cache"
	"github.com/mdhender/sdc/internal/sdc/parser"
)

var argsParse struct {
	useCache bool
}

var cmdParse = &cobra.Command{
	Use:   "parse <file>",
	Short: "parse a story document and report its structure",
	Long:  `Parse a single story document and print a summary of the resulting story graph.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		sb, err := os.Stat(path)
		if err != nil {
			return err
		}

		started := time.Now()
		var res parser.Result
		if argsParse.useCache {
			c, err := cache.New(globalConfig.Stories.CacheSize)
			if err != nil {
				return err
			}
			res = c.ParseFile(path)
		} else {
			res = parser.ParseFile(path)
		}

		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", res.Err.Error())
			return fmt.Errorf("parse failed")
		}
		g := res.Graph

		logger.Info("parse", "file", path, "size", humanize.Bytes(uint64(sb.Size())), "started", humanize.Time(started))
		fmt.Printf("parsed %q (%s)\n", path, humanize.Bytes(uint64(sb.Size())))
		fmt.Printf("  states           %d\n", len(g.States))
		fmt.Printf("  global variables %d\n", len(g.GlobalVariables))
		fmt.Printf("  tags             %d\n", len(g.Tags))
		fmt.Printf("  linked lists     %d\n", len(g.LinkedLists))
		fmt.Printf("  characters       %d\n", len(g.Characters))
		fmt.Printf("  chapters         %d\n", len(g.Chapters))
		fmt.Printf("  groups           %d\n", len(g.Groups))
		fmt.Printf("  nodes            %d\n", len(g.Nodes))
		return nil
	},
}

func init() {
	cmdParse.Flags().BoolVar(&argsParse.useCache, "cache", false, "parse through an LRU parsed-graph cache that lasts for this invocation only")
}
