// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdhender/sdc/internal/sdc/exec"
	"github.com/mdhender/sdc/internal/sdc/parser"
)

var argsRun struct {
	chapterId int
	groupId   int
	nodeId    int
}

var cmdRun = &cobra.Command{
	Use:   "run <file>",
	Short: "step through a story document from the command line",
	Long:  `Parse a story document and drive an execution cursor from the starting position, printing each result and prompting on the terminal for choices.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		res := parser.ParseFile(path)
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", res.Err.Error())
			return fmt.Errorf("parse failed")
		}

		c := exec.New(res.Graph)
		c.Start(argsRun.chapterId, argsRun.groupId, argsRun.nodeId)
		logger.Info("run", "cursor", c.ID.String(), "file", path)

		in := bufio.NewReader(os.Stdin)
		for {
			r := c.Step()
			switch v := r.(type) {
			case exec.DialogueResult:
				for _, line := range v.Lines {
					fmt.Printf("%s: %s\n", line.Speaker, line.Text)
				}
			case exec.ActionResult:
				fmt.Printf("[code] %s\n", v.Code)
			case exec.EventResult:
				fmt.Printf("[event %s]\n", v.Kind)
			case exec.ChoiceResult:
				for _, opt := range v.Options {
					fmt.Printf("  %d) %s\n", opt.Index, opt.Text)
				}
				fmt.Print("> ")
				line, _ := in.ReadString('\n')
				idx, err := strconv.Atoi(strings.TrimSpace(line))
				if err != nil {
					return fmt.Errorf("expected a choice index: %w", err)
				}
				if err := c.SelectChoice(idx); err != nil {
					return err
				}
			case exec.TransitionResult:
				chapterId, groupId, nodeId, _ := c.Position()
				logger.Debug("run", "transition", v.Kind, "target", v.TargetId, "chapter", chapterId, "group", groupId, "node", nodeId)
			case exec.EndResult:
				fmt.Printf("-- end (%s) --\n", v.Reason)
				return nil
			}
		}
	},
}

func init() {
	cmdRun.Flags().IntVar(&argsRun.chapterId, "chapter", 0, "starting chapter id")
	cmdRun.Flags().IntVar(&argsRun.groupId, "group", 0, "starting group id")
	cmdRun.Flags().IntVar(&argsRun.nodeId, "node", 0, "starting node id")
	if err := cmdRun.MarkFlagRequired("node"); err != nil {
		panic(err)
	}
}
