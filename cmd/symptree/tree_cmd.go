package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	store storeConfig
	index int
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree of a forest",
		Long:  `Show one of the trees of a stored forest along its depth and number of leaves`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			e, err := config.store.loadEnsemble(cmd.Context(), nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "loading model %s: %v\n", config.store.key, err)
				os.Exit(2)
			}
			if config.index >= len(e.Trees) {
				fmt.Fprintf(os.Stderr, "model %s has %d trees, cannot show tree %d\n", config.store.key, len(e.Trees), config.index)
				os.Exit(3)
			}
			t := e.Trees[config.index]
			fmt.Printf("Tree %d of %d: depth %d, %d leaves\n", config.index, len(e.Trees), t.Depth(), t.Leaves())
			fmt.Println(t)
		},
	}
	config.store.addFlags(cmd, "key of the model to inspect (required)")
	cmd.Flags().IntVarP(&(config.index), "index", "i", 0, "index of the tree to show")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.store.key == "" {
		return fmt.Errorf("required key flag was not set")
	}
	if tcc.index < 0 {
		return fmt.Errorf("index flag cannot be negative")
	}
	return tcc.store.Validate()
}
