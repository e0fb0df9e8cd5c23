package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type importanceCmdConfig struct {
	*rootCmdConfig
	store storeConfig
	top   int
}

func importanceCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importanceCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Rank symptoms by their importance on a forest",
		Long:  `Rank the symptoms of a stored forest by the impurity decrease of the splits on them`,
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
			config.Logf("Computing symptom importance over %d trees...", len(e.Trees))
			printImportances(os.Stdout, e.FeatureImportance(), config.top)
		},
	}
	config.store.addFlags(cmd, "key of the model to inspect (required)")
	cmd.Flags().IntVarP(&(config.top), "top", "n", 0, "number of symptoms to list (defaults to 0: all)")
	return cmd
}

func (icc *importanceCmdConfig) Validate() error {
	if icc.store.key == "" {
		return fmt.Errorf("required key flag was not set")
	}
	if icc.top < 0 {
		return fmt.Errorf("top flag cannot be negative")
	}
	return icc.store.Validate()
}
