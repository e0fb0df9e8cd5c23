package main

import (
	"fmt"
	"os"

	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/feature/yaml"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	metadataInput string
	store         storeConfig
	synthesis     synthesisConfig
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a forest",
		Long:  `Test the performance of a stored forest against examples freshly synthesized from the symptom patterns in a metadata file`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			md, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.synthesis.resolve(cmd, md.Synthesis)
			config.Logf("Loading model %s from %s ...", config.store.key, config.store.location)
			e, err := config.store.loadEnsemble(cmd.Context(), md.Schema)
			if err != nil {
				fmt.Fprintf(os.Stderr, "loading model %s: %v\n", config.store.key, err)
				os.Exit(3)
			}
			config.Logf("Synthesizing %d test examples with seed %d ...", config.synthesis.samples, config.synthesis.seed)
			testSet, err := config.synthesis.synthesize(md)
			if err != nil {
				fmt.Fprintf(os.Stderr, "synthesizing examples: %v\n", err)
				os.Exit(4)
			}
			report, err := symptree.Evaluate(e, testSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing the forest: %v\n", err)
				os.Exit(5)
			}
			printReport(os.Stdout, report)
		},
	}
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the symptoms, labels and symptom patterns to synthesize test examples from (required)")
	config.store.addFlags(cmd, "key of the model to test (required)")
	config.synthesis.addFlags(cmd, false)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.store.key == "" {
		return fmt.Errorf("required key flag was not set")
	}
	return tcc.store.Validate()
}
