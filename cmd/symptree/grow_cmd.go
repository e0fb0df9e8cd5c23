package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/feature/yaml"
	"github.com/pbanos/symptree/model"
	"github.com/pbanos/symptree/store"
	"github.com/pbanos/symptree/store/backend"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	metadataInput string
	store         storeConfig
	synthesis     synthesisConfig
	training      trainingConfig
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a forest from synthesized symptom data",
		Long:  `Grow a random forest from examples synthesized out of the symptom patterns in a metadata file, test it on a held out part of them and store it.`,
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
			config.training.resolve(cmd, md.Training)
			err = config.training.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Synthesizing %d examples for %d labels over %d symptoms...", config.synthesis.samples, md.Schema.LabelCount(), md.Schema.SymptomCount())
			set, err := config.synthesis.synthesize(md)
			if err != nil {
				fmt.Fprintf(os.Stderr, "synthesizing examples: %v\n", err)
				os.Exit(4)
			}
			trainingSet, testSet, err := set.Split(config.synthesis.testFraction, config.synthesis.seed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "splitting examples: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Growing %d trees from %v ...", config.training.TreeCount, trainingSet)
			e, err := symptree.Train(cmd.Context(), trainingSet, config.training.Config)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the forest: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
			if testSet.Count() > 0 {
				report, err := symptree.Evaluate(e, testSet)
				if err != nil {
					fmt.Fprintf(os.Stderr, "testing the forest: %v\n", err)
					os.Exit(7)
				}
				printReport(os.Stderr, report)
			}
			if config.store.key == "" {
				config.store.key = uuid.NewString()
			}
			config.Logf("Storing model as %s in %s ...", config.store.key, config.store.location)
			err = backend.With(cmd.Context(), config.store.location, config.store.options(), func(s store.Store) error {
				return model.Put(cmd.Context(), s, config.store.key, e)
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "storing the forest: %v\n", err)
				os.Exit(8)
			}
			fmt.Println(config.store.key)
		},
	}
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the symptoms, labels and symptom patterns to synthesize examples from (required)")
	config.store.addFlags(cmd, "key to store the model under (defaults to a random UUID)")
	config.synthesis.addFlags(cmd, true)
	config.training.addFlags(cmd)
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.store.key != "" {
		if err := store.ValidateKey(gcc.store.key); err != nil {
			return err
		}
	}
	return gcc.store.Validate()
}
