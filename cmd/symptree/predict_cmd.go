package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/feature"
	"github.com/pbanos/symptree/feature/yaml"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	metadataInput string
	store         storeConfig
	absent        []string
	top           int
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict [SYMPTOM]...",
		Short: "Rank diagnoses for a set of observed symptoms",
		Long:  `Use a stored forest to rank the diagnoses for the symptoms given as arguments. Symptoms not given are taken as absent.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			var schema *feature.Schema
			if config.metadataInput != "" {
				md, err := yaml.ReadMetadataFromFile(config.metadataInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				schema = md.Schema
			}
			config.Logf("Loading model %s from %s ...", config.store.key, config.store.location)
			e, err := config.store.loadEnsemble(cmd.Context(), schema)
			if err != nil {
				fmt.Fprintf(os.Stderr, "loading model %s: %v\n", config.store.key, err)
				os.Exit(3)
			}
			query, err := config.query(args)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			result, err := e.Predict(query)
			if err != nil {
				var sme *symptree.SchemaMismatchError
				if errors.As(err, &sme) {
					fmt.Fprintf(os.Stderr, "%v (known symptoms are %s)\n", err, strings.Join(e.Schema.Symptoms(), ", "))
				} else {
					fmt.Fprintln(os.Stderr, err)
				}
				os.Exit(5)
			}
			printDiagnoses(os.Stdout, result, config.top)
		},
	}
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the symptoms and labels the model is expected to use (optional)")
	config.store.addFlags(cmd, "key of the model to use (required)")
	cmd.Flags().StringSliceVarP(&(config.absent), "absent", "a", nil, "symptoms known to be absent")
	cmd.Flags().IntVarP(&(config.top), "top", "n", symptree.DefaultTopK, "number of diagnoses to list")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.store.key == "" {
		return fmt.Errorf("required key flag was not set")
	}
	if pcc.top < 1 {
		return fmt.Errorf("top flag must be at least 1")
	}
	return pcc.store.Validate()
}

func (pcc *predictCmdConfig) query(present []string) (map[string]bool, error) {
	query := make(map[string]bool, len(present)+len(pcc.absent))
	for _, s := range present {
		query[strings.TrimSpace(s)] = true
	}
	for _, s := range pcc.absent {
		s = strings.TrimSpace(s)
		if query[s] {
			return nil, fmt.Errorf("symptom %q given as both present and absent", s)
		}
		query[s] = false
	}
	return query, nil
}
