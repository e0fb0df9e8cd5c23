package main

import (
	"fmt"
	"os"

	"github.com/pbanos/symptree/store"
	"github.com/pbanos/symptree/store/backend"
	"github.com/spf13/cobra"
)

type listCmdConfig struct {
	*rootCmdConfig
	store storeConfig
}

func listCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &listCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored models",
		Long:  `List the keys of the models in a store`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.store.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			var keys []string
			err = backend.With(cmd.Context(), config.store.location, config.store.options(), func(s store.Store) error {
				var err error
				keys, err = s.Keys(cmd.Context())
				return err
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "listing models in %s: %v\n", config.store.location, err)
				os.Exit(2)
			}
			config.Logf("%d models in %s", len(keys), config.store.location)
			for _, k := range keys {
				fmt.Println(k)
			}
		},
	}
	config.store.addFlags(cmd, "")
	return cmd
}
