package main

import (
	"fmt"

	"github.com/pbanos/symptree/model"
	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in symptree's version
	VersionMajor = 0
	// VersionMinor is the minor number in symptree's version
	VersionMinor = 1
	// VersionPatch is the patch number in symptree's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of symptree",
		Long:  `All software has versions. This is symptree's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("symptree v%d.%d.%d (model format %d)\n", VersionMajor, VersionMinor, VersionPatch, model.FormatVersion)
		},
	}
}
