package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/paperloam"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of paperloam",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paperloam version %s\n", strings.TrimSpace(paperloam.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
