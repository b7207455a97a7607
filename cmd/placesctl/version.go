package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия утилиты",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("placesctl %s (commit=%s)\n", version, commitSHA)
		},
	}
}
