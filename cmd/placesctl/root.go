package main

import (
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commitSHA = "none"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "placesctl",
		Short: "Утилиты администрирования мест экзаменов",
	}

	root.PersistentFlags().String("config", "config.toml", "путь к файлу конфигурации")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newImportCmd())

	return root
}
