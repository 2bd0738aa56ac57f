package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/vestvault/pkg/configs"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", configs.AppName, configs.AppVersion)
	},
}

// registerVersionCommands 注册版本命令.
func registerVersionCommands() {
	rootCmd.AddCommand(versionCmd)
}
