// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// configPath 配置文件或其所在目录，所有子命令共用.
	configPath string
	// debug 控制子命令的额外诊断输出.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "vestvault",
		Short: "Scheduled vesting transfers for custodied crypto assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable extra diagnostic output")

	registerServeCommands()
	registerConfigsCommands()
	registerStoreCommands()
	registerScheduleCommands()
	registerVersionCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
