package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mq "github.com/yeisme/vestvault/pkg/internal/storage/mq"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
	"github.com/yeisme/vestvault/pkg/internal/storage/store"
)

var (
	storeCmd = &cobra.Command{
		Use:   "store",
		Short: "Storage backend related commands",
	}

	storeListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered config store types",
		Aliases: []string{"list", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered store types:")
			for _, t := range store.GetRegisteredStoreTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t))
			}
		},
	}

	secretListCmd = &cobra.Command{
		Use:     "secrets",
		Short:   "list all registered secret providers",
		Aliases: []string{"secret"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered secret providers:")
			for _, p := range secret.GetRegisteredProviders() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(p))
			}
		},
	}

	mqListCmd = &cobra.Command{
		Use:     "mq",
		Short:   "list all registered mq types",
		Aliases: []string{"messagequeue"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")
			for _, t := range mq.GetRegisteredMQTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t))
			}
		},
	}
)

// registerStoreCommands 注册存储相关命令.
func registerStoreCommands() {
	rootCmd.AddCommand(storeCmd)

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(secretListCmd)
	storeCmd.AddCommand(mqListCmd)
}
