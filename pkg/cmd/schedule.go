package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/executor"
	"github.com/yeisme/vestvault/pkg/internal/model"
	"github.com/yeisme/vestvault/pkg/internal/vesting"
	"github.com/yeisme/vestvault/pkg/rule"
)

var (
	previewVault       string
	previewAsset       string
	previewChain       string
	previewKind        string
	previewAmount      string
	previewDestination string
	previewVestingTime string
	previewCliffDays   int

	scheduleCmd = &cobra.Command{
		Use:   "schedule",
		Short: "Schedule inspection commands",
	}

	// 不连接任何外部服务，只做本地解析与时间推算.
	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "resolve a vesting config and print its first run and transaction body",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			cfg := model.VestingConfig{
				VaultID:     previewVault,
				Asset:       previewAsset,
				Ecosystem:   model.EcosystemEVM,
				Kind:        model.AssetKind(previewKind),
				Chain:       previewChain,
				Amount:      previewAmount,
				CliffDays:   previewCliffDays,
				VestingTime: previewVestingTime,
				Destination: previewDestination,
			}

			if err := rule.ValidateStruct(&cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			plan, err := executor.Resolve(cfg)
			if err != nil {
				return err
			}

			loc := configs.GetConfig().Scheduler.GetLocation()

			firstRun, err := vesting.ComputeFirstRun(time.Now(), cfg.CliffDays, cfg.VestingTime, loc)
			if err != nil {
				return err
			}

			body, err := executor.BuildTransaction(plan)
			if err != nil {
				return err
			}

			out := struct {
				Identity    string          `json:"identity"`
				Chain       string          `json:"chain"`
				FirstRun    time.Time       `json:"first_run"`
				RawValue    string          `json:"raw_value"`
				Transaction json.RawMessage `json:"transaction"`
			}{
				Identity:    cfg.Identity(),
				Chain:       plan.Chain,
				FirstRun:    firstRun,
				RawValue:    executor.RawValue(plan.Amount, plan.Decimals),
				Transaction: body,
			}

			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}
)

// registerScheduleCommands 注册调度检查命令.
func registerScheduleCommands() {
	previewCmd.Flags().StringVar(&previewVault, "vault", "", "vault identifier")
	previewCmd.Flags().StringVar(&previewAsset, "asset", "", "asset symbol")
	previewCmd.Flags().StringVar(&previewChain, "chain", "", "chain name, e.g. ethereum")
	previewCmd.Flags().StringVar(&previewKind, "kind", "native", "asset kind: native or token")
	previewCmd.Flags().StringVar(&previewAmount, "amount", "0", "amount per interval")
	previewCmd.Flags().StringVar(&previewDestination, "destination", "", "destination address")
	previewCmd.Flags().StringVar(&previewVestingTime, "vesting-time", "", "daily time override, HH:MM")
	previewCmd.Flags().IntVar(&previewCliffDays, "cliff-days", 0, "days to wait before the first transfer")

	_ = previewCmd.MarkFlagRequired("vault")
	_ = previewCmd.MarkFlagRequired("asset")
	_ = previewCmd.MarkFlagRequired("chain")
	_ = previewCmd.MarkFlagRequired("destination")

	scheduleCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scheduleCmd)
}
