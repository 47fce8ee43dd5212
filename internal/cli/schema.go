/*
PURPOSE:
  Defines the 'schema' subcommand.
  Helps debug connectivity and inspect the contract's callable methods.

REQUIREMENTS:
  User-specified:
  - Fetch and print the contract schema.

  Implementation-discovered:
  - Useful validation step before a full benchmark run.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Client.Schema()

ERROR HANDLING:
  - Prints error if the endpoint or contract address is wrong.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  genbench schema --contract 0xbc88...5717

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmelnick/genbench/internal/config"
	"github.com/kmelnick/genbench/internal/engine"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Fetch and print the contract schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if rpcURLOverride != "" {
			cfg.RPCURL = rpcURLOverride
		}
		if contractOverride != "" {
			cfg.ContractAddress = contractOverride
		}
		if cfg.ContractAddress == "" {
			return fmt.Errorf("contract_address is required")
		}

		client, err := engine.NewClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		schema, err := client.Schema(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(string(schema))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&rpcURLOverride, "rpc-url", "", "GenLayer RPC endpoint (overrides config)")
	schemaCmd.Flags().StringVar(&contractOverride, "contract", "", "Contract address (overrides config)")
}
