package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/budget-engine/budget"
	"github.com/warp/budget-engine/config"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Upsert allocations from a .yaml, .yml or .json file",
	Long: `Upsert allocations from a file. The whole file is applied atomically.

  allocations:
    - month: "202407"
      amount: "3100"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if useSample {
			return fmt.Errorf("import writes to the database; drop --sample")
		}
		logger := config.NewLogger(cfg, os.Stderr)

		allocations, err := budget.LoadAllocationsFile(args[0])
		if err != nil {
			return err
		}

		svc, closeStore, err := openService(logger)
		if err != nil {
			return err
		}
		defer closeStore()

		n, err := svc.Import(cmd.Context(), allocations)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d allocations\n", n)
		return nil
	},
}
