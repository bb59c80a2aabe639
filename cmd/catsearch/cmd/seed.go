package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripline/catsearch/internal/store"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the catalog schema and insert demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.InitSchema(cmd.Context()); err != nil {
				return err
			}
			if err := st.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("seeded catalog database at %s\n", cfg.Database.Path)
			return nil
		},
	}
}
