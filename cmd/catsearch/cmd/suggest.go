package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	var entity string
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show typeahead suggestions for a query",
		Long: `Return the top fuzzy matches on name fields, as the typeahead does.

Examples:
  catsearch suggest "run" --entity products
  catsearch suggest "ja" --entity events --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, engines, err := openEngines()
			if err != nil {
				return err
			}
			defer st.Close()

			engine, ok := engines[entity]
			if !ok {
				return fmt.Errorf("unknown entity %q (use products or events)", entity)
			}

			items, err := engine.Suggest(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			for _, rec := range items {
				fmt.Printf("%s\t/%s\n", rec.Title, rec.Slug)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&entity, "entity", "e", "products", "Catalog: products, events")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum suggestions")
	return cmd
}
