package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripline/catsearch/internal/catalog"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	entity    string
	category  string
	brand     string
	minPrice  float64
	maxPrice  float64
	minRating float64
	city      string
	featured  bool
	dateFrom  string
	dateTo    string
	sortKey   string
	limit     int
	offset    int
	format    string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a one-shot catalog search",
		Long: `Search a catalog directly against the database.

Examples:
  catsearch search "red shoe" --entity products
  catsearch search --entity products --category footwear --sort price_asc
  catsearch search "jazz" --entity events --city lisbon --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) > 0 {
				text = args[0]
			}
			return runSearch(cmd, text, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.entity, "entity", "e", "products", "Catalog to search: products, events")
	f.StringVar(&opts.category, "category", "", "Filter by category slug")
	f.StringVar(&opts.brand, "brand", "", "Filter by brand/organizer slug")
	f.Float64Var(&opts.minPrice, "min-price", -1, "Minimum price (inclusive)")
	f.Float64Var(&opts.maxPrice, "max-price", -1, "Maximum price (inclusive)")
	f.Float64Var(&opts.minRating, "min-rating", -1, "Minimum rating (inclusive)")
	f.StringVar(&opts.city, "city", "", "Filter by city (events)")
	f.BoolVar(&opts.featured, "featured", false, "Only featured entries")
	f.StringVar(&opts.dateFrom, "date-from", "", "Earliest session date (YYYY-MM-DD)")
	f.StringVar(&opts.dateTo, "date-to", "", "Latest session date (YYYY-MM-DD)")
	f.StringVar(&opts.sortKey, "sort", "", "Sort: relevance, newest, price_asc, price_desc, rating, date")
	f.IntVarP(&opts.limit, "limit", "n", 0, "Page size")
	f.IntVar(&opts.offset, "offset", 0, "Page offset")
	f.StringVar(&opts.format, "format", "text", "Output format: text, json")
	return cmd
}

func runSearch(cmd *cobra.Command, text string, opts searchOptions) error {
	st, engines, err := openEngines()
	if err != nil {
		return err
	}
	defer st.Close()

	engine, ok := engines[opts.entity]
	if !ok {
		return fmt.Errorf("unknown entity %q (use products or events)", opts.entity)
	}

	query := catalog.Query{
		Text:         text,
		CategorySlug: opts.category,
		BrandSlug:    opts.brand,
		City:         opts.city,
		Sort:         catalog.SortKey(opts.sortKey),
		Limit:        opts.limit,
		Offset:       opts.offset,
	}
	if opts.minPrice >= 0 {
		query.MinPrice = &opts.minPrice
	}
	if opts.maxPrice >= 0 {
		query.MaxPrice = &opts.maxPrice
	}
	if opts.minRating >= 0 {
		query.MinRating = &opts.minRating
	}
	if cmd.Flags().Changed("featured") {
		query.Featured = &opts.featured
	}
	if opts.dateFrom != "" {
		t, err := time.Parse("2006-01-02", opts.dateFrom)
		if err != nil {
			return fmt.Errorf("invalid --date-from: %w", err)
		}
		query.DateFrom = &t
	}
	if opts.dateTo != "" {
		t, err := time.Parse("2006-01-02", opts.dateTo)
		if err != nil {
			return fmt.Errorf("invalid --date-to: %w", err)
		}
		query.DateTo = &t
	}

	page, err := engine.Search(cmd.Context(), query)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	fmt.Printf("%d result(s), showing %d\n", page.Total, len(page.Items))
	for i, rec := range page.Items {
		line := fmt.Sprintf("%2d. %s", i+1, rec.Title)
		var extra []string
		if rec.CategoryName != "" {
			extra = append(extra, rec.CategoryName)
		}
		if rec.City != "" {
			extra = append(extra, rec.City)
		}
		extra = append(extra, fmt.Sprintf("%.2f", rec.Price))
		if rec.Rating > 0 {
			extra = append(extra, fmt.Sprintf("★%.1f", rec.Rating))
		}
		fmt.Printf("%s  (%s)\n", line, strings.Join(extra, ", "))
	}
	return nil
}
