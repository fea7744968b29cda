package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goyal-store/internal/catalog"
)

var (
	catalogQuery      string
	catalogCategories []string
	catalogStyles     []string
	catalogSort       string
	catalogJSON       bool
)

// catalogCmd queries the persisted catalog from the command line
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Search and sort the product catalog",
	Long: `Lists products from the configured storage, filtered and sorted the
same way as GET /api/products.

Examples:
  goyal-store catalog --category Kids --sort price-asc
  goyal-store catalog -q saree --json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogQuery, "query", "q", "", "Case-insensitive name search")
	catalogCmd.Flags().StringSliceVar(&catalogCategories, "category", nil, "Men, Women or Kids (repeatable)")
	catalogCmd.Flags().StringSliceVar(&catalogStyles, "style", nil, "Modern or Traditional (repeatable)")
	catalogCmd.Flags().StringVar(&catalogSort, "sort", "default", "default, rating, price-asc or price-desc")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print JSON instead of a table")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	store, backend, _, err := openStore(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	criteria := catalog.Criteria{Text: catalogQuery}
	for _, c := range catalogCategories {
		criteria.Categories = append(criteria.Categories, catalog.Category(c))
	}
	for _, s := range catalogStyles {
		criteria.Styles = append(criteria.Styles, catalog.Style(s))
	}
	products := catalog.Sort(catalog.Filter(store.Products(), criteria), catalog.ParseSortMode(catalogSort))

	out := cmd.OutOrStdout()
	if catalogJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSTYLE\tPRICE\tSTOCK\tRATING")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.1f\n",
			p.ID, p.Name, p.Category, p.Style, p.Price, p.Stock, p.AverageRating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(os.Stderr, "no products match")
	}
	return nil
}
