package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"goyal-store/internal/catalog"
)

var (
	describeName     string
	describeCategory string
	describeStyle    string
)

// adviseCmd asks the AI stylist for recommendations
var adviseCmd = &cobra.Command{
	Use:   "advise [prompt]",
	Short: "Ask the AI stylist for outfit advice",
	Long: `Sends the prompt and the current catalog to the stylist and prints the
advice with the recommended products.

Example:
  goyal-store advise "something elegant for a winter wedding"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdvise,
}

// describeCmd drafts product copy
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Draft a product description with the AI stylist",
	Args:  cobra.NoArgs,
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVar(&describeName, "name", "", "Product name (required)")
	describeCmd.Flags().StringVar(&describeCategory, "category", string(catalog.CategoryWomen), "Men, Women or Kids")
	describeCmd.Flags().StringVar(&describeStyle, "style", string(catalog.StyleTraditional), "Modern or Traditional")
	describeCmd.MarkFlagRequired("name")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, backend, _, err := openStore(ctx, appConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	products := store.Products()
	rec := newAdvisor(ctx, appConfig).StyleRecommendation(ctx, strings.Join(args, " "), products)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rec.Advice)
	for _, id := range rec.RecommendedIDs {
		if i := catalog.Find(products, id); i >= 0 {
			p := products[i]
			fmt.Fprintf(out, "  - [%s] %s (%s, %s) Rs. %d\n", p.ID, p.Name, p.Category, p.Style, p.Price)
		}
	}
	return nil
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	category, style := catalog.Category(describeCategory), catalog.Style(describeStyle)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", describeCategory)
	}
	if !style.Valid() {
		return fmt.Errorf("unknown style %q", describeStyle)
	}

	desc := newAdvisor(ctx, appConfig).GenerateDescription(ctx, describeName, category, style)
	fmt.Fprintln(cmd.OutOrStdout(), desc)
	return nil
}
