package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

var productJSON bool

var productCmd = &cobra.Command{
	Use:   "product <url|id>",
	Short: "Show product information and search keywords",
	Long: `Fetches the product card, prices and photos from the catalog and prints
the keywords that a rank search would use.

Accepts a product link (https://www.wildberries.ru/catalog/{id}/detail.aspx)
or a bare numeric id.`,
	Args: cobra.ExactArgs(1),
	RunE: runProduct,
}

func init() {
	productCmd.Flags().BoolVar(&productJSON, "json", false, "output product info as JSON")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	if productService == nil {
		return errors.New("product service not configured")
	}

	info, err := productService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	if productJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal product: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printProduct(cmd, info)
	return nil
}

func printProduct(cmd *cobra.Command, info *domain.ProductInfo) {
	cmd.Printf("📦 Product: %s\n", info.Card.Title)
	cmd.Printf("🔢 Article: %d\n", info.Card.ID)
	if info.Card.Brand != "" {
		cmd.Printf("🏷  Brand: %s\n", info.Card.Brand)
	}
	cmd.Printf("📝 Composition: %s\n", info.Composition)
	cmd.Printf("🌍 Country: %s\n", info.Country)
	cmd.Printf("💰 Old price: %s\n", formatPrice(info.Prices.Old))
	cmd.Printf("💰 New price: %s\n", formatPrice(info.Prices.New))

	if len(info.Photos) > 0 {
		cmd.Printf("🖼  Photos: %d (first: %s)\n", len(info.Photos), info.Photos[0])
	}

	if len(info.Keywords) == 0 {
		cmd.Println("🔑 Keywords: none")
		return
	}
	cmd.Printf("🔑 Keywords: %s\n", strings.Join(info.Keywords, ", "))
}

func formatPrice(p *float64) string {
	if p == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2f ₽", *p)
}
