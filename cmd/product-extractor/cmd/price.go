package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/product-extractor/pkg/extract"
)

type priceResult struct {
	Raw        string   `json:"raw"`
	Host       string   `json:"host,omitempty"`
	Convention string   `json:"convention"`
	Generic    *float64 `json:"generic,omitempty"`
	Retailer   *float64 `json:"retailer,omitempty"`
}

func priceCmd() *cobra.Command {
	var host string

	c := &cobra.Command{
		Use:   "price <text>",
		Short: "Normalize a raw price string",
		Long: "Runs the price normalizer against a raw price string and prints the\n" +
			"generic and retailer-aware results.",
		Example: `  product-extractor price "1.234,56 €"
  product-extractor price --host www.amazon.de "1.299"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := normalizePrice(args[0], host)

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}

			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Raw:\t%q\n", res.Raw)
			if res.Host != "" {
				tw.writef("Host:\t%s\n", res.Host)
			}
			tw.writef("Convention:\t%s\n", res.Convention)
			tw.writef("Generic:\t%s\n", formatPrice(res.Generic))
			tw.writef("Retailer:\t%s\n", formatPrice(res.Retailer))
			if err := tw.finish(); err != nil {
				return err
			}

			if res.Generic == nil && res.Retailer == nil {
				return fmt.Errorf("no price in %q", res.Raw)
			}
			return nil
		},
	}

	c.Flags().StringVar(&host, "host", "", "storefront hostname used to pick the number format")

	return c
}

func normalizePrice(raw, host string) priceResult {
	res := priceResult{
		Raw:        raw,
		Host:       host,
		Convention: extract.PriceConvention(raw, host).String(),
	}
	if v, ok := extract.NormalizePrice(raw); ok {
		res.Generic = &v
	}
	if v, ok := extract.NormalizeRetailerPrice(raw, host); ok {
		res.Retailer = &v
	}
	return res
}
