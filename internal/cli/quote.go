package cli

import (
	"encoding/json"

	"shipfee/internal/models"

	"github.com/spf13/cobra"
)

func newQuoteCmd() *cobra.Command {
	var (
		file       string
		city       string
		postalCode string
		method     string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a fee quote",
		Long:  "Compute the fee quote for one destination and method. Uses the built-in policy unless --file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), file)
			if err != nil {
				return err
			}

			quote, err := table.ComputeShippingFee(models.Destination{City: city, PostalCode: postalCode}, method)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quote)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "policy YAML file (default: built-in policy)")
	cmd.Flags().StringVar(&city, "city", "", "destination city")
	cmd.Flags().StringVar(&postalCode, "postal-code", "", "destination postal code")
	cmd.Flags().StringVarP(&method, "method", "m", "", "shipping method")
	return cmd
}
