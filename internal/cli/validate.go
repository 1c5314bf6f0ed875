package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"shipfee/internal/services/shipping"

	"github.com/spf13/cobra"
)

type policySummary struct {
	Version     string   `json:"version"`
	Currency    string   `json:"currency"`
	Origin      string   `json:"origin"`
	Methods     []string `json:"methods"`
	Cities      int      `json:"cities"`
	PostalCodes int      `json:"postal_codes"`
}

func summarize(table *shipping.Table) policySummary {
	return policySummary{
		Version:     table.Version(),
		Currency:    table.Currency(),
		Origin:      table.Origin().Name,
		Methods:     table.MethodNames(),
		Cities:      table.CityCount(),
		PostalCodes: table.PostalCodeCount(),
	}
}

func newValidateCmd() *cobra.Command {
	var (
		file     string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a policy file",
		Long:  "Load a shipping policy file and run the same checks the service applies on startup and reload.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), file)
			if err != nil {
				return err
			}

			summary := summarize(table)
			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "policy OK\n")
			fmt.Fprintf(out, "  version:      %s\n", summary.Version)
			fmt.Fprintf(out, "  origin:       %s\n", summary.Origin)
			fmt.Fprintf(out, "  currency:     %s\n", summary.Currency)
			fmt.Fprintf(out, "  methods:      %s\n", strings.Join(summary.Methods, ", "))
			fmt.Fprintf(out, "  cities:       %d\n", summary.Cities)
			fmt.Fprintf(out, "  postal codes: %d\n", summary.PostalCodes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "policy YAML file")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "output as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
