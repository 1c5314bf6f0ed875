// Package cli implements the shipfee operator command: checking a policy
// file before it is deployed and quoting from the shell.
package cli

import (
	"context"

	"shipfee/internal/repositories"
	"shipfee/internal/services/shipping"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shipfee",
		Short:         "Shipping fee policy tooling",
		Long:          "shipfee validates shipping policy files and computes fee quotes against them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newQuoteCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// loadTable reads the policy file at path, or the built-in policy when path
// is empty.
func loadTable(ctx context.Context, path string) (*shipping.Table, error) {
	var loader shipping.PolicyLoader = repositories.NewBuiltinPolicyLoader()
	if path != "" {
		loader = repositories.NewFilePolicyLoader(path)
	}
	return shipping.LoadTable(ctx, loader)
}
