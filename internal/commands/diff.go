package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/recon/internal/importer"
	"github.com/cleared-dev/recon/internal/model"
	"github.com/cleared-dev/recon/internal/report"
)

type diffOptions struct {
	bankDialect string
	appDialect  string
	account     string
	currency    string
	similarity  float64
}

func newDiffCommand() *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff <bank-file> <app-file>",
		Short: "Compare two exports without a config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.OutOrStdout(), importer.DefaultRegistry(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.bankDialect, "bank-dialect", "ing", "dialect of the bank export")
	cmd.Flags().StringVar(&opts.appDialect, "app-dialect", "app", "dialect of the app export")
	cmd.Flags().StringVar(&opts.account, "account", "", "only compare app rows booked on this account")
	cmd.Flags().StringVar(&opts.currency, "currency", "EUR", "currency used to display amounts")
	cmd.Flags().Float64Var(&opts.similarity, "similarity", 0.6, "minimum note similarity for typo suggestions (0 disables)")

	return cmd
}

func runDiff(w io.Writer, registry *importer.Registry, bankPath, appPath string, opts diffOptions) error {
	bankParser := registry.Get(opts.bankDialect)
	if bankParser == nil {
		return fmt.Errorf("unknown bank dialect %q (known: %v)", opts.bankDialect, registry.Formats())
	}
	appParser := registry.Get(opts.appDialect)
	if appParser == nil {
		return fmt.Errorf("unknown app dialect %q (known: %v)", opts.appDialect, registry.Formats())
	}

	bank, err := loadSource(bankPath, bankParser, "bank", model.CanonicalColumns)
	if err != nil {
		return err
	}

	p := pairing{name: "diff", bankName: "bank", appName: "app", bank: bank}
	if opts.account != "" {
		app, err := loadSource(appPath, appParser, "app", appColumns)
		if err != nil {
			return err
		}
		if p.app, err = partition(app, opts.account); err != nil {
			return err
		}
		p.appName = "app/" + opts.account
	} else {
		if p.app, err = loadSource(appPath, appParser, "app", model.CanonicalColumns); err != nil {
			return err
		}
	}

	return compareAndRender(w, report.Renderer{Currency: opts.currency}, opts.similarity, []pairing{p})
}
