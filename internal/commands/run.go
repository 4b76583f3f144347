package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/recon/internal/compare"
	"github.com/cleared-dev/recon/internal/config"
	"github.com/cleared-dev/recon/internal/importer"
	"github.com/cleared-dev/recon/internal/model"
	"github.com/cleared-dev/recon/internal/report"
)

// appColumns is the projection applied to the app export before it is
// partitioned by account.
var appColumns = []string{model.ColumnDate, model.ColumnAccount, model.ColumnAmount, model.ColumnNote}

func newRunCommand() *cobra.Command {
	var configPath string
	var baseDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile every configured bank source against the app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if baseDir != "" {
				cfg.BaseDir = baseDir
			}
			return Reconcile(cfg, importer.DefaultRegistry(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.FileName, "configuration file")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "directory holding the exports (overrides base_dir)")

	return cmd
}

// loadConfig reads path. A missing default config falls back to the
// built-in defaults rooted at the working directory; a missing explicit
// config is an error.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Info("no config file, using defaults", "path", path)
		return config.Default("."), nil
	}
	return nil, err
}

// pairing is one bank table matched against one app table.
type pairing struct {
	name     string
	bankName string
	appName  string
	bank     model.Table
	app      model.Table
}

// Reconcile loads every source named by cfg, runs each reconciliation and
// renders the results to w. Nothing is printed unless every source loads
// and every comparison succeeds.
func Reconcile(cfg *config.Config, registry *importer.Registry, w io.Writer) error {
	known := func(dialect string) bool { return registry.Get(dialect) != nil }
	if err := cfg.Validate(known); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	loaded := make(map[string]model.Table)
	load := func(name string, columns []string) (model.Table, error) {
		key := fmt.Sprint(name, columns)
		if tbl, ok := loaded[key]; ok {
			return tbl, nil
		}
		src, _ := cfg.Source(name)
		tbl, err := loadSource(cfg.Path(src), registry.Get(src.Dialect), name, columns)
		if err != nil {
			return model.Table{}, err
		}
		loaded[key] = tbl
		return tbl, nil
	}

	var pairs []pairing
	for _, rc := range cfg.Reconciliations {
		app, err := load(rc.App, appColumns)
		if err != nil {
			return err
		}
		account, err := partition(app, rc.Account)
		if err != nil {
			return fmt.Errorf("%s: %w", rc.Name, err)
		}

		bank, err := load(rc.Bank, model.CanonicalColumns)
		if err != nil {
			return err
		}

		pairs = append(pairs, pairing{
			name:     rc.Name,
			bankName: rc.Bank,
			appName:  fmt.Sprintf("%s/%s", rc.App, rc.Account),
			bank:     bank,
			app:      account,
		})
	}

	return compareAndRender(w, report.Renderer{Currency: cfg.Currency}, cfg.Similarity, pairs)
}

func loadSource(path string, p importer.Parser, name string, columns []string) (model.Table, error) {
	tbl, err := importer.Load(path, p, columns)
	if err != nil {
		return model.Table{}, fmt.Errorf("source %s: %w", name, err)
	}
	tbl.Source = name
	slog.Debug("loaded source", "source", name, "dialect", p.Format(), "path", path, "rows", tbl.Len())
	return tbl, nil
}

// partition selects the app rows booked on account, reduced to the
// canonical columns.
func partition(app model.Table, account string) (model.Table, error) {
	sub, err := app.Where(model.ColumnAccount, account)
	if err != nil {
		return model.Table{}, err
	}
	if sub.Len() == 0 {
		slog.Warn("no app rows for account", "source", app.Source, "account", account)
	}
	slog.Debug("partitioned app export", "account", account, "rows", sub.Len())
	return sub.Project(model.CanonicalColumns)
}

func compareAndRender(w io.Writer, renderer report.Renderer, similarity float64, pairs []pairing) error {
	reports := make([]report.Report, 0, len(pairs))
	for _, p := range pairs {
		res, err := compare.SearchMismatches(compare.Sources{Bank: p.bank, App: p.app})
		if err != nil {
			return fmt.Errorf("%s: comparing: %w", p.name, err)
		}

		var suggestions []compare.Suggestion
		if similarity > 0 {
			suggestions = compare.Suggest(res.Bank, res.App, similarity)
		}

		slog.Info("reconciled", "name", p.name,
			"bank_rows", p.bank.Len(), "app_rows", p.app.Len(),
			"mismatches", len(res.Mismatches), "suggestions", len(suggestions))

		reports = append(reports, report.Report{
			Name:        p.name,
			Bank:        p.bankName,
			App:         p.appName,
			Result:      res,
			Suggestions: suggestions,
		})
	}

	for _, rep := range reports {
		if err := renderer.Render(w, rep); err != nil {
			return err
		}
	}
	return nil
}
