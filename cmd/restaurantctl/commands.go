package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"restaurantcore/internal/blob"
	"restaurantcore/internal/core"
	"restaurantcore/internal/export"
	"restaurantcore/pkg/domain"
)

const dateLayout = "2006-01-02"

func newSeedCmd(a func() *app) *cobra.Command {
	var (
		value int64
		user  string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the store contents with the sample dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := a()
			if !cmd.Flags().Changed("seed") {
				value = app.cfg.Seed.Value
			}
			if user == "" {
				user = app.cfg.Seed.ActiveUser
			}
			ctx := cmd.Context()
			if _, err := app.svc.SeedStore(ctx, value); err != nil {
				return err
			}
			if user != "" {
				active := &domain.User{ID: cuid.New(), Name: user, Email: user, Role: "manager"}
				if _, err := app.svc.SetActiveUser(ctx, active); err != nil {
					return err
				}
			}
			return app.svc.View(ctx, func(view core.TransactionView) error {
				current, _ := view.ActiveUser()
				fmt.Fprintf(app.stdout, "seeded %d menu items, %d inventory items, %d tables, %d recipes, %d reservations (seed %d, user %s)\n",
					view.MenuItems().Len(), view.Inventory().Len(), view.Tables().Len(), view.Recipes().Len(),
					view.Reservations().Len(), value, current.Email)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&value, "seed", 0, "faker seed (default from config)")
	cmd.Flags().StringVar(&user, "user", "", "email of the active user to sign in after seeding")
	return cmd
}

func newStockCmd(a func() *app) *cobra.Command {
	var (
		reorderOnly bool
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Print stock levels and the reorder list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := a()
			report, err := app.svc.StockReport(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.stdout, report)
			}
			lines := report.Items
			if reorderOnly {
				lines = report.Reorder
			}
			tw := tabwriter.NewWriter(app.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ITEM\tLEVEL\tSTOCK\tMIN\tVALUE\tREORDER")
			for _, s := range lines {
				fmt.Fprintf(tw, "%s\t%s\t%.2f %s\t%.2f\t%.2f\t%t\n",
					s.Item.Name, s.Level, s.Item.CurrentStock, s.Item.Unit, s.Item.MinStock, s.Value, s.NeedsReorder)
			}
			fmt.Fprintf(tw, "TOTAL\t\t\t\t%.2f\t\n", report.TotalValue)
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&reorderOnly, "reorder", false, "only list items at or below minimum stock")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newTablesCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the derived status of every table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := a()
			states, err := app.svc.TableStatuses(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(app.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tSECTION\tCAPACITY\tSTATUS")
			for _, s := range states {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.Table.Number, s.Table.Section, s.Table.Capacity, s.Status)
			}
			return tw.Flush()
		},
	}
}

type reportFlags struct {
	period string
	start  string
	end    string
	format string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.period, "period", string(domain.PeriodDaily), "daily, weekly, monthly or custom")
	cmd.Flags().StringVar(&f.start, "start", "", "window start date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.end, "end", "", "window end date, exclusive; required for custom periods")
	cmd.Flags().StringVar(&f.format, "format", "", "export format: json, csv or parquet (default from config)")
}

// window resolves the report window. The end defaults to one period after
// the start.
func (f *reportFlags) window(now time.Time) (domain.ReportPeriod, time.Time, time.Time, error) {
	period := domain.ReportPeriod(f.period)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if f.start != "" {
		parsed, err := time.Parse(dateLayout, f.start)
		if err != nil {
			return "", time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
		start = parsed
	}
	if f.end != "" {
		end, err := time.Parse(dateLayout, f.end)
		if err != nil {
			return "", time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
		return period, start, end, nil
	}
	switch period {
	case domain.PeriodDaily:
		return period, start, start.AddDate(0, 0, 1), nil
	case domain.PeriodWeekly:
		return period, start, start.AddDate(0, 0, 7), nil
	case domain.PeriodMonthly:
		return period, start, start.AddDate(0, 1, 0), nil
	case domain.PeriodCustom:
		return "", time.Time{}, time.Time{}, errors.New("custom period requires --end")
	default:
		return "", time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", f.period)
	}
}

func (f *reportFlags) exportFormat(app *app) (export.Format, error) {
	name := f.format
	if name == "" {
		name = app.cfg.Export.Format
	}
	return export.ParseFormat(name)
}

func newReportCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and export reports",
	}

	var fin reportFlags
	financial := &cobra.Command{
		Use:   "financial",
		Short: "Aggregate revenue and expenses over a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := a()
			period, start, end, err := fin.window(time.Now().UTC())
			if err != nil {
				return err
			}
			format, err := fin.exportFormat(app)
			if err != nil {
				return err
			}
			report, _, err := app.svc.GenerateFinancialReport(cmd.Context(), period, start, end)
			if err != nil {
				return err
			}
			info, err := app.exporter.FinancialReports(cmd.Context(), []domain.FinancialReport{report}, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s..%s: %d orders, revenue %.2f, expenses %.2f, net profit %.2f (%.2f%%)\n",
				report.Period, start.Format(dateLayout), end.Format(dateLayout), report.OrderCount,
				report.NetRevenue, report.TotalExpenses, report.NetProfit, report.ProfitMargin)
			return printArtifact(cmd, app, info)
		},
	}
	fin.register(financial)

	var loc reportFlags
	locations := &cobra.Command{
		Use:   "locations",
		Short: "Rank locations by revenue over a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := a()
			period, start, end, err := loc.window(time.Now().UTC())
			if err != nil {
				return err
			}
			format, err := loc.exportFormat(app)
			if err != nil {
				return err
			}
			report, _, err := app.svc.GenerateMultiLocationReport(cmd.Context(), period, start, end)
			if err != nil {
				return err
			}
			info, err := app.exporter.LocationReport(cmd.Context(), report, format)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(app.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tLOCATION\tREVENUE\tPROFIT\tORDERS")
			for _, l := range report.Locations {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%d\n", l.Rank, l.Name, l.Revenue, l.Profit, l.OrderCount)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return printArtifact(cmd, app, info)
		},
	}
	loc.register(locations)

	cmd.AddCommand(financial, locations)
	return cmd
}

func newQRCmd(a func() *app) *cobra.Command {
	var (
		size     int
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "qr [id...]",
		Short: "Render QR codes to PNG in the blob store",
		Long:  "Renders the named QR codes, or every active code when no id is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := a()
			ctx := cmd.Context()
			var codes []domain.QRCode
			if len(args) == 0 {
				all, err := core.List(ctx, app.svc, core.TransactionView.QRCodes)
				if err != nil {
					return err
				}
				for _, c := range all {
					if c.Active {
						codes = append(codes, c)
					}
				}
			}
			for _, id := range args {
				c, err := core.Get(ctx, app.svc, domain.EntityQRCode, core.TransactionView.QRCodes, id)
				if err != nil {
					return err
				}
				codes = append(codes, c)
			}
			var bar *progressbar.ProgressBar
			if progress {
				bar = progressbar.NewOptions(len(codes),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("rendering qr codes"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			for _, c := range codes {
				info, err := app.exporter.QRCode(ctx, c, size)
				if err != nil {
					return err
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				fmt.Fprintf(app.stdout, "%s (%s) -> ", c.Label, c.ID)
				if err := printArtifact(cmd, app, info); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "image size in pixels (default 256)")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")
	return cmd
}

// printArtifact prints the blob key and, where the backend supports it, a
// time-limited download URL.
func printArtifact(cmd *cobra.Command, app *app, info blob.Info) error {
	url, err := app.blobs.PresignURL(cmd.Context(), info.Key, blob.SignedURLOptions{Method: http.MethodGet, Expiry: app.cfg.Export.URLExpiry})
	switch {
	case errors.Is(err, blob.ErrUnsupported):
		fmt.Fprintf(app.stdout, "exported %s (%d bytes)\n", info.Key, info.Size)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(app.stdout, "exported %s (%d bytes) %s\n", info.Key, info.Size, strings.TrimSpace(url))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
