package main

import (
	"fmt"
	"strconv"

	"mirrorpick/internal/dashboard"
	"mirrorpick/internal/mirrors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newExportCmd builds the non-interactive counterpart of the dashboard.
func newExportCmd(opts *rootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "export [country-glob...]",
		Short: "Write the mirrorlist without the dashboard",
		Long: `Select every country that matches one of the given name or code globs (or the
configured countries when none are given) and passes the active filters, then
write the mirrors of those countries as a pacman mirrorlist.`,
		Example: `  mirrorpick export germany 'fr*' -o /etc/pacman.d/mirrorlist
  mirrorpick export --list -f https,in-sync`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			p := newPrinter(cmd.ErrOrStderr(), cfg.Theme)

			st, src, err := loadStatus(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			switch src {
			case mirrors.SourceFallback:
				p.Warning("mirror status unavailable, using the bundled snapshot")
			case mirrors.SourceStaleCache:
				p.Warning("mirror status unavailable, using an outdated cache")
			}
			if len(args) > 0 {
				if st, err = mirrors.FilterCountries(st, args); err != nil {
					return err
				}
			}

			view, err := cfg.DashboardOptions()
			if err != nil {
				return err
			}
			rows := dashboard.DeriveView(st, view.Filters, view.Sort, "")
			if len(rows) == 0 {
				p.Warning("no countries match")
				return nil
			}

			if list {
				fmt.Fprintln(cmd.OutOrStdout(), countryTable(rows, cfg.Theme.Border))
				return nil
			}

			var sel dashboard.Selection
			for _, r := range rows {
				sel = sel.Toggle(r.Country)
			}
			p.Info(fmt.Sprintf("%d countries selected (%s)", len(rows), src))
			return exportSelection(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, sel, view.ExportSort, opts.clipboard)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the matching countries instead of exporting")
	return cmd
}

func countryTable(rows []dashboard.Row, border string) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Country.Name, r.Country.Code, strconv.Itoa(r.Count)})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(border))).
		Headers("Country", "Code", "Mirrors").
		Rows(data...)

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}
