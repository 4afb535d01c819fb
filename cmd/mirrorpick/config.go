package main

import (
	"fmt"
	"strings"

	"mirrorpick/internal/config"
	"mirrorpick/internal/errors"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging the config file and the command line.
The output can be saved as a starting config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.Format(strings.ToLower(format))
			switch f {
			case config.FormatYAML, config.FormatTOML, config.FormatJSON:
			default:
				return errors.NewConfigError(fmt.Sprintf("unknown format %q", format), "format", errors.InvalidConfig, nil)
			}
			newPrinter(cmd.ErrOrStderr(), opts.cfg.Theme).Header("# " + opts.configPath)
			return opts.cfg.Encode(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml, toml or json")
	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListThemes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(config.Schema(), "", "  ")
			if err != nil {
				return errors.Wrap(err, "encoding schema")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// skip config loading
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mirrorpick %s\n", version)
		},
	}
}
