package main

import (
	"os"
	"path/filepath"

	"mirrorpick/internal/config"
	"mirrorpick/internal/errors"
	"mirrorpick/internal/log"

	"github.com/spf13/cobra"
)

// rootOptions holds the values of the global flags.
type rootOptions struct {
	configFile string
	logFile    string
	debug      bool
	logJSON    bool

	outfile   string
	export    int
	filters   []string
	view      string
	sort      string
	countries []string
	ttl       int
	url       string

	clipboard bool
	noWatch   bool

	// filled in by PersistentPreRunE
	cfg        *config.Config
	configPath string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mirrorpick",
		Short: "Pick Arch Linux mirrors by country",
		Long: `mirrorpick shows the Arch Linux mirror status by country in an interactive
dashboard. Select countries with space, then quit to write their mirrors as a
pacman mirrorlist.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.configureLogging()
			return opts.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mirrorpick/mirrorpick.yaml)")
	pf.StringVar(&opts.logFile, "log-file", "", "log file (default is $XDG_CACHE_HOME/mirrorpick/mirrorpick.log)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&opts.logJSON, "log-json", false, "write log lines as JSON objects")

	pf.StringVarP(&opts.outfile, "outfile", "o", "", "write the mirrorlist to this file instead of stdout")
	pf.IntVarP(&opts.export, "export", "e", 0, "number of mirrors to export (0 exports all)")
	pf.StringSliceVarP(&opts.filters, "filters", "f", nil, "filters enabled at start: https, http, rsync, in-sync")
	pf.StringVarP(&opts.view, "view", "v", "", "country order: alphabetical or mirror-count")
	pf.StringVarP(&opts.sort, "sort", "s", "", "mirror order in the export: score, delay, duration or completion")
	pf.StringSliceVarP(&opts.countries, "country", "c", nil, "only load countries matching these name or code globs")
	pf.IntVarP(&opts.ttl, "ttl", "t", 0, "hours to reuse the cached mirror status (0 always refetches)")
	pf.StringVarP(&opts.url, "url", "u", "", "mirror status endpoint")
	pf.BoolVar(&opts.clipboard, "clipboard", false, "also copy the mirrorlist to the clipboard")

	rootCmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the config file when it changes")

	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *rootOptions) configureLogging() {
	path := o.logFile
	if path == "" {
		path = defaultLogPath()
	}
	var opts []log.Option
	if path != "-" {
		opts = append(opts, log.WithFile(path))
	}
	if o.logJSON {
		opts = append(opts, log.WithJSON())
	}
	log.Configure(opts...)
	log.SetDebug(o.debug)
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mirrorpick.log")
	}
	return filepath.Join(dir, "mirrorpick", "mirrorpick.log")
}

// loadConfig reads the config file and lays the explicitly set flags over it.
func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	path := o.configFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := o.reload(cmd, path)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.configPath = path
	log.LogWithFields(log.F("config", path)).Debug("configuration loaded")
	return nil
}

// reload reads path and applies the flags. Used at startup and by the config watcher.
func (o *rootOptions) reload(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	o.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid command line")
	}
	return cfg, nil
}

// applyFlags overrides the configuration with every flag set on the command line.
func (o *rootOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("outfile") {
		cfg.Outfile = o.outfile
	}
	if flags.Changed("export") {
		cfg.Export = o.export
	}
	if flags.Changed("filters") {
		cfg.Filters = o.filters
	}
	if flags.Changed("view") {
		cfg.View = o.view
	}
	if flags.Changed("sort") {
		cfg.Sort = o.sort
	}
	if flags.Changed("country") {
		cfg.Countries = o.countries
	}
	if flags.Changed("ttl") {
		cfg.CacheTTL = o.ttl
	}
	if flags.Changed("url") {
		cfg.URL = o.url
	}
}
