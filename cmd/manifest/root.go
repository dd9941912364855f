package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scottidler/manifest/internal/version"
	"github.com/scottidler/manifest/pkg/config"
	"github.com/scottidler/manifest/pkg/logging"
	"github.com/scottidler/manifest/pkg/manifest"
	"github.com/scottidler/manifest/pkg/paths"
	"github.com/scottidler/manifest/pkg/spec"
)

// NewRootCmd builds the manifest command tree. Section flags use
// NoOptDefVal so that a bare flag (no values) arrives as ["*"], an
// omitted flag stays empty, and explicit values become the filter
// patterns. Any section flag at all flips the run to partial mode.
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		cfgFile   string
		opts      manifest.Options
	)

	rootCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Generate a Bash install script from a YAML manifest",
		Long: `manifest reads a declarative YAML description of desired machine state
(symlinks, PPAs, system and language-ecosystem packages, GitHub repos,
ad-hoc scripts) and writes a single idempotent Bash script to stdout.

With no section flags the complete manifest is rendered. Each section
flag accepts patterns (exact, case-insensitive, prefix, substring) to
select a subset; a bare flag selects the whole section.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.Cwd)
			if err != nil {
				return err
			}
			if cfgFile == "" {
				cfgFile = settings.Manifest
			}
			if opts.PkgMgr == "" {
				opts.PkgMgr = settings.Pkgmgr
			}
			opts.Repopath = settings.Repopath

			if opts.Home == "" {
				home, err := paths.Home()
				if err != nil {
					return err
				}
				opts.Home = home
			}

			path := cfgFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(opts.Cwd, path)
			}
			sp, err := spec.Load(path)
			if err != nil {
				return err
			}

			script, err := manifest.Generate(sp, opts)
			if err != nil {
				return err
			}

			// stdout carries the script and nothing else
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "C", "", "Path to the manifest YAML file (default manifest.yml)")
	flags.StringVarP(&opts.Cwd, "cwd", "D", ".", "Working directory for relative manifest paths")
	flags.StringVarP(&opts.Home, "home", "H", "", "Home directory override for ~ expansion")
	flags.StringVarP(&opts.PkgMgr, "pkgmgr", "M", "", "Package manager override: deb, rpm or brew")

	sectionFlag(flags, &opts.Link, "link", "l")
	sectionFlag(flags, &opts.Ppa, "ppa", "p")
	sectionFlag(flags, &opts.Apt, "apt", "a")
	sectionFlag(flags, &opts.Dnf, "dnf", "d")
	sectionFlag(flags, &opts.Npm, "npm", "n")
	sectionFlag(flags, &opts.Pip3, "pip3", "P")
	sectionFlag(flags, &opts.Pipx, "pipx", "x")
	sectionFlag(flags, &opts.Flatpak, "flatpak", "f")
	sectionFlag(flags, &opts.Cargo, "cargo", "c")
	sectionFlag(flags, &opts.Github, "github", "g")
	sectionFlag(flags, &opts.GitCrypt, "git-crypt", "")
	sectionFlag(flags, &opts.Script, "script", "s")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

// sectionFlag registers one per-section pattern flag with the
// bare-flag-means-everything semantics.
func sectionFlag(flags *pflag.FlagSet, target *[]string, name, short string) {
	usage := fmt.Sprintf("Patterns to match %s entries; bare --%s selects all", name, name)
	if short != "" {
		flags.StringSliceVarP(target, name, short, nil, usage)
	} else {
		flags.StringSliceVar(target, name, nil, usage)
	}
	flags.Lookup(name).NoOptDefVal = "*"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "manifest version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
