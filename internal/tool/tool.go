// Package tool carries the shared scaffolding for the sensorctl
// binaries: persistent flags, profile resolution, the login/logout
// lifecycle around every command, and interrupt handling.
package tool

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/orchestrator"
	"github.com/sensornet/sensorctl/pkg/profile"
	"github.com/sensornet/sensorctl/pkg/settings"
	"github.com/sensornet/sensorctl/pkg/util"
	"github.com/sensornet/sensorctl/pkg/version"
)

// Tool binds a cobra root command to one management backend.
type Tool struct {
	Root *cobra.Command

	name        string
	backend     string
	envName     string
	profilePath string
	verbose     bool
	client      *orchestrator.Client
}

// New builds the root command for a backend-bound tool. Commands added
// by the caller run between Login and Logout.
func New(name, backend, short, long string) *Tool {
	t := &Tool{name: name, backend: backend}
	t.Root = &cobra.Command{
		Use:               name,
		Short:             short,
		Long:              long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		PersistentPreRunE: t.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if t.client != nil {
				t.client.Logout()
			}
		},
	}

	t.Root.PersistentFlags().StringVarP(&t.envName, "env", "e", "", "Environment name (default from settings, then dev1)")
	t.Root.PersistentFlags().StringVar(&t.profilePath, "profiles", "", "Profiles file (default ~/.sensorctl/profiles.yaml)")
	t.Root.PersistentFlags().BoolVarP(&t.verbose, "verbose", "v", false, "Verbose output")

	t.Root.AddGroup(&cobra.Group{ID: "meta", Title: "Configuration & Meta:"})
	t.Root.AddCommand(t.newVersionCmd(), t.newSettingsCmd())
	return t
}

// Client returns the backend client. Valid once setup has run, which
// is before any non-meta RunE.
func (t *Tool) Client() *orchestrator.Client {
	return t.client
}

// setup resolves settings and profile, builds the client, and logs in.
// Meta commands (help, version, settings) skip all of it.
func (t *Tool) setup(cmd *cobra.Command, args []string) error {
	if isMetaOrHelp(cmd) {
		return nil
	}

	// Quiet by default, verbose on -v
	if t.verbose {
		util.SetLogLevel("debug")
	} else {
		util.SetLogLevel("warn")
	}

	userSettings, err := settings.Load()
	if err != nil {
		util.Warnf("Could not load settings: %v", err)
		userSettings = &settings.Settings{}
	}
	if t.envName == "" {
		t.envName = userSettings.GetEnv()
	}
	if t.profilePath == "" {
		t.profilePath = userSettings.ProfilePath
	}

	cfg, err := profile.Load(t.profilePath, t.envName, t.backend)
	if err != nil {
		return err
	}
	util.Debugf("backend config:\n%s", cfg)

	t.client = orchestrator.New(cfg)
	fmt.Printf("Connecting to: %s (%s)\n", cli.Cyan(cfg.BaseURL()), t.envName)
	return t.client.Login()
}

// Main runs the root command. SIGINT reports cancellation and exits 0;
// command errors exit 1.
func (t *Tool) Main() {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		<-interrupts
		fmt.Println("\n" + cli.Yellow("Operation cancelled by user."))
		os.Exit(0)
	}()

	if err := t.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Red("Error:")+" "+err.Error())
		os.Exit(1)
	}
}

func (t *Tool) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: "meta",
		Run: func(cmd *cobra.Command, args []string) {
			if version.Version == "dev" {
				fmt.Printf("%s dev build (use 'make build' for version info)\n", t.name)
			} else {
				fmt.Printf("%s %s (%s)\n", t.name, version.Version, version.GitCommit)
			}
		},
	}
}

// isMetaOrHelp checks whether cmd (or any ancestor) is a meta command
// that runs without a backend connection.
func isMetaOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}
