// Command textpad loads, inspects and converts text files the way a
// textpad window does.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rjkroege/textpad/config"
	"github.com/rjkroege/textpad/detect"
	"github.com/rjkroege/textpad/wind"
	"github.com/spf13/cobra"
)

// version is set during build with -ldflags.
var version = "dev"

// app holds the state shared by the subcommands.
type app struct {
	configPath string
	debug      bool
	yes        bool

	settings *config.Settings
	resolver *detect.ChromaResolver
}

func newRootCmd() *cobra.Command {
	a := &app{resolver: detect.NewChromaResolver()}
	root := &cobra.Command{
		Use:   "textpad",
		Short: "Inspect and convert text files by encoding, line ending and syntax",
		Long: `textpad loads files the way a textpad window does: it detects the
encoding, byte-order mark, line endings and syntax, and can save the
document again with any of them changed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.debug {
				log.SetOutput(io.Discard)
			}
			return a.loadSettings()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file (default is the user config directory)")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "set for verbose debugging")

	root.AddCommand(
		a.infoCmd(),
		a.convertCmd(),
		a.watchCmd(),
		a.encodingsCmd(),
		a.syntaxesCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number of textpad",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "textpad version %s\n", version)
			},
		},
	)
	return root
}

func (a *app) loadSettings() error {
	path := a.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			a.settings = config.Default()
			return nil
		}
		path = p
	}
	s, err := config.Load(path)
	if err != nil {
		return err
	}
	a.settings = s
	return nil
}

// newWindow builds a window that puts its questions through p.
func (a *app) newWindow(p *linePrompter) *wind.Window {
	return wind.NewWindow(wind.Options{
		Settings: a.settings,
		Syntax:   a.resolver,
		Prompter: p,
		Logger:   log.Default(),
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
