package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rjkroege/textpad/codec"
	"github.com/rjkroege/textpad/watch"
	"github.com/rjkroege/textpad/wind"
	"github.com/spf13/cobra"
)

// errAborted is returned when the user declined to go on.
var errAborted = errors.New("aborted")

// load opens path in a new window.
func (a *app) load(p *linePrompter, path, encoding string) (*wind.Window, error) {
	if encoding != "" {
		if _, err := codec.Resolve(encoding); err != nil {
			return nil, err
		}
	}
	w := a.newWindow(p)
	ok, err := w.LoadFrom(path, encoding)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errAborted
	}
	return w, nil
}

func (a *app) prompter(cmd *cobra.Command) *linePrompter {
	return newLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), a.yes)
}

func (a *app) infoCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Show the detected encoding, line ending, BOM and syntax of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.load(a.prompter(cmd), args[0], encoding)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), statusLine(w.Status()))
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "", "decode the file as `ENCODING` instead of detecting it")
	cmd.Flags().BoolVarP(&a.yes, "yes", "y", false, "answer yes to every question")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var (
		from, encoding, eol, output string
		bom, noBOM                  bool
	)
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Save a file with a different encoding, line ending or BOM",
		Long: `Load FILE, change its encoding, line ending or byte-order mark and save
it again, in place or as a copy.

Examples:
  # Convert to UTF-16 little endian with a BOM
  textpad convert notes.txt --encoding utf-16le --bom

  # Write a copy with DOS line endings
  textpad convert script.sh --eol crlf -o script-dos.sh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bom && noBOM {
				return fmt.Errorf("--bom and --no-bom are mutually exclusive")
			}
			var le codec.LineEnding
			if eol != "" {
				var err error
				if le, err = codec.ParseLineEnding(eol); err != nil {
					return err
				}
			}
			if encoding != "" {
				if _, err := codec.Resolve(encoding); err != nil {
					return err
				}
			}

			w, err := a.load(a.prompter(cmd), args[0], from)
			if err != nil {
				return err
			}
			if encoding != "" {
				w.ChangeEncoding(encoding)
			}
			if eol != "" {
				w.ChangeLineEndingMode(le)
			}
			if (bom && !w.UTFBOM()) || (noBOM && w.UTFBOM()) {
				w.ChangeUTFBOM()
			}
			if bom && !w.Codec().Unicode {
				fmt.Fprintf(cmd.ErrOrStderr(), "textpad: %s has no byte-order mark\n", w.Encoding())
			}

			if output != "" {
				_, err = w.SaveTo(output, true)
			} else {
				_, err = w.SaveDocument()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), statusLine(w.Status()))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "", "decode the file as `ENCODING` instead of detecting it")
	f.StringVar(&encoding, "encoding", "", "save as `ENCODING`")
	f.StringVar(&eol, "eol", "", "save with line endings `LF|CRLF|CR`")
	f.BoolVar(&bom, "bom", false, "write a byte-order mark")
	f.BoolVar(&noBOM, "no-bom", false, "do not write a byte-order mark")
	f.StringVarP(&output, "output", "o", "", "write a copy to `FILE` instead of saving in place")
	f.BoolVarP(&a.yes, "yes", "y", false, "answer yes to every question")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var reload bool
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Report changes made to a file by other programs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.prompter(cmd)
			p.reload = &reload
			w, err := a.load(p, args[0], "")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var changes wind.ObserverFunc = func(ev wind.Event) {
				switch ev.Kind {
				case wind.OutOfDate, wind.FileChanged:
					fmt.Fprintln(out, statusLine(ev.Status))
				}
			}
			w.AddObserver(&changes)
			fmt.Fprintln(out, statusLine(w.Status()))

			fw, err := watch.New(w.Path())
			if err != nil {
				return err
			}
			defer fw.Close()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			defer signal.Stop(interrupt)
			for {
				select {
				case _, ok := <-fw.Changes():
					if !ok {
						return nil
					}
					if _, err := w.CheckForModifications(); err != nil {
						return err
					}
				case <-interrupt:
					return nil
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().BoolVar(&reload, "reload", false, "reload the file when it changes")
	return cmd
}

func (a *app) encodingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "List the supported encodings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, n := range codec.Default().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
		},
	}
}

func (a *app) syntaxesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "syntaxes [FILTER]",
		Short: "List the syntaxes whose names contain FILTER",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 0 {
				filter = strings.ToLower(args[0])
			}
			n := 0
			for _, name := range a.resolver.Names() {
				if strings.Contains(strings.ToLower(name), filter) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
					n++
				}
			}
			if n == 0 {
				s, err := a.resolver.Lookup(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
