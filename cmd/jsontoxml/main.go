package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shabbyrobe/jsontoxml"
	"github.com/shabbyrobe/jsontoxml/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := rootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configFile string
	var output string

	cmd := &cobra.Command{
		Use:   "jsontoxml [file...]",
		Short: "Convert JSON documents to XML",
		Long: "Reads each JSON file (or stdin when none are given) and writes it as XML.\n" +
			"Settings come from flags, JSONTOXML_* environment variables and an optional config.yaml.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				out = f
			}

			r := &runner{
				cfg:    cfg.Convert,
				logger: logger,
				stdin:  cmd.InOrStdin(),
				stdout: out,
			}
			return r.run(cmd.Context(), args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml if present)")
	f.StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	f.BoolP("pretty", "p", false, "pretty print the output")
	f.String("indent", jsontoxml.DefaultIndent, "indent string used with --pretty")
	f.BoolP("escape", "e", false, "escape text and attribute values")
	f.BoolP("sanitize", "s", false, "replace illegal characters in element names")
	f.Int("max-depth", jsontoxml.DefaultMaxDepth, "maximum nesting depth, 0 for no limit")
	f.Bool("header", false, "write an XML declaration")
	f.String("xml-version", jsontoxml.DefaultVersion, "version written in the XML declaration")
	f.String("encoding", jsontoxml.DefaultEncoding, "output encoding, also written in the XML declaration")
	f.Bool("standalone", false, "write standalone=\"yes\" in the XML declaration")
	f.String("doctype", "", "write <!DOCTYPE ...> with this body")
	f.String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}
