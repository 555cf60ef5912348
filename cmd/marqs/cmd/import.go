package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/crypto"
	"github.com/marqs-app/marqs/internal/domain"
	"github.com/marqs-app/marqs/internal/merge"
	"github.com/marqs-app/marqs/internal/sources/browser"
	"github.com/marqs-app/marqs/internal/sources/homepage"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge bookmarks from a file into the store",
	Long: `Merge bookmarks from a file into the store. Existing bookmarks are
never modified; only unknown (url, category) pairs are added, so importing
the same file twice changes nothing.

Formats:
  json      plain export file (default)
  enc       encrypted export container (prompts for the password)
  html      browser bookmark export
  lines     newline-delimited URLs
  homepage  homepage-style bookmarks.yaml
  auto      sniff html vs lines from the content

With --format homepage the file argument may be omitted when
MARQS_HOMEPAGE_FILE is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else if importFormat == "homepage" {
			path = application.Cfg.HomepageFile
		}
		if path == "" {
			return fmt.Errorf("no file given")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var payload domain.Payload
		opts := merge.Options{}

		format := importFormat
		if format == "auto" {
			if browser.Looks(string(data)) {
				format = "html"
			} else {
				format = "lines"
			}
		}

		switch format {
		case "json":
			payload, err = merge.ParsePayload(data)
			if err != nil {
				return err
			}

		case "enc":
			password, err := readPassword("export password: ")
			if err != nil {
				return err
			}
			plaintext, err := crypto.Decrypt(data, password)
			if err != nil {
				return err
			}
			payload, err = merge.ParsePayload(plaintext)
			if err != nil {
				return err
			}

		case "html":
			payload = browser.Payload(string(data))

		case "lines":
			payload = merge.PayloadFromLines(string(data))
			opts.DedupeByURLOnly = true

		case "homepage":
			config, err := homepage.Parse(data)
			if err != nil {
				return err
			}
			payload = config.Payload()

		default:
			return fmt.Errorf("unknown format %q", importFormat)
		}

		added, err := application.Store.MergeImport(cmd.Context(), payload, opts)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d new bookmark(s)\n", added)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "json", "json, enc, html, lines, homepage or auto")

	rootCmd.AddCommand(importCmd)
}
