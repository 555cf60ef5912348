package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marqs-app/marqs/internal/crypto"
)

var exportEncrypt bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the full collection to an export file",
	Long: `Write the full collection (including trashed bookmarks) to a file.
With --encrypt the export is sealed with a password; without it the file is
plain JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := application.Store.ExportPayload()
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal export: %w", err)
		}

		if exportEncrypt {
			password, err := readPassword("export password: ")
			if err != nil {
				return err
			}
			confirmPassword, err := readPassword("confirm password: ")
			if err != nil {
				return err
			}
			if password != confirmPassword {
				return fmt.Errorf("passwords do not match")
			}
			data, err = crypto.Encrypt(data, password)
			if err != nil {
				return err
			}
		}

		if err := os.WriteFile(args[0], data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Printf("exported %d bookmark(s) to %s\n", len(payload.Bookmarks), args[0])
		return nil
	},
}

// readPassword prompts without echo.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func init() {
	exportCmd.Flags().BoolVarP(&exportEncrypt, "encrypt", "e", false, "encrypt the export with a password")

	rootCmd.AddCommand(exportCmd)
}
