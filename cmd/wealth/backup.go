package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
)

func exportCmd(open opener) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of all data",
		Long:  `Write transactions, goals, budgets and categories to a JSON backup file. Use -o - to print it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			svc := backup.NewService(e.store)

			if output == "-" {
				_, err := svc.Export(cmd.OutOrStdout())
				return err
			}

			dir := output
			if dir == "" {
				dir = e.exportDir
			}

			path, err := svc.WriteFile(dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory, or - for stdout")

	return cmd
}

func importCmd(open opener) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore all data from a backup",
		Long:  `Replace every collection with the contents of a backup file. Asks for confirmation unless --yes is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening backup: %w", err)
			}
			defer f.Close()

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()

			replaced, err := backup.NewService(e.store).Import(cmd.Context(), f, func(doc backup.Document) bool {
				if yes {
					return true
				}

				return confirm(cmd.InOrStdin(), out, fmt.Sprintf("Replace all data with %s?", doc.Summary()))
			})
			if err != nil {
				return err
			}

			if !replaced {
				fmt.Fprintln(out, "Import cancelled. Nothing was changed.")
				return nil
			}

			fmt.Fprintln(out, "Backup restored.")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}

	return false
}
