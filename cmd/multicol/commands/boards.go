package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/seed"
)

func boardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage saved boards",
	}
	cmd.AddCommand(boardsListCmd(), boardsShowCmd(), boardsImportCmd(), boardsExportCmd(), boardsDeleteCmd())
	return cmd
}

func boardsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := requireStore()
			if err != nil {
				return err
			}
			defer done()

			list, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOLUMNS\tITEMS\tUPDATED")
			for _, b := range list {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", b.Name, b.Containers, b.Items, b.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func boardsShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a saved board as toml, yaml or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := requireStore()
			if err != nil {
				return err
			}
			defer done()

			layout, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := board.New(layout.Columns)
			if err != nil {
				return fmt.Errorf("board %q: %w", args[0], err)
			}
			return seed.Encode(cmd.OutOrStdout(), b, seed.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(seed.FormatTOML), "output format: toml, yaml or json")
	return cmd
}

func boardsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [name] [file]",
		Short: "Save a toml, yaml or json board file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := seed.Load(args[1])
			if err != nil {
				return err
			}
			repo, done, err := requireStore()
			if err != nil {
				return err
			}
			defer done()

			saved, err := repo.Save(cmd.Context(), args[0], b.Columns())
			if err != nil {
				return err
			}
			logger.Info("board imported", "name", saved.Name, "file", args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q: %d columns, %d items\n", saved.Name, saved.Containers, saved.Items)
			return nil
		},
	}
}

func boardsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [name] [file]",
		Short: "Write a saved board to a toml, yaml or json file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := requireStore()
			if err != nil {
				return err
			}
			defer done()

			layout, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := board.New(layout.Columns)
			if err != nil {
				return fmt.Errorf("board %q: %w", args[0], err)
			}
			if err := seed.Save(args[1], b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}
}

func boardsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, done, err := requireStore()
			if err != nil {
				return err
			}
			defer done()

			if err := repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	}
}
