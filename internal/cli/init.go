package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/fsworkspace"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default gs1dm.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			} else if wd, err := os.Getwd(); err == nil {
				root = wd
			}

			written, err := fsworkspace.NewInitializer().Init(root, force)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintf(w, "Config already present in %s (use --force to overwrite)\n", root)
				return nil
			}
			for _, p := range written {
				fmt.Fprintf(w, "Wrote %s\n", p)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing gs1dm.yaml")
	return c
}
