package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/config"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	server     string
	debug      bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "gs1dm",
		Short:        "gs1dm renders GS1 DataMatrix labels through an export server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			// The alternate screen owns stdout.
			out := app.cfg.Export.OutputDir
			if out == stdoutTarget {
				out = "."
			}
			saver := app.saver(out, app.cfg.Export.Open, app.cfg.Export.Overwrite, cmd.OutOrStdout())

			return tui.Run(tui.Deps{
				Exporter:   app.requestExport(saver),
				Config:     app.cfg,
				ConfigPath: app.cfgPath,
				Logger:     app.log,
				Debug:      g.debug,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: gs1dm.yaml found upward from the current directory)")
	cmd.PersistentFlags().StringVar(&g.server, "server", "", "Export server base URL (overrides config and "+config.EnvServer+")")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to <state_dir>/logs/gs1dm.log")

	cmd.AddCommand(
		exportCmd(g),
		batchCmd(g),
		historyCmd(g),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
