package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/gs1"
)

type exportFlags struct {
	format    string
	out       string
	open      bool
	overwrite bool
	gsToken   string
	stdin     bool
}

func exportCmd(g *globalFlags) *cobra.Command {
	f := &exportFlags{}

	c := &cobra.Command{
		Use:   "export [payload]",
		Short: "Render one GS1 payload and save the returned PNG or PDF",
		Example: `  gs1dm export '(01)09506000134352(17)201225<GS>(10)ABC123'
  gs1dm export --format pdf --out labels/ '(01)09506000134352'
  echo '(01)09506000134352' | gs1dm export --stdin --out - > label.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			raw, err := readPayloadArg(cmd.InOrStdin(), args, f.stdin)
			if err != nil {
				return err
			}

			format, err := formatOrDefault(f.format, app.cfg.Export.DefaultFormat)
			if err != nil {
				return err
			}

			token := app.cfg.Export.GSToken
			if cmd.Flags().Changed("gs-token") {
				token = f.gsToken
			}
			payload := gs1.Expand(raw, token)

			out := app.cfg.Export.OutputDir
			if cmd.Flags().Changed("out") {
				out = f.out
			}
			open := app.cfg.Export.Open || f.open
			overwrite := app.cfg.Export.Overwrite || f.overwrite

			saver := app.saver(out, open, overwrite, cmd.OutOrStdout())
			saved, err := app.requestExport(saver).Execute(cmd.Context(), payload, format)
			if err != nil {
				return err
			}

			// Keep stdout clean when it carries the document.
			w := cmd.OutOrStdout()
			if strings.TrimSpace(out) == stdoutTarget {
				w = cmd.ErrOrStderr()
			}
			printSaved(w, saved)
			return nil
		},
	}

	c.Flags().StringVarP(&f.format, "format", "f", "", "Output format: png|pdf (default from config)")
	c.Flags().StringVarP(&f.out, "out", "o", "", "Output directory, or - for stdout (default from config)")
	c.Flags().BoolVar(&f.open, "open", false, "Open the saved file in the system browser")
	c.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace an existing file instead of picking a new name")
	c.Flags().StringVar(&f.gsToken, "gs-token", gs1.DefaultToken, "Token typed in place of the 0x1D group separator")
	c.Flags().BoolVar(&f.stdin, "stdin", false, "Read the payload from stdin")

	return c
}

func readPayloadArg(stdin io.Reader, args []string, fromStdin bool) (string, error) {
	switch {
	case fromStdin && len(args) > 0:
		return "", errors.New("pass the payload as an argument or with --stdin, not both")
	case fromStdin:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New("payload is required (argument or --stdin)")
	}
}

func printSaved(w io.Writer, s domain.SavedExport) {
	r := s.Result
	fmt.Fprintf(w, "Saved:    %s\n", s.Location)
	fmt.Fprintf(w, "Format:   %s (%d bytes)\n", r.Format, len(r.Data))
	if r.ContentType != "" {
		fmt.Fprintf(w, "Type:     %s\n", r.ContentType)
	}
	fmt.Fprintf(w, "Status:   %d\n", r.Status)
	fmt.Fprintf(w, "Duration: %s\n", r.Duration.Round(time.Millisecond))
}
