package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/gs1"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/usecase"
)

func batchCmd(g *globalFlags) *cobra.Command {
	var file string
	var format string
	var out string
	var overwrite bool
	var concurrency int
	var rate float64

	c := &cobra.Command{
		Use:   "batch",
		Short: "Render one label per payload line of a file",
		Example: `  gs1dm batch --file payloads.txt --out labels/
  cat payloads.txt | gs1dm batch --file - --format pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			f, err := formatOrDefault(format, app.cfg.Export.DefaultFormat)
			if err != nil {
				return err
			}

			lines, err := readPayloadFile(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return errors.New("no payloads found")
			}

			payloads := make([]string, len(lines))
			for i, l := range lines {
				payloads[i] = gs1.Expand(l, app.cfg.Export.GSToken)
			}

			dir := app.cfg.Export.OutputDir
			if cmd.Flags().Changed("out") {
				dir = out
			}
			if strings.TrimSpace(dir) == stdoutTarget {
				return errors.New("batch cannot write to stdout; use an output directory")
			}

			n := app.cfg.Batch.Concurrency
			if cmd.Flags().Changed("concurrency") {
				n = concurrency
			}
			r := app.cfg.Batch.RatePerSec
			if cmd.Flags().Changed("rate") {
				r = rate
			}

			saver := app.saver(dir, false, app.cfg.Export.Overwrite || overwrite, cmd.OutOrStdout())
			uc := usecase.NewBatchExport(app.client, saver,
				usecase.WithConcurrency(n),
				usecase.WithRate(r),
				usecase.WithBatchHistory(app.historyStore()),
				usecase.WithBatchLogger(app.log),
			)

			items, err := uc.Execute(cmd.Context(), payloads, f)
			printBatch(cmd.OutOrStdout(), items)
			if err != nil {
				return err
			}

			if fails := countBatchFailures(items); fails > 0 {
				return fmt.Errorf("batch failed (%d of %d export(s))", fails, len(items))
			}
			return nil
		},
	}

	c.Flags().StringVar(&file, "file", "", "File with one payload per line, or - for stdin (required)")
	c.Flags().StringVarP(&format, "format", "f", "", "Output format: png|pdf (default from config)")
	c.Flags().StringVarP(&out, "out", "o", "", "Output directory (default from config)")
	c.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files instead of picking new names")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel exports (default from config)")
	c.Flags().Float64Var(&rate, "rate", 0, "Max requests per second, 0 for unlimited (default from config)")

	_ = c.MarkFlagRequired("file")
	return c
}

func readPayloadFile(stdin io.Reader, path string) ([]string, error) {
	if strings.TrimSpace(path) == "-" {
		return usecase.ReadPayloads(stdin)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "cli.batch.open",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer fh.Close()

	return usecase.ReadPayloads(fh)
}

func printBatch(w io.Writer, items []usecase.BatchItem) {
	for _, it := range items {
		if it.Err != nil {
			fmt.Fprintf(w, "- [FAIL] #%d %s\n  error: %s\n", it.Index, gs1.Display(it.Payload), batchErrorText(it.Err))
			continue
		}
		fmt.Fprintf(w, "- [OK]   #%d %s\n  saved: %s\n", it.Index, gs1.Display(it.Payload), it.Location)
	}

	fails := countBatchFailures(items)
	fmt.Fprintf(w, "\n%d ok / %d failed\n", len(items)-fails, fails)
}

func batchErrorText(err error) string {
	var fe *domain.ExportFailedError
	if errors.As(err, &fe) {
		return fmt.Sprintf("server returned %d: %s", fe.Status, fe.Summary())
	}
	return err.Error()
}

func countBatchFailures(items []usecase.BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
