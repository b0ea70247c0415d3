package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/pkg/middleware"
	"github.com/vango-dev/mkdom/pkg/script"
)

func applyCmd(opts *options) *cobra.Command {
	var (
		in         string
		scriptPath string
		out        string
		dryRun     bool
		stats      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run a script against a document",
		Long: `Run a mutation script against a document and save the result.

The document is written back to --in unless --out is given. With
--dry-run the result is printed instead of saved.

Examples:
  mkdom apply --in page.html --script ops.yaml
  mkdom apply --in s3://site/index.html --script ops.yaml --out out.html
  mkdom apply --in page.html --script ops.yaml --dry-run --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			sc, err := script.ParseFile(scriptPath)
			if err != nil {
				return err
			}
			doc, err := opts.loadDocument(ctx, in)
			if err != nil {
				return err
			}

			var dom mkdom.Document = middleware.Logging(doc, opts.logger)
			registry := prometheus.NewRegistry()
			if stats || opts.cfg.Metrics.Enabled {
				dom = middleware.Metrics(dom,
					middleware.WithRegistry(registry),
					middleware.WithNamespace(opts.cfg.Metrics.Namespace),
				)
			}

			report, err := script.NewRunner(script.WithLogger(opts.logger)).Run(ctx, dom, sc)
			if err != nil {
				return err
			}
			for _, s := range report.Steps {
				info(w, "%2d  %-12s %-24s %d", s.Index, s.Op, s.Target, s.Affected)
			}

			if stats || opts.cfg.Metrics.Enabled {
				if err := printStats(w, registry); err != nil {
					return err
				}
			}

			if dryRun {
				fmt.Fprintln(w, doc.String())
				return nil
			}
			dest := out
			if dest == "" {
				dest = in
			}
			if err := opts.saveDocument(ctx, dest, doc); err != nil {
				return err
			}
			success(w, "%d steps, %d elements, saved to %s", len(report.Steps), report.Affected(), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Input document (path or s3://bucket/key)")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Script file (YAML or JSON)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output location (default: --in)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result instead of saving")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print host call counts")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("script")

	return cmd
}

// printStats writes host call counts gathered from registry.
func printStats(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	counts := make(map[string]float64)
	for _, mf := range families {
		if !strings.HasSuffix(mf.GetName(), "host_calls_total") {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "op" {
					counts[lp.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}

	ops := make([]string, 0, len(counts))
	for op := range counts {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	fmt.Fprintln(w, "host calls:")
	for _, op := range ops {
		info(w, "%-20s %d", op, int(counts[op]))
	}
	return nil
}
