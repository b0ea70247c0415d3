package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
	"github.com/vango-dev/mkdom/pkg/middleware"
	"github.com/vango-dev/mkdom/pkg/rodhost"
	"github.com/vango-dev/mkdom/pkg/script"
	"github.com/vango-dev/mkdom/pkg/store"
)

func browseCmd(opts *options) *cobra.Command {
	var (
		url        string
		scriptPath string
		selector   string
		out        string
		show       bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Run a script against a live page in a browser",
		Long: `Open a page in a browser and run a script or query against the
live DOM. The resulting markup can be saved with --out.

Examples:
  mkdom browse --url https://example.com --selector a
  mkdom browse --url http://localhost:3000 --script ops.yaml --out snap.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if url == "" {
				return errors.New("E140").WithDetail("--url is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.BrowserTimeout())
			defer cancel()

			doc, err := rodhost.Open(ctx, rodhost.Config{
				ControlURL:       opts.cfg.Browser.ControlURL,
				Bin:              opts.cfg.Browser.Bin,
				Headless:         opts.cfg.Browser.Headless && !show,
				URL:              url,
				WithoutClassList: opts.cfg.Host.ForceClassAttr,
				Logger:           opts.logger,
			})
			if err != nil {
				return err
			}
			defer doc.Close()

			dom := middleware.Logging(doc, opts.logger)

			if scriptPath != "" {
				sc, err := script.ParseFile(scriptPath)
				if err != nil {
					return err
				}
				report, err := script.NewRunner(script.WithLogger(opts.logger)).Run(ctx, dom, sc)
				if err != nil {
					return err
				}
				success(w, "%d steps, %d elements", len(report.Steps), report.Affected())
			}

			if selector != "" {
				c := mkdom.All(dom, selector)
				if err := c.Err(); err != nil {
					return err
				}
				success(w, "%d elements match %s", c.Len(), selector)
			}

			if out != "" {
				markup, err := doc.HTML()
				if err != nil {
					return err
				}
				st, key, err := store.Open(ctx, opts.cfg.StoragePath(out), opts.s3Config())
				if err != nil {
					return err
				}
				if err := st.Save(ctx, key, []byte(markup)); err != nil {
					return err
				}
				success(w, "Saved to %s", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Page to open")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Script to run against the page")
	cmd.Flags().StringVar(&selector, "selector", "", "Print the number of matching elements")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Save the resulting markup (path or s3://bucket/key)")
	cmd.Flags().BoolVar(&show, "show", false, "Show the browser window")

	return cmd
}
