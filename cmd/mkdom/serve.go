package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/mkdom/pkg/htmlhost"
	"github.com/vango-dev/mkdom/pkg/live"
	"github.com/vango-dev/mkdom/pkg/script"
	"github.com/vango-dev/mkdom/pkg/store"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		in   string
		host string
		port int
		save bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a document and apply scripts over HTTP",
		Long: `Serve a document from memory. Scripts POSTed to /ops are applied
and every connected browser on /live receives the new markup.

Examples:
  mkdom serve --in page.html
  mkdom serve --in page.html --save --port 8080
  curl --data-binary @ops.yaml localhost:7070/ops`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				opts.cfg.Server.Port = port
			}
			if host != "" {
				opts.cfg.Server.Host = host
			}
			if err := opts.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			doc := htmlhost.NewDocument(opts.hostOptions()...)
			if in != "" {
				var err error
				if doc, err = opts.loadDocument(ctx, in); err != nil {
					return err
				}
			}

			serverOpts := []live.Option{
				live.WithLogger(opts.logger),
				live.WithRegistry(prometheus.NewRegistry()),
				live.WithRunner(script.NewRunner(script.WithLogger(opts.logger))),
			}
			if save && in != "" {
				st, key, err := store.Open(ctx, opts.cfg.StoragePath(in), opts.s3Config())
				if err != nil {
					return err
				}
				serverOpts = append(serverOpts, live.WithStore(st, key))
			}

			srv := live.New(doc, serverOpts...)
			addr := opts.cfg.ServerAddress()
			success(cmd.OutOrStdout(), "Serving on http://%s", addr)
			info(cmd.OutOrStdout(), "live updates on ws://%s/live", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Document to serve (default: empty document)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from mkdom.json)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from mkdom.json)")
	cmd.Flags().BoolVar(&save, "save", false, "Write the document back to --in after each script")

	return cmd
}
