package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mkdom"
)

func queryCmd(opts *options) *cobra.Command {
	var (
		in     string
		count  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query <selector>",
		Short: "Print the elements matching a selector",
		Long: `Print the outer HTML of every element matching a CSS selector.

Examples:
  mkdom query --in page.html "ul > li.active"
  mkdom query --in s3://site/index.html --count a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			doc, err := opts.loadDocument(cmd.Context(), in)
			if err != nil {
				return err
			}

			c := mkdom.All(doc, args[0])
			if err := c.Err(); err != nil {
				return err
			}

			if count {
				fmt.Fprintln(w, c.Len())
				return nil
			}
			matches := make([]string, 0, c.Len())
			c.Each(func(n mkdom.Node) {
				matches = append(matches, doc.OuterHTML(n))
			})
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			for _, m := range matches {
				fmt.Fprintln(w, m)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Input document (path or s3://bucket/key)")
	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of matches")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matches as a JSON array")
	cmd.MarkFlagRequired("in")

	return cmd
}
