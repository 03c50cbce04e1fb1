package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/pagesmith/internal/blocks"
	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/registry"
)

func newBlocksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "List the available block types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBlocks(a, blocks.NewCatalog())
		},
	}
}

func listBlocks(a *app, catalog *registry.Catalog) error {
	w := tabwriter.NewWriter(a.out.Writer(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tASSETS")
	for _, def := range catalog.Definitions() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.TypeID(), def.Name(), assetKinds(def))
	}
	return w.Flush()
}

func assetKinds(def registry.Definition) string {
	var kinds string
	if css, err := def.CSS(core.Config{}); err == nil && css != "" {
		kinds = "css"
	}
	if js, err := def.JS(core.Config{}); err == nil && js != "" {
		if kinds != "" {
			kinds += ","
		}
		kinds += "js"
	}
	if kinds == "" {
		return "-"
	}
	return kinds
}
