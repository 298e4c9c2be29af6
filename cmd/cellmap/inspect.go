package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/forestrie/go-cellmap/boc"
)

func inspectCommand() *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "inspect <boc-file>",
		Short: "Print the cell tree of a bag-of-cells file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			root, err := boc.Deserialize(data)
			if err != nil {
				return err
			}
			log.Info().
				Str("file", args[0]).
				Str("size", humanize.Bytes(uint64(len(data)))).
				Msg("loaded bag of cells")

			printCell(root, 0, maxDepth)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 16, "stop descending after this many levels")
	return cmd
}

func printCell(c *boc.Cell, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)
	hash := c.Hash()

	kind := ""
	if c.IsExotic() {
		kind = " pruned"
	}
	bits := c.Bits().String()
	if len(bits) > 64 {
		bits = bits[:64] + "…"
	}
	fmt.Printf("%s%x%s bits=%d refs=%d %s\n", indent, hash[:8], kind, c.BitLen(), c.RefCount(), bits)

	if depth >= maxDepth {
		if c.RefCount() > 0 {
			fmt.Printf("%s  …\n", indent)
		}
		return
	}
	for i := 0; i < c.RefCount(); i++ {
		printCell(c.Ref(i), depth+1, maxDepth)
	}
}
