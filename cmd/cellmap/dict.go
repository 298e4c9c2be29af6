package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/forestrie/go-cellmap/boc"
	"github.com/forestrie/go-cellmap/hashmap"
)

func dictCommand() *cobra.Command {
	var (
		keyBits int
		rawRoot bool
	)
	cmd := &cobra.Command{
		Use:   "dict <boc-file>",
		Short: "Decode the dictionary in a bag-of-cells file and print its entries",
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

			pruned := 0
			d, err := hashmap.New[uint64, *boc.Slice](
				keyBits,
				hashmap.UintCodec{Bits: keyBits},
				hashmap.SliceCodec{},
				hashmap.WithPrunedHook(func(prefix boc.BitString, _ *boc.Cell) {
					pruned++
					log.Warn().Str("prefix", prefix.String()).Msg("pruned subtree skipped")
				}),
			)
			if err != nil {
				return err
			}

			var m map[uint64]*boc.Slice
			if rawRoot {
				m, err = d.LoadRoot(root.BeginParse())
			} else {
				m, err = d.Load(root.BeginParse())
			}
			if err != nil {
				return err
			}

			keys := make([]uint64, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
			for _, k := range keys {
				v := m[k]
				fmt.Printf("%d\t(%d bits, %d refs)\n", k, v.RemainingBits(), v.RemainingRefs())
			}
			log.Info().Int("entries", len(m)).Int("pruned", pruned).Msg("dictionary decoded")
			return nil
		},
	}
	cmd.Flags().IntVar(&keyBits, "key-bits", 64, "dictionary key width in bits (max 64 for this tool)")
	cmd.Flags().BoolVar(&rawRoot, "root", false, "treat the root cell as a raw Hashmap root without the HashmapE envelope")
	return cmd
}
