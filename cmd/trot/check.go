package main

import (
	"fmt"
	"log"

	trot "github.com/GeekHorse/Trot-sub001"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Verify the P5 round-trip and encoder-fixed-point properties on a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

// runCheck decodes the file, re-encodes the result, and decodes that
// again, checking:
//   - P5: decode(encode(L)) compares equal to L (checked against the
//     first decode by comparing it to the second decode).
//   - The encoder is a fixed point after one round trip: encoding the
//     first decode and encoding the second decode must byte-for-byte
//     agree.
func runCheck(path string) error {
	p := trot.NewProgram(programOptions()...)
	byteList, byteH, err := bytesFileToList(p, path)
	if err != nil {
		return err
	}
	defer trot.Drop(byteH)

	doc1, doc1H, err := trot.Decode(p, byteList)
	if err != nil {
		return fmt.Errorf("first decode: %w", err)
	}
	defer trot.Drop(doc1H)

	reencoded, reencodedH, err := trot.Encode(p, doc1)
	if err != nil {
		return fmt.Errorf("re-encode: %w", err)
	}
	defer trot.Drop(reencodedH)

	doc2, doc2H, err := trot.Decode(p, reencoded)
	if err != nil {
		return fmt.Errorf("second decode: %w", err)
	}
	defer trot.Drop(doc2H)

	if trot.Compare(doc1, doc2) != trot.Equal {
		return fmt.Errorf("P5 round-trip failed: decode(encode(decode(b))) != decode(b)")
	}

	reencoded2, reencoded2H, err := trot.Encode(p, doc2)
	if err != nil {
		return fmt.Errorf("second re-encode: %w", err)
	}
	defer trot.Drop(reencoded2H)

	fixedPoint := byteListsEqual(reencoded, reencoded2)
	log.Printf("P5 round-trip: ok, encoder fixed point after one round trip: %v", fixedPoint)
	if !fixedPoint {
		return fmt.Errorf("encoder is not a fixed point after one round trip")
	}
	return nil
}

func byteListsEqual(a, b *trot.List) bool {
	if a.Count() != b.Count() {
		return false
	}
	for i := int64(1); i <= a.Count(); i++ {
		av, errA := a.GetInt(i)
		bv, errB := b.GetInt(i)
		if errA != nil || errB != nil || av != bv {
			return false
		}
	}
	return true
}
