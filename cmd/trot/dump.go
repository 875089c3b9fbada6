package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	trot "github.com/GeekHorse/Trot-sub001"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a Trot text document and pretty-print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func runDump(path string) error {
	p := trot.NewProgram(programOptions()...)
	byteList, byteH, err := bytesFileToList(p, path)
	if err != nil {
		return err
	}
	defer trot.Drop(byteH)

	log.Printf("decoding %s (%d bytes)", path, byteList.Count())
	doc, docH, err := trot.Decode(p, byteList)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	defer trot.Drop(docH)

	dumpList(os.Stdout, doc, 0)
	return nil
}

func dumpList(w io.Writer, l *trot.List, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%slist type=%d tag=%d count=%d [\n", indent, l.Type(), l.Tag(), l.Count())
	for i := int64(1); i <= l.Count(); i++ {
		kind, err := l.GetKind(i)
		if err != nil {
			fmt.Fprintf(w, "%s  <error: %v>\n", indent, err)
			continue
		}
		if kind == trot.KindInt {
			v, _ := l.GetInt(i)
			fmt.Fprintf(w, "%s  %d\n", indent, v)
			continue
		}
		child, err := l.GetList(i)
		if err != nil {
			fmt.Fprintf(w, "%s  <error: %v>\n", indent, err)
			continue
		}
		dumpList(w, child.Target(), depth+1)
		trot.Drop(child)
	}
	fmt.Fprintf(w, "%s]\n", indent)
}

func bytesFileToList(p *trot.Program, path string) (*trot.List, *trot.Ref, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	l, h, err := trot.Init(p)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range raw {
		if err := l.AppendInt(trot.Int(b)); err != nil {
			trot.Drop(h)
			return nil, nil, err
		}
	}
	return l, h, nil
}
