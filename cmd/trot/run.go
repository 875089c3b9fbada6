package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	trot "github.com/GeekHorse/Trot-sub001"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a line-oriented Trot instruction script",
		Long: `run executes a small instruction language invented purely to drive
the library end to end from the command line; it is not part of Trot's
data model. Each line is one of:

  NEW <label>
  APPEND_INT <label> <value>
  APPEND_LIST <label> <childLabel>
  ENLIST <label> <start> <end>
  DELIST <label> <index>
  OP <label> <opcode>
  PRINT <label>

Blank lines and lines starting with # are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0])
		},
	}
}

var opcodes = map[string]trot.Opcode{
	"ADD": trot.OpAdd, "SUB": trot.OpSub, "MUL": trot.OpMul, "DIV": trot.OpDiv,
	"MOD": trot.OpMod, "NEG": trot.OpNeg, "AND": trot.OpAnd, "OR": trot.OpOr,
	"NOT": trot.OpNot, "LT": trot.OpLt, "GT": trot.OpGt, "EQ": trot.OpEq,
}

func runScript(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	p := trot.NewProgram(programOptions()...)
	labels := map[string]*trot.Ref{}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(p, labels, line); err != nil {
			return fmt.Errorf("line %d: %s: %w", lineNo, line, err)
		}
	}
	return scanner.Err()
}

func execLine(p *trot.Program, labels map[string]*trot.Ref, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	lookup := func(label string) (*trot.Ref, error) {
		h, ok := labels[label]
		if !ok {
			return nil, fmt.Errorf("undefined label %q", label)
		}
		return h, nil
	}

	switch fields[0] {
	case "NEW":
		if len(fields) != 2 {
			return fmt.Errorf("NEW requires exactly one label")
		}
		_, h, err := trot.Init(p)
		if err != nil {
			return err
		}
		labels[fields[1]] = h
		return nil

	case "APPEND_INT":
		if len(fields) != 3 {
			return fmt.Errorf("APPEND_INT requires a label and a value")
		}
		h, err := lookup(fields[1])
		if err != nil {
			return err
		}
		v, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return fmt.Errorf("bad int value %q: %w", fields[2], err)
		}
		return h.Target().AppendInt(trot.Int(v))

	case "APPEND_LIST":
		if len(fields) != 3 {
			return fmt.Errorf("APPEND_LIST requires a label and a child label")
		}
		h, err := lookup(fields[1])
		if err != nil {
			return err
		}
		child, err := lookup(fields[2])
		if err != nil {
			return err
		}
		return h.Target().AppendList(child)

	case "ENLIST":
		if len(fields) != 4 {
			return fmt.Errorf("ENLIST requires a label, start, and end")
		}
		h, err := lookup(fields[1])
		if err != nil {
			return err
		}
		start, err1 := strconv.ParseInt(fields[2], 10, 64)
		end, err2 := strconv.ParseInt(fields[3], 10, 64)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("bad start/end in ENLIST")
		}
		return h.Target().Enlist(start, end)

	case "DELIST":
		if len(fields) != 3 {
			return fmt.Errorf("DELIST requires a label and an index")
		}
		h, err := lookup(fields[1])
		if err != nil {
			return err
		}
		idx, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("bad index in DELIST")
		}
		return h.Target().Delist(idx)

	case "OP":
		if len(fields) != 3 {
			return fmt.Errorf("OP requires a label and an opcode")
		}
		h, err := lookup(fields[1])
		if err != nil {
			return err
		}
		op, ok := opcodes[fields[2]]
		if !ok {
			return fmt.Errorf("unknown opcode %q", fields[2])
		}
		return trot.IntOperatorApply(h.Target(), op)

	case "PRINT":
		if len(fields) != 2 {
			return fmt.Errorf("PRINT requires a label")
		}
		h, err := lookup(fields[1])
		if err != nil {
			return err
		}
		dumpList(os.Stdout, h.Target(), 0)
		return nil

	default:
		return fmt.Errorf("unknown instruction %q", fields[0])
	}
}

func programOptions() []trot.ProgramOption {
	var opts []trot.ProgramOption
	if memLimit > 0 {
		opts = append(opts, trot.WithMemLimit(memLimit))
	}
	if nodeSize > 0 {
		opts = append(opts, trot.WithNodeSize(nodeSize))
	}
	return opts
}
