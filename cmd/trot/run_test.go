package main

import (
	"testing"

	trot "github.com/GeekHorse/Trot-sub001"
	"github.com/stretchr/testify/require"
)

func TestExecLineBuildsAndCombinesLists(t *testing.T) {
	p := trot.NewProgram()
	labels := map[string]*trot.Ref{}

	script := []string{
		"NEW root",
		"NEW child",
		"APPEND_INT root 10",
		"APPEND_INT child 3",
		"APPEND_INT child 4",
		"APPEND_LIST root child",
		"OP child ADD",
	}
	for _, line := range script {
		require.NoError(t, execLine(p, labels, line))
	}

	root := labels["root"].Target()
	require.Equal(t, int64(2), root.Count())

	v, err := root.GetInt(1)
	require.NoError(t, err)
	require.Equal(t, trot.Int(10), v)

	kind, err := root.GetKind(2)
	require.NoError(t, err)
	require.Equal(t, trot.KindList, kind)

	childHandle, err := root.GetList(2)
	require.NoError(t, err)
	defer trot.Drop(childHandle)

	childVal, err := childHandle.Target().GetInt(1)
	require.NoError(t, err)
	require.Equal(t, trot.Int(7), childVal)
}

func TestExecLineUndefinedLabel(t *testing.T) {
	p := trot.NewProgram()
	labels := map[string]*trot.Ref{}
	err := execLine(p, labels, "APPEND_INT ghost 1")
	require.Error(t, err)
}

func TestExecLineUnknownInstruction(t *testing.T) {
	p := trot.NewProgram()
	labels := map[string]*trot.Ref{}
	err := execLine(p, labels, "FROBNICATE x")
	require.Error(t, err)
}
