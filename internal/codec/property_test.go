package codec

import (
	"testing"

	"github.com/GeekHorse/Trot-sub001/internal/hooflist"
	"github.com/GeekHorse/Trot-sub001/internal/program"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNestedSharedChild(t *testing.T) {
	p := program.New()
	shared, sharedH, err := hooflist.NewList(p)
	require.NoError(t, err)
	require.NoError(t, shared.AppendInt(99))

	parent, parentH, err := hooflist.NewList(p)
	require.NoError(t, err)
	defer hooflist.Drop(parentH)

	require.NoError(t, parent.AppendList(sharedH))
	require.NoError(t, parent.AppendList(sharedH))
	hooflist.Drop(sharedH)

	byteList, byteH, err := Encode(p, parent)
	require.NoError(t, err)
	defer hooflist.Drop(byteH)

	decoded, decodedH, err := Decode(p, byteList)
	require.NoError(t, err)
	defer hooflist.Drop(decodedH)

	require.Equal(t, int64(2), decoded.Count())
	first, err := decoded.GetList(1)
	require.NoError(t, err)
	defer hooflist.Drop(first)
	second, err := decoded.GetList(2)
	require.NoError(t, err)
	defer hooflist.Drop(second)

	require.True(t, hooflist.RefCompare(first, second), "decoding should preserve sharing, not duplicate the shared child")
	require.Equal(t, hooflist.Equal, hooflist.Compare(parent, decoded))
}
