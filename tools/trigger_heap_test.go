package tools

import (
	"container/heap"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oracle-demos/randomness-demo/attestation"
)

func TestTriggerHeapOrdersByRound(t *testing.T) {
	h := &TriggerHeap{}
	heap.Init(h)

	for _, round := range []uint64{9, 3, 7, 1, 5} {
		heap.Push(h, attestation.TriggerEvent{ID: uuid.New(), ValidAfterRound: round})
	}
	require.Equal(t, 5, h.Len())

	var got []uint64
	for h.Len() > 0 {
		ev := heap.Pop(h).(attestation.TriggerEvent)
		got = append(got, ev.ValidAfterRound)
	}
	require.Equal(t, []uint64{1, 3, 5, 7, 9}, got)
}

func TestTriggerHeapPeekIsMinimum(t *testing.T) {
	h := &TriggerHeap{}
	heap.Init(h)
	heap.Push(h, attestation.TriggerEvent{ValidAfterRound: 4})
	heap.Push(h, attestation.TriggerEvent{ValidAfterRound: 2})

	require.Equal(t, uint64(2), (*h)[0].ValidAfterRound)
}
