package tools

import "github.com/oracle-demos/randomness-demo/attestation"

// A TriggerHeap is a min-heap of scheduled trigger events, ordered by the
// round they become valid in.
type TriggerHeap []attestation.TriggerEvent

func (h TriggerHeap) Len() int           { return len(h) }
func (h TriggerHeap) Less(i, j int) bool { return h[i].ValidAfterRound < h[j].ValidAfterRound }
func (h TriggerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *TriggerHeap) Push(x interface{}) {
	// Push and Pop use pointer receivers because they modify the slice's length,
	// not just its contents.
	*h = append(*h, x.(attestation.TriggerEvent))
}

func (h *TriggerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
