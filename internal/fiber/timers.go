package fiber

// timerHeap is a min-heap of sleeping tasks ordered by wake-up time, with
// sleep order breaking ties.
type timerHeap []*Task

func (h timerHeap) Len() int {
	return len(h)
}

func (h timerHeap) Less(i, j int) bool {
	if h[i].wakeAt.Equal(h[j].wakeAt) {
		return h[i].sleepSeq < h[j].sleepSeq
	}
	return h[i].wakeAt.Before(h[j].wakeAt)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

// Push inserts a task. This is intended to meet the heap.Interface contract.
func (h *timerHeap) Push(x any) {
	t, ok := x.(*Task)
	if !ok {
		panic("timerHeap.Push: invalid type assertion")
	}
	t.index = len(*h)
	*h = append(*h, t)
}

// Pop removes the last task. This is intended to meet the heap.Interface contract.
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
