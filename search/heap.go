package search

import "container/heap"

// entry is one frontier slot. tie orders equal keys; pos is the slot's
// current heap index, -1 once popped.
type entry struct {
	cell int
	key  float64
	tie  int
	pos  int
}

// frontier is an indexed min-heap on (key, tie).
type frontier []*entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].key != f[j].key {
		return f[i].key < f[j].key
	}
	return f[i].tie < f[j].tie
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].pos = i
	f[j].pos = j
}

// Push implements heap.Interface.
func (f *frontier) Push(x any) {
	e := x.(*entry)
	e.pos = len(*f)
	*f = append(*f, e)
}

// Pop implements heap.Interface.
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.pos = -1
	*f = old[:n-1]
	return e
}

// update lowers the key of e and restores heap order.
func (f *frontier) update(e *entry, key float64) {
	e.key = key
	heap.Fix(f, e.pos)
}
