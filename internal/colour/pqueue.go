package colour

import (
	"cmp"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// boxPriority ranks boxes in a boxQueue; larger values pop first.
type boxPriority func(*VBox) int

// byPopulation ranks boxes by pixel count alone.
func byPopulation(v *VBox) int {
	return v.Count()
}

// byPopulationVolume ranks boxes by pixel count times size in colour space.
func byPopulationVolume(v *VBox) int {
	return v.Count() * v.Volume()
}

// boxQueue is a max-heap of boxes parameterized by a priority function.
type boxQueue struct {
	heap *binaryheap.Heap
}

func newBoxQueue(priority boxPriority) *boxQueue {
	return &boxQueue{
		heap: binaryheap.NewWith(func(a, b interface{}) int {
			// binaryheap pops the smallest element, so compare in reverse.
			return cmp.Compare(priority(b.(*VBox)), priority(a.(*VBox)))
		}),
	}
}

func (q *boxQueue) push(boxes ...*VBox) {
	for _, box := range boxes {
		q.heap.Push(box)
	}
}

// pop removes and returns the highest ranked box.
func (q *boxQueue) pop() (*VBox, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return nil, false
	}
	return v.(*VBox), true
}

func (q *boxQueue) size() int {
	return q.heap.Size()
}

// drain empties the queue, returning boxes in pop order.
func (q *boxQueue) drain() []*VBox {
	boxes := make([]*VBox, 0, q.size())
	for {
		box, ok := q.pop()
		if !ok {
			return boxes
		}
		boxes = append(boxes, box)
	}
}
