package mines

// cellQueue is a FIFO of cell indices threaded through a next slice sized to
// the board. An index must not be pushed while it is still queued.
type cellQueue struct {
	next       []int
	head, tail int
}

func newCellQueue(size int) *cellQueue {
	return &cellQueue{next: make([]int, size), head: -1, tail: -1}
}

func (q *cellQueue) push(i int) {
	if q.tail >= 0 {
		q.next[q.tail] = i
	} else {
		q.head = i
	}
	q.tail = i
	q.next[i] = -1
}

func (q *cellQueue) pop() (int, bool) {
	if q.head < 0 {
		return -1, false
	}
	i := q.head
	q.head = q.next[i]
	if q.head < 0 {
		q.tail = -1
	}
	return i, true
}
