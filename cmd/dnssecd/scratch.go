package main

// heapScratchAllocator satisfies ports.ScratchAllocator by handing out a
// fresh heap-allocated slice per call. The core's scratch buffer is
// request-scoped; a long-running service has no per-request arena of
// its own to lend, so a plain allocation per verification call is the
// straightforward adaptation of that contract here.
type heapScratchAllocator struct{}

func newHeapScratchAllocator() heapScratchAllocator { return heapScratchAllocator{} }

func (heapScratchAllocator) Alloc(n int) []byte {
	return make([]byte, n)
}
