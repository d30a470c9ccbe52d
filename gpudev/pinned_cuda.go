//go:build (linux || windows) && cgo && cuda

// Package gpudev provides the device-resident pieces of the streaming RRR
// set generator: the CSR graph mirror, the GPU-LT mask buffer and the
// GPU-IC predecessor buffer, plus their host-side pinned staging areas.
package gpudev

/*
#cgo LDFLAGS: -lcudart

#include <cuda_runtime.h>

void* rrrgen_host_alloc(size_t size) {
    void* ptr = NULL;
    cudaHostAlloc(&ptr, size, cudaHostAllocDefault);
    return ptr;
}

void rrrgen_host_free(void* ptr) {
    if (ptr != NULL) {
        cudaFreeHost(ptr);
    }
}
*/
import "C"
import "unsafe"

// pinnedBuffer is host memory allocated with cudaHostAlloc. It holds the
// staged roots of one GPU-LT batch (see LTSession and LTBatch).
type pinnedBuffer struct {
	ptr  unsafe.Pointer
	size int
}

func newPinnedBuffer(size int) *pinnedBuffer {
	if size <= 0 {
		return nil
	}
	ptr := C.rrrgen_host_alloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	return &pinnedBuffer{ptr: ptr, size: size}
}

func (pb *pinnedBuffer) free() {
	if pb == nil || pb.ptr == nil {
		return
	}
	C.rrrgen_host_free(pb.ptr)
	pb.ptr = nil
}

func (pb *pinnedBuffer) bytes() []byte {
	if pb == nil || pb.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(pb.ptr), pb.size)
}
