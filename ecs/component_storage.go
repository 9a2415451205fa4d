package ecs

import "fmt"

// componentStorage is a type-erased column of one component type inside an archetype.
type componentStorage interface {
	Append(item any) int
	Get(index int) any
	Has(index int) bool
	Len() int
}

const blockSize = 64

// denseStorage stores components of type T in fixed-size blocks so that
// pointers handed out by Get stay valid as the column grows.
type denseStorage[T any] struct {
	blocks []*[blockSize]T
	count  int
}

func unwrap[T any](item any) T {
	switch v := item.(type) {
	case T:
		return v
	case *T:
		return *v
	}
	var zero T
	panic(fmt.Sprintf("component storage for %T cannot hold %T", zero, item))
}

// Append adds a component to storage and returns its index.
func (ds *denseStorage[T]) Append(item any) int {
	value := unwrap[T](item)

	index := ds.count
	blockIdx := index / blockSize
	if blockIdx >= len(ds.blocks) {
		ds.blocks = append(ds.blocks, new([blockSize]T))
	}
	ds.blocks[blockIdx][index%blockSize] = value
	ds.count++
	return index
}

// Get returns a pointer to the component at the given index, or nil.
func (ds *denseStorage[T]) Get(index int) any {
	if !ds.Has(index) {
		return nil
	}
	return &ds.blocks[index/blockSize][index%blockSize]
}

func (ds *denseStorage[T]) Has(index int) bool {
	return index >= 0 && index < ds.count
}

func (ds *denseStorage[T]) Len() int {
	return ds.count
}

// flagStorage records presence of a zero-size tag component as one bit per row.
type flagStorage[T any] struct {
	bits  []uint64
	count int
	value T
}

func (fs *flagStorage[T]) Append(item any) int {
	unwrap[T](item)

	index := fs.count
	word := index / 64
	if word >= len(fs.bits) {
		fs.bits = append(fs.bits, 0)
	}
	fs.bits[word] |= 1 << (index % 64)
	fs.count++
	return index
}

// Get returns a pointer to the shared zero-size value when the flag is set.
func (fs *flagStorage[T]) Get(index int) any {
	if !fs.Has(index) {
		return nil
	}
	return &fs.value
}

func (fs *flagStorage[T]) Has(index int) bool {
	if index < 0 || index >= fs.count {
		return false
	}
	return fs.bits[index/64]&(1<<(index%64)) != 0
}

func (fs *flagStorage[T]) Len() int {
	return fs.count
}
