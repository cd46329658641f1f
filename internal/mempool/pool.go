// Package mempool provides sized pools for the scratch buffers of the image
// processing hot paths.
package mempool

import "sync"

var (
	float64Pools sync.Map // key: size class (int), value: *sync.Pool
	boolPools    sync.Map // key: size class (int), value: *sync.Pool
)

// sizeClass rounds n up to the next multiple of 1024 to reduce churn.
func sizeClass(n int) int {
	const step = 1024
	if n <= step {
		return step
	}
	return (n + step - 1) / step * step
}

// GetFloat64 retrieves a []float64 buffer of at least n elements. The
// returned slice has length n but may have larger capacity and arbitrary
// contents. The caller must return it via PutFloat64 when done.
func GetFloat64(n int) []float64 {
	cls := sizeClass(n)
	pAny, _ := float64Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float64, cls) }})
	buf, ok := pAny.(*sync.Pool).Get().([]float64)
	if !ok || cap(buf) < n {
		buf = make([]float64, cls)
	}
	return buf[:n]
}

// PutFloat64 returns a buffer to the pool. Safe to pass a nil slice.
func PutFloat64(buf []float64) {
	if buf == nil {
		return
	}
	buf = buf[:cap(buf)]
	cls := sizeClass(len(buf))
	pAny, _ := float64Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float64, cls) }})
	pAny.(*sync.Pool).Put(buf)
}

// GetBool retrieves a zeroed []bool buffer of at least n elements. The
// caller must return it via PutBool when done.
func GetBool(n int) []bool {
	cls := sizeClass(n)
	pAny, _ := boolPools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]bool, cls) }})
	buf, ok := pAny.(*sync.Pool).Get().([]bool)
	if !ok || cap(buf) < n {
		buf = make([]bool, cls)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = false
	}
	return buf
}

// PutBool returns a buffer to the pool. Safe to pass a nil slice.
func PutBool(buf []bool) {
	if buf == nil {
		return
	}
	buf = buf[:cap(buf)]
	cls := sizeClass(len(buf))
	pAny, _ := boolPools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]bool, cls) }})
	pAny.(*sync.Pool).Put(buf)
}
