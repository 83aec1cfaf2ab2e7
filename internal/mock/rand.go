package mock

import (
	"math/rand/v2"
	"sync"
)

// Rand 生成器使用的随机源，*rand.Rand 即满足
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LockedRand 并发安全的随机源，供所有请求共享
type LockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewLockedRand 创建随机源；seed 为 0 时使用随机种子
func NewLockedRand(seed uint64) *LockedRand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &LockedRand{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *LockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// randInt 返回 [lo, hi] 闭区间内的整数
func randInt(rnd Rand, lo, hi int) int {
	return lo + rnd.IntN(hi-lo+1)
}

// uniform 返回 [lo, hi) 区间内的浮点数
func uniform(rnd Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}

// choice 随机选取一个元素
func choice(rnd Rand, items []string) string {
	return items[rnd.IntN(len(items))]
}
