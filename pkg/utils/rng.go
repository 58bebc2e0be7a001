package utils

// RNG 可注入、可复现的 xorshift64 伪随机数生成器
// 所有出现随机性的地方（刷新位置、禁用概率、随机落点）都从这里取数，
// 相同种子得到完全相同的序列。
type RNG struct {
	seed  uint64
	state uint64
}

// NewRNG 创建随机数生成器，种子 0 会被替换为 1（xorshift 不能从 0 开始）
func NewRNG(seed uint64) *RNG {
	r := &RNG{}
	r.Reseed(seed)
	return r
}

// Reseed 重置种子
func (r *RNG) Reseed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	r.seed = seed
	r.state = seed
}

// Seed 返回当前使用的种子
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Next 返回下一个 64 位随机数
func (r *RNG) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Intn 返回 [0, n) 内的随机整数，n <= 0 时返回 0
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Range 返回 [min, max) 内的随机整数，区间为空时返回 min
func (r *RNG) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min)
}

// Chance 以 percent% 的概率返回 true
func (r *RNG) Chance(percent int) bool {
	return r.Intn(100) < percent
}

// Bool 返回随机布尔值
func (r *RNG) Bool() bool {
	return r.Next()&1 == 1
}
