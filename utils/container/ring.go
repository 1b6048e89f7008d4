package container

// Ring 固定容量的环形缓冲区
// 功能：保存最近写入的Cap()个元素，写满后覆盖最旧的元素
// 说明：值拷贝会共享底层存储，需要独立副本时使用Clone
type Ring[T any] struct {
	data []T // 底层存储，按槽位顺序
	head int // 下一次写入的槽位
	n    int // 已写入的元素数（不超过容量）
}

// NewRing 创建容量为capacity的环形缓冲区，所有槽位初始化为零值
func NewRing[T any](capacity int) Ring[T] {
	if capacity <= 0 {
		panic("container: ring capacity must be positive")
	}
	return Ring[T]{data: make([]T, capacity)}
}

// Push 写入一个元素并推进写指针
func (r *Ring[T]) Push(v T) {
	r.data[r.head] = v
	r.head++
	if r.head == len(r.data) {
		r.head = 0
	}
	if r.n < len(r.data) {
		r.n++
	}
}

// Head 下一次写入的槽位
func (r Ring[T]) Head() int {
	return r.head
}

// Len 已写入的元素数
func (r Ring[T]) Len() int {
	return r.n
}

// Cap 容量
func (r Ring[T]) Cap() int {
	return len(r.data)
}

// Slots 按槽位顺序返回全部元素的副本（包含未写入的零值槽位）
func (r Ring[T]) Slots() []T {
	out := make([]T, len(r.data))
	copy(out, r.data)
	return out
}

// Values 按写入顺序（从旧到新）返回已写入的元素
func (r Ring[T]) Values() []T {
	out := make([]T, 0, r.n)
	start := r.head - r.n
	if start < 0 {
		start += len(r.data)
	}
	for i := 0; i < r.n; i++ {
		out = append(out, r.data[(start+i)%len(r.data)])
	}
	return out
}

// Last 最近写入的元素，尚未写入时返回零值与false
func (r Ring[T]) Last() (v T, ok bool) {
	if r.n == 0 {
		return
	}
	i := r.head - 1
	if i < 0 {
		i += len(r.data)
	}
	return r.data[i], true
}

// Clone 返回不共享底层存储的副本
func (r Ring[T]) Clone() Ring[T] {
	c := r
	c.data = r.Slots()
	return c
}
