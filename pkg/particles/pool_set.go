package particles

import (
	"fmt"

	"github.com/decker502/orbcatch/pkg/types"
)

// PoolSet 每种元素类型一个粒子池
type PoolSet struct {
	pools [types.NumElementTypes]*Pool
}

// NewPoolSet 由各元素类型的粒子池组成集合
//
// 每种元素类型必须恰好提供一个池。
func NewPoolSet(pools ...*Pool) (*PoolSet, error) {
	set := &PoolSet{}
	for _, p := range pools {
		if p == nil {
			return nil, fmt.Errorf("nil particle pool")
		}
		idx := p.Element().Index()
		if set.pools[idx] != nil {
			return nil, fmt.Errorf("duplicate particle pool for element %s", p.Element())
		}
		set.pools[idx] = p
	}
	for i, p := range set.pools {
		if p == nil {
			return nil, fmt.Errorf("missing particle pool for element %s", types.ElementType(i))
		}
	}
	return set, nil
}

// Pool 返回指定元素类型的粒子池，越界时 panic
func (s *PoolSet) Pool(element types.ElementType) *Pool {
	return s.pools[element.Index()]
}

// Emit 向匹配元素类型的池发射粒子，返回实际激活数
func (s *PoolSet) Emit(pos types.Vec2, count int, element types.ElementType) int {
	return s.Pool(element).Emit(pos, count)
}

// Advance 推进所有池
func (s *PoolSet) Advance(dt float64) {
	for _, p := range s.pools {
		p.Advance(dt)
	}
}

// ActiveCount 返回所有池的活跃粒子总数
func (s *PoolSet) ActiveCount() int {
	total := 0
	for _, p := range s.pools {
		total += p.ActiveCount()
	}
	return total
}

// Clear 清空所有池
func (s *PoolSet) Clear() {
	for _, p := range s.pools {
		p.Clear()
	}
}
