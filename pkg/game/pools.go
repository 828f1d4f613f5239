package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/particles"
	"github.com/decker502/orbcatch/pkg/types"
)

// NewParticlePools 按配置为每种元素创建一个固定容量的粒子池
//
// 所有池共用传入的随机数生成器。
func NewParticlePools(cfg *config.GameplayConfig, rng *rand.Rand) (*particles.PoolSet, error) {
	pools := make([]*particles.Pool, 0, types.NumElementTypes)
	for _, e := range types.AllElementTypes() {
		pc := cfg.ElementParticles(e)
		pools = append(pools, particles.NewPool(e, pc.Capacity, cfg.ParticleProfile(e), cfg.ParticleTuning(), pc.Texture, rng))
	}
	set, err := particles.NewPoolSet(pools...)
	if err != nil {
		return nil, fmt.Errorf("failed to create particle pools: %w", err)
	}
	return set, nil
}

// ParticleLayers 按元素顺序收集各池的活跃粒子
func ParticleLayers(pools *particles.PoolSet) [types.NumElementTypes]ParticleLayer {
	var layers [types.NumElementTypes]ParticleLayer
	for _, e := range types.AllElementTypes() {
		pool := pools.Pool(e)
		layers[e.Index()] = ParticleLayer{
			Element:   e,
			Texture:   pool.Texture(),
			Particles: pool.AppendViews(nil),
		}
	}
	return layers
}
