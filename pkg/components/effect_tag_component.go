package components

// EffectTagComponent 记录粒子来自哪一次效果触发
//
// 同一次 TriggerEffect 产生的粒子（包括延迟波次）共享 Invocation。
// Index 是粒子在该次触发中的创建序号。
type EffectTagComponent struct {
	Effect     string
	Invocation uint64
	Index      int
}
