// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// ElementType 定义元素类型（篮子与元素球的匹配依据）
//
// 这是一个封闭枚举，顺序是循环的：Air 的下一个是 Earth。
type ElementType int

const (
	// ElementEarth 土
	ElementEarth ElementType = iota
	// ElementWater 水
	ElementWater
	// ElementFire 火
	ElementFire
	// ElementAir 风
	ElementAir
)

// NumElementTypes 元素类型数量
const NumElementTypes = 4

// AllElementTypes 按循环顺序返回所有元素类型
func AllElementTypes() []ElementType {
	return []ElementType{ElementEarth, ElementWater, ElementFire, ElementAir}
}

// String 返回元素类型的字符串表示
func (e ElementType) String() string {
	switch e {
	case ElementEarth:
		return "earth"
	case ElementWater:
		return "water"
	case ElementFire:
		return "fire"
	case ElementAir:
		return "air"
	default:
		return fmt.Sprintf("element(%d)", int(e))
	}
}

// Valid 检查元素类型是否在枚举范围内
func (e ElementType) Valid() bool {
	return e >= 0 && e < NumElementTypes
}

// Index 返回元素类型作为数组下标的值
//
// 越界意味着程序错误（元素类型总是来自封闭枚举），因此直接 panic。
func (e ElementType) Index() int {
	if !e.Valid() {
		panic(fmt.Sprintf("types: invalid element type %d", int(e)))
	}
	return int(e)
}

// Cycle 按方向循环切换元素类型
// 计算方式：(current + direction + N) mod N
//
// 参数:
//   - direction: +1 下一个，-1 上一个
//
// 返回:
//   - ElementType: 切换后的元素类型，始终在枚举范围内
func (e ElementType) Cycle(direction int) ElementType {
	n := (int(e) + direction%NumElementTypes + NumElementTypes) % NumElementTypes
	return ElementType(n)
}

// ParseElementType 将字符串解析为元素类型（不区分大小写）
func ParseElementType(s string) (ElementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "earth":
		return ElementEarth, nil
	case "water":
		return ElementWater, nil
	case "fire":
		return ElementFire, nil
	case "air":
		return ElementAir, nil
	}
	return 0, fmt.Errorf("unknown element type: %q", s)
}

// UnmarshalText 实现 encoding.TextUnmarshaler，用于 YAML 映射键与命令行参数
func (e *ElementType) UnmarshalText(text []byte) error {
	parsed, err := ParseElementType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (e ElementType) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid element type %d", int(e))
	}
	return []byte(e.String()), nil
}
