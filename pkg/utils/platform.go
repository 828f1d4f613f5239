//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 "1" 时桌面端也按移动端处理（触屏提示、不响应 F11）
const MobileEmulateEnv = "ORBCATCH_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，除非设置了 MobileEmulateEnv
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
