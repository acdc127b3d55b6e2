package session

import (
	"github.com/charlesren/netcli/driver"
	"github.com/charlesren/ylog"
)

// classify 按 Profile 声明顺序逐条匹配错误签名，先匹配先生效；
// 全部不匹配视为成功。同一语义错误在不同厂商有不同文本，签名到
// 错误码的映射即可移植性接缝。
func classify(profile *driver.Profile, command, output string) *SessionError {
	for _, sig := range profile.ErrorSignatures {
		if loc := sig.Pattern.FindString(output); loc != "" {
			ylog.Debugf("Classifier", "signature matched on %s: kind=%s", profile.Platform, sig.Kind)
			return errCommandRejected(sig.Kind, command, loc)
		}
	}
	return nil
}
