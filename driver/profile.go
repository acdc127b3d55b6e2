package driver

import (
	"regexp"
	"time"
)

type (
	Platform  string
	ModeKind  string
	ErrorKind string
)

const (
	PlatformCiscoIOS   Platform = "cisco_ios"
	PlatformHuaweiVRP  Platform = "huawei_vrp"
	PlatformH3CComware Platform = "h3c_comware"
	PlatformRuijieOS   Platform = "ruijie_os"
	PlatformArubaOS    Platform = "aruba_os"
)

const (
	ModeUnprivileged     ModeKind = "unprivileged"
	ModePrivileged       ModeKind = "privileged"
	ModeConfiguration    ModeKind = "configuration"
	ModeSubConfiguration ModeKind = "sub_configuration"
)

// 命令级错误分类，由 Profile 的错误签名驱动
const (
	ErrorKindSyntax             ErrorKind = "syntax"
	ErrorKindPermissionDenied   ErrorKind = "permission_denied"
	ErrorKindUnsupportedCommand ErrorKind = "unsupported_command"
)

// Mode 设备当前的权限/配置上下文。Context 仅在 ModeSubConfiguration
// 下有意义，如 "GigabitEthernet0/1"。
type Mode struct {
	Kind    ModeKind
	Context string
}

func (m Mode) String() string {
	if m.Kind == ModeSubConfiguration && m.Context != "" {
		return string(m.Kind) + "(" + m.Context + ")"
	}
	return string(m.Kind)
}

// Transition 模式转换表的键：(当前模式, 目标模式)
type Transition struct {
	From ModeKind
	To   ModeKind
}

// ErrorSignature 厂商错误签名。按声明顺序匹配，先匹配先生效。
type ErrorSignature struct {
	Pattern *regexp.Regexp
	Kind    ErrorKind
}

// CommandSet 各命令族对应的厂商命令。Ping/Traceroute/SubConfigEnter
// 是 fmt 模板，带一个 %s 占位符。DisablePagination 为空表示该厂商
// 无此命令，会话建立时跳过。
type CommandSet struct {
	DisablePagination string
	Version           string
	LogBuffer         string
	Ping              string
	Traceroute        string
	SubConfigEnter    string
	SubConfigExit     string
}

// Profile 厂商能力定义（不可变）。一个平台一个值，注册后由所有
// 会话按引用共享，禁止修改。
type Profile struct {
	Platform Platform

	// 各模式下的提示符模式，匹配输出缓冲区的最后一行
	Prompts map[ModeKind]*regexp.Regexp

	// 分页提示模式及续页按键（不带换行符下发）
	MorePrompt    *regexp.Regexp
	MoreKeystroke string

	// 模式转换命令表。未定义的边不可达。
	Transitions map[Transition]string

	// enable/super 升权交互：命令下发后设备可能要求输入口令
	EnableCommand  string
	PasswordPrompt *regexp.Regexp

	// 错误签名，顺序即匹配顺序
	ErrorSignatures []ErrorSignature

	Encoding Encoding
	Commands CommandSet

	// ReadTimeout 单次读等待上限（无新数据视为超时）
	// CommandTimeout 单条命令的总时限
	ReadTimeout    time.Duration
	CommandTimeout time.Duration
}

// Prompt returns the prompt pattern for the given mode kind.
// SubConfiguration falls back to the configuration prompt when the
// platform does not declare a dedicated one.
func (p *Profile) Prompt(kind ModeKind) *regexp.Regexp {
	if re, ok := p.Prompts[kind]; ok {
		return re
	}
	if kind == ModeSubConfiguration {
		return p.Prompts[ModeConfiguration]
	}
	return nil
}

// TransitionCommand looks up the vendor command for a mode pair.
func (p *Profile) TransitionCommand(from, to ModeKind) (string, bool) {
	cmd, ok := p.Transitions[Transition{From: from, To: to}]
	return cmd, ok
}
