package driver

import (
	"regexp"
	"sort"
	"time"
)

const (
	defaultReadTimeout    = 8 * time.Second
	defaultCommandTimeout = 60 * time.Second
)

// Catalog 平台到 Profile 的静态映射。构建后只读，可被多个会话共享。
type Catalog struct {
	profiles map[Platform]*Profile
}

func NewCatalog(profiles ...*Profile) *Catalog {
	c := &Catalog{profiles: make(map[Platform]*Profile, len(profiles))}
	for _, p := range profiles {
		c.profiles[p.Platform] = p
	}
	return c
}

func (c *Catalog) Lookup(platform Platform) (*Profile, bool) {
	p, ok := c.profiles[platform]
	return p, ok
}

func (c *Catalog) Platforms() []Platform {
	out := make([]Platform, 0, len(c.profiles))
	for p := range c.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Default returns the builtin catalog of supported platforms.
func Default() *Catalog {
	return NewCatalog(
		ciscoIOSProfile(),
		huaweiVRPProfile(),
		h3cComwareProfile(),
		ruijieOSProfile(),
		arubaOSProfile(),
	)
}

func ciscoIOSProfile() *Profile {
	return &Profile{
		Platform: PlatformCiscoIOS,
		Prompts: map[ModeKind]*regexp.Regexp{
			ModeUnprivileged:     regexp.MustCompile(`^[\w.-]+> ?$`),
			ModePrivileged:       regexp.MustCompile(`^[\w.-]+# ?$`),
			ModeConfiguration:    regexp.MustCompile(`^[\w.-]+\(config\)# ?$`),
			ModeSubConfiguration: regexp.MustCompile(`^[\w.-]+\(config-[\w/.-]+\)# ?$`),
		},
		MorePrompt:    regexp.MustCompile(` *--More-- *$`),
		MoreKeystroke: " ",
		Transitions: map[Transition]string{
			{ModeUnprivileged, ModePrivileged}:  "enable",
			{ModePrivileged, ModeUnprivileged}:  "disable",
			{ModePrivileged, ModeConfiguration}: "configure terminal",
			{ModeConfiguration, ModePrivileged}: "end",
		},
		EnableCommand:  "enable",
		PasswordPrompt: regexp.MustCompile(`(?i)password: ?$`),
		ErrorSignatures: []ErrorSignature{
			{regexp.MustCompile(`% Invalid input detected at '\^' marker\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Incomplete command\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Ambiguous command:`), ErrorKindSyntax},
			{regexp.MustCompile(`Command authorization failed`), ErrorKindPermissionDenied},
			{regexp.MustCompile(`% Bad secrets`), ErrorKindPermissionDenied},
			{regexp.MustCompile(`% Unknown command`), ErrorKindUnsupportedCommand},
		},
		Encoding: EncodingUTF8,
		Commands: CommandSet{
			DisablePagination: "terminal length 0",
			Version:           "show version",
			LogBuffer:         "show logging",
			Ping:              "ping %s",
			Traceroute:        "traceroute %s",
			SubConfigEnter:    "interface %s",
			SubConfigExit:     "exit",
		},
		ReadTimeout:    defaultReadTimeout,
		CommandTimeout: defaultCommandTimeout,
	}
}

func huaweiVRPProfile() *Profile {
	userView := regexp.MustCompile(`^<[\w.-]+> ?$`)
	return &Profile{
		Platform: PlatformHuaweiVRP,
		Prompts: map[ModeKind]*regexp.Regexp{
			// VRP 用户视图不区分权限级别，两个模式共用同一提示符
			ModeUnprivileged:     userView,
			ModePrivileged:       userView,
			ModeConfiguration:    regexp.MustCompile(`^\[[\w.-]+\] ?$`),
			ModeSubConfiguration: regexp.MustCompile(`^\[[\w.-]+-[\w/.-]+\] ?$`),
		},
		MorePrompt:    regexp.MustCompile(` *-+ ?[Mm]ore ?-+ *$`),
		MoreKeystroke: " ",
		Transitions: map[Transition]string{
			{ModeUnprivileged, ModePrivileged}:  "super",
			{ModePrivileged, ModeConfiguration}: "system-view",
			{ModeConfiguration, ModePrivileged}: "quit",
		},
		EnableCommand:  "super",
		PasswordPrompt: regexp.MustCompile(`(?i)password: ?$`),
		ErrorSignatures: []ErrorSignature{
			{regexp.MustCompile(`% Unrecognized command found at '\^' position\.`), ErrorKindSyntax},
			{regexp.MustCompile(`Error: Unrecognized command found`), ErrorKindSyntax},
			{regexp.MustCompile(`Error: Wrong parameter found`), ErrorKindSyntax},
			{regexp.MustCompile(`Error: Incomplete command found`), ErrorKindSyntax},
			{regexp.MustCompile(`Error: You do not have permission`), ErrorKindPermissionDenied},
			{regexp.MustCompile(`Error: Password incorrect`), ErrorKindPermissionDenied},
			{regexp.MustCompile(`Error: This operation is not supported`), ErrorKindUnsupportedCommand},
		},
		Encoding: EncodingUTF8,
		Commands: CommandSet{
			DisablePagination: "screen-length 0 temporary",
			Version:           "display version",
			LogBuffer:         "display logbuffer",
			Ping:              "ping %s",
			Traceroute:        "tracert %s",
			SubConfigEnter:    "interface %s",
			SubConfigExit:     "quit",
		},
		ReadTimeout:    defaultReadTimeout,
		CommandTimeout: defaultCommandTimeout,
	}
}

func h3cComwareProfile() *Profile {
	userView := regexp.MustCompile(`^<[\w.-]+> ?$`)
	return &Profile{
		Platform: PlatformH3CComware,
		Prompts: map[ModeKind]*regexp.Regexp{
			ModeUnprivileged:     userView,
			ModePrivileged:       userView,
			ModeConfiguration:    regexp.MustCompile(`^\[[\w.-]+\] ?$`),
			ModeSubConfiguration: regexp.MustCompile(`^\[[\w.-]+-[\w/.-]+\] ?$`),
		},
		MorePrompt:    regexp.MustCompile(` *-+ ?[Mm]ore ?-+ *$`),
		MoreKeystroke: " ",
		Transitions: map[Transition]string{
			{ModeUnprivileged, ModePrivileged}:  "super",
			{ModePrivileged, ModeConfiguration}: "system-view",
			{ModeConfiguration, ModePrivileged}: "quit",
		},
		EnableCommand:  "super",
		PasswordPrompt: regexp.MustCompile(`(?i)password: ?$`),
		ErrorSignatures: []ErrorSignature{
			{regexp.MustCompile(`% Unrecognized command found at '\^' position\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Wrong parameter found at '\^' position\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Too many parameters found at '\^' position\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Incomplete command found at '\^' position\.`), ErrorKindSyntax},
			{regexp.MustCompile(`Permission denied\.`), ErrorKindPermissionDenied},
		},
		Encoding: EncodingUTF8,
		Commands: CommandSet{
			DisablePagination: "screen-length disable",
			Version:           "display version",
			LogBuffer:         "display logbuffer",
			Ping:              "ping %s",
			Traceroute:        "tracert %s",
			SubConfigEnter:    "interface %s",
			SubConfigExit:     "quit",
		},
		ReadTimeout:    defaultReadTimeout,
		CommandTimeout: defaultCommandTimeout,
	}
}

func ruijieOSProfile() *Profile {
	return &Profile{
		Platform: PlatformRuijieOS,
		Prompts: map[ModeKind]*regexp.Regexp{
			ModeUnprivileged:     regexp.MustCompile(`^[\w.-]+> ?$`),
			ModePrivileged:       regexp.MustCompile(`^[\w.-]+# ?$`),
			ModeConfiguration:    regexp.MustCompile(`^[\w.-]+\(config\)# ?$`),
			ModeSubConfiguration: regexp.MustCompile(`^[\w.-]+\(config-[\w/.-]+\)# ?$`),
		},
		MorePrompt:    regexp.MustCompile(` *--More-- *$`),
		MoreKeystroke: " ",
		Transitions: map[Transition]string{
			{ModeUnprivileged, ModePrivileged}:  "enable",
			{ModePrivileged, ModeUnprivileged}:  "disable",
			{ModePrivileged, ModeConfiguration}: "configure terminal",
			{ModeConfiguration, ModePrivileged}: "end",
		},
		EnableCommand:  "enable",
		PasswordPrompt: regexp.MustCompile(`(?i)password: ?$`),
		ErrorSignatures: []ErrorSignature{
			{regexp.MustCompile(`% Invalid input detected at '\^' marker\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Unrecognized command found at '\^' position\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% User doesn't have sufficient privilege to execute this command\.`), ErrorKindPermissionDenied},
			{regexp.MustCompile(`% Unknown command`), ErrorKindUnsupportedCommand},
		},
		// 锐捷部分机型日志输出为 GBK 编码
		Encoding: EncodingGBK,
		Commands: CommandSet{
			DisablePagination: "terminal length 0",
			Version:           "show version",
			LogBuffer:         "show logging",
			Ping:              "ping %s",
			Traceroute:        "traceroute %s",
			SubConfigEnter:    "interface %s",
			SubConfigExit:     "exit",
		},
		ReadTimeout:    defaultReadTimeout,
		CommandTimeout: defaultCommandTimeout,
	}
}

func arubaOSProfile() *Profile {
	return &Profile{
		Platform: PlatformArubaOS,
		Prompts: map[ModeKind]*regexp.Regexp{
			ModeUnprivileged:     regexp.MustCompile(`^\([\w.-]+\) >$`),
			ModePrivileged:       regexp.MustCompile(`^\([\w.-]+\) #$`),
			ModeConfiguration:    regexp.MustCompile(`^\([\w.-]+\) \(config\) #$`),
			ModeSubConfiguration: regexp.MustCompile(`^\([\w.-]+\) \(config-[\w/.-]+\) #$`),
		},
		MorePrompt:    regexp.MustCompile(`--More-- \(q\) quit \(u\) pageup \(/\) search \(n\) repeat$| *--More-- *$`),
		MoreKeystroke: " ",
		Transitions: map[Transition]string{
			{ModeUnprivileged, ModePrivileged}:  "enable",
			{ModePrivileged, ModeUnprivileged}:  "disable",
			{ModePrivileged, ModeConfiguration}: "configure terminal",
			{ModeConfiguration, ModePrivileged}: "end",
		},
		EnableCommand:  "enable",
		PasswordPrompt: regexp.MustCompile(`(?i)password: ?$`),
		ErrorSignatures: []ErrorSignature{
			{regexp.MustCompile(`% Invalid input detected at '\^' marker\.`), ErrorKindSyntax},
			{regexp.MustCompile(`% Parse error`), ErrorKindSyntax},
			{regexp.MustCompile(`% Permission denied`), ErrorKindPermissionDenied},
			{regexp.MustCompile(`% Unrecognized command`), ErrorKindUnsupportedCommand},
		},
		Encoding: EncodingUTF8,
		Commands: CommandSet{
			DisablePagination: "no paging",
			Version:           "show version",
			LogBuffer:         "show log all",
			Ping:              "ping %s",
			Traceroute:        "traceroute %s",
			SubConfigEnter:    "interface %s",
			SubConfigExit:     "exit",
		},
		ReadTimeout:    defaultReadTimeout,
		CommandTimeout: defaultCommandTimeout,
	}
}
