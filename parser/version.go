package parser

import (
	"regexp"

	"github.com/charlesren/netcli/driver"
)

// 各平台版本横幅的字段布局。Model 与 OSVersion 为必需字段；uptime
// 各机型不保证输出，缺省为空。
var versionLayouts = map[driver.Platform]struct {
	version []*regexp.Regexp
	model   []*regexp.Regexp
	uptime  []*regexp.Regexp
}{
	driver.PlatformCiscoIOS: {
		version: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^Cisco IOS(?:-| )?(?:XE )?Software.*?, Version ([^,\s]+)`),
		},
		model: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^[Mm]odel [Nn]umber\s*:\s*(\S+)`),
			regexp.MustCompile(`(?m)^[Cc]isco (\S+) .*processor`),
		},
		uptime: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\S+ uptime is (.+?)\s*$`),
		},
	},
	driver.PlatformRuijieOS: {
		version: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^System software version\s*:\s*(.+?)\s*$`),
		},
		model: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^System description\s*:\s*.*?\(([\w-]+)\)`),
			regexp.MustCompile(`(?m)^Ruijie .*?\(([\w-]+)\)`),
		},
		uptime: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^System uptime\s*:\s*(.+?)\s*$`),
		},
	},
	driver.PlatformArubaOS: {
		version: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^ArubaOS \(MODEL: [^)]+\), Version (\S+)`),
		},
		model: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^ArubaOS \(MODEL: ([^)]+)\)`),
		},
		uptime: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^Switch uptime is (.+?)\s*$`),
		},
	},
	driver.PlatformHuaweiVRP: {
		version: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^VRP \(R\) [Ss]oftware, Version (.+?)\s*$`),
		},
		model: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^HUAWEI (\S+) uptime is`),
			regexp.MustCompile(`(?m)^Huawei (\S+) Router uptime is`),
		},
		uptime: []*regexp.Regexp{
			regexp.MustCompile(`(?m)uptime is (.+?)\s*$`),
		},
	},
	driver.PlatformH3CComware: {
		version: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^H3C Comware Software, Version (.+?)\s*$`),
		},
		model: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^H3C (\S+) uptime is`),
		},
		uptime: []*regexp.Regexp{
			regexp.MustCompile(`(?m)uptime is (.+?)\s*$`),
		},
	},
}

func firstMatch(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ParseVersion extracts model and OS version from a version banner.
func ParseVersion(platform driver.Platform, output string) (*Version, error) {
	layout, ok := versionLayouts[platform]
	if !ok {
		return nil, newParseError("version", platform, "unsupported platform")
	}

	v := &Version{
		Platform:  platform,
		OSVersion: firstMatch(layout.version, output),
		Model:     firstMatch(layout.model, output),
		Uptime:    firstMatch(layout.uptime, output),
	}
	if v.OSVersion == "" {
		return nil, newParseError("version", platform, "no OS version string in banner")
	}
	if v.Model == "" {
		return nil, newParseError("version", platform, "no model in banner")
	}
	return v, nil
}
