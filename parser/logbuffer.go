package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charlesren/netcli/driver"
)

// 日志行布局：时间戳 / 设施-级别-助记符标签 / 正文
// IOS 族: *Mar  1 00:01:02.003: %SYS-5-CONFIG_I: Configured from console
// VRP:    Jan  2 2024 10:20:30+08:00 HOST %%01SHELL/5/CMDRECORD(l)[42]:text
// Comware: %Jun 26 10:12:15:123 2024 HOST SHELL/5/SHELL_LOGIN: text
var (
	iosLogLine = regexp.MustCompile(
		`^[*.]?(\w{3} +\d+ +(?:\d{4} +)?[\d:.]+(?: [A-Z]{3,4})?): %(([\w-]+)-(\d)-([\w-]+)): ?(.*)$`)
	vrpLogLine = regexp.MustCompile(
		`^(\w{3} +\d+ +\d{4} [\d:]+(?:[+-][\d:]+)?) (\S+) %%\d{2}(([\w-]+)\/(\d)\/(\w+))\(?\w?\)?(?:\[\d+\])?: ?(.*)$`)
	comwareLogLine = regexp.MustCompile(
		`^%(\w{3} +\d+ +[\d:]+ \d{4}) (\S+) (([\w-]+)\/(\d)\/([\w-]+)): ?(.*)$`)

	bufferHeader = regexp.MustCompile(`(?i)log buffer|syslog logging|logging buffer|logbuffer`)
)

type logLayout struct {
	line            *regexp.Regexp
	tagIdx, sevIdx  int
	timeIdx, msgIdx int
}

func logLayoutFor(platform driver.Platform) logLayout {
	switch platform {
	case driver.PlatformHuaweiVRP:
		return logLayout{line: vrpLogLine, timeIdx: 1, tagIdx: 3, sevIdx: 5, msgIdx: 7}
	case driver.PlatformH3CComware:
		return logLayout{line: comwareLogLine, timeIdx: 1, tagIdx: 3, sevIdx: 5, msgIdx: 7}
	default:
		return logLayout{line: iosLogLine, timeIdx: 1, tagIdx: 2, sevIdx: 4, msgIdx: 6}
	}
}

// ParseLogBuffer splits a log-buffer dump into entries. Lines before the
// first recognized entry are treated as the buffer header; lines after an
// entry that match no layout are folded into the previous entry as
// continuations. A dump with content but no recognizable header or entry
// is a ParseError.
func ParseLogBuffer(platform driver.Platform, output string) ([]LogEntry, error) {
	layout := logLayoutFor(platform)
	entries := make([]LogEntry, 0, 16)
	headerSeen := false

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimRight(line, " ")
		if m := layout.line.FindStringSubmatch(strings.TrimLeft(trimmed, " ")); m != nil {
			sev, err := strconv.Atoi(m[layout.sevIdx])
			if err != nil {
				sev = -1
			}
			entries = append(entries, LogEntry{
				Timestamp: m[layout.timeIdx],
				Severity:  sev,
				Tag:       m[layout.tagIdx],
				Message:   m[layout.msgIdx],
				Raw:       trimmed,
			})
			continue
		}
		if len(entries) > 0 {
			if strings.TrimSpace(trimmed) != "" {
				last := &entries[len(entries)-1]
				last.Message += "\n" + strings.TrimSpace(trimmed)
				last.Raw += "\n" + trimmed
			}
			continue
		}
		if bufferHeader.MatchString(trimmed) {
			headerSeen = true
		}
	}

	if len(entries) == 0 && !headerSeen && strings.TrimSpace(output) != "" {
		return nil, newParseError("logbuffer", platform, "no log entries or buffer header recognized")
	}
	return entries, nil
}
