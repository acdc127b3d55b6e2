// Package parser converts success-classified device output into typed
// records. One parser per command family; text that does not match the
// expected shape fails with a ParseError naming the family, never a
// partially populated record. Pagination markers are removed by the
// session executor before any parser sees the text.
package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charlesren/netcli/driver"
)

// ParseError 结构化解析失败，标明命令族与平台
type ParseError struct {
	Family   string
	Platform driver.Platform
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parser (%s): %s", e.Family, e.Platform, e.Reason)
}

func newParseError(family string, platform driver.Platform, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Family:   family,
		Platform: platform,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// Version 设备版本信息
type Version struct {
	Platform  driver.Platform
	Model     string
	OSVersion string
	Uptime    string // 原样保留的厂商 uptime 文本，可能为空
}

// LogEntry 日志缓冲区中的一条记录。Message 含续行。
type LogEntry struct {
	Timestamp string
	Severity  int    // 0-7，未知时为 -1
	Tag       string // 设施/助记符标签，如 SYS-5-CONFIG_I、SHELL/5/CMDRECORD
	Message   string
	Raw       string
}

// PingResult ping 统计
type PingResult struct {
	Target   string
	Sent     int
	Received int
	LossPct  float64
	RTTMin   time.Duration
	RTTAvg   time.Duration
	RTTMax   time.Duration
}

// TracerouteHop 一跳的探测结果。全部探测超时则 Lost 为 true 且
// Address 为空。
type TracerouteHop struct {
	TTL     int
	Address string
	RTTs    []time.Duration
	Lost    bool
}

// vrpFamily reports whether the platform uses the Comware/VRP output
// family; the rest follow the IOS-like layout.
func vrpFamily(p driver.Platform) bool {
	return p == driver.PlatformHuaweiVRP || p == driver.PlatformH3CComware
}

func msDuration(s string) (time.Duration, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(f * float64(time.Millisecond)), nil
}
