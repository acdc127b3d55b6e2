package parser

import (
	"regexp"
	"strings"

	"github.com/charlesren/netcli/driver"
)

// 跳行:  1 10.123.0.1 1 msec 2 msec 1 msec
//        2  *  *  *
// 主机名形式:  3 gw.example.net (10.0.0.1) 4 ms 5 ms 4 ms
var (
	hopLine  = regexp.MustCompile(`^\s*(\d+)\s+(.+)$`)
	hopIndex = regexp.MustCompile(`^\d+$`)
	rttValue = regexp.MustCompile(`^[\d.]+$`)
)

// ParseTraceroute splits traceroute output into hops. Probe timeouts are
// `*` tokens; a hop whose probes all timed out has Lost set and no
// address.
func ParseTraceroute(platform driver.Platform, output string) ([]TracerouteHop, error) {
	hops := make([]TracerouteHop, 0, 8)

	for _, line := range strings.Split(output, "\n") {
		m := hopLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hop, ok := parseHop(m[1], m[2])
		if !ok {
			continue
		}
		hops = append(hops, hop)
	}

	if len(hops) == 0 {
		return nil, newParseError("traceroute", platform, "no hop lines in output")
	}
	return hops, nil
}

func parseHop(ttlField, rest string) (TracerouteHop, bool) {
	var hop TracerouteHop
	if !hopIndex.MatchString(ttlField) {
		return hop, false
	}
	// TTL 行号已由 hopLine 捕获为纯数字
	for _, c := range ttlField {
		hop.TTL = hop.TTL*10 + int(c-'0')
	}

	sawStar := false
	fields := strings.Fields(rest)
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		switch {
		case tok == "*":
			sawStar = true
		case rttValue.MatchString(tok) && i+1 < len(fields) &&
			(fields[i+1] == "ms" || fields[i+1] == "msec"):
			d, err := msDuration(tok)
			if err != nil {
				return hop, false
			}
			hop.RTTs = append(hop.RTTs, d)
			i++
		case hop.Address == "":
			// 第一个非 RTT、非星号的词是地址（IP 或主机名）
			hop.Address = strings.Trim(tok, "()")
		default:
			// 括号内的反解析地址等附加字段，忽略
		}
	}

	if hop.Address == "" && !sawStar {
		return hop, false
	}
	hop.Lost = len(hop.RTTs) == 0 && sawStar && hop.Address == ""
	return hop, true
}
