package parser

import (
	"regexp"
	"strconv"

	"github.com/charlesren/netcli/driver"
)

// IOS 族: Success rate is 100 percent (5/5), round-trip min/avg/max = 1/2/4 ms
// VRP 族: 5 packet(s) transmitted / 5 packet(s) received / 0.00% packet loss
//         round-trip min/avg/max = 1/2/4 ms
var (
	iosPingStats = regexp.MustCompile(
		`Success rate is (\d+) percent \((\d+)/(\d+)\)(?:, round-trip min/avg/max = ([\d.]+)/([\d.]+)/([\d.]+) ms)?`)

	vrpTransmitted = regexp.MustCompile(`(\d+) packet\(s\) transmitted`)
	vrpReceived    = regexp.MustCompile(`(\d+) packet\(s\) received`)
	vrpLoss        = regexp.MustCompile(`([\d.]+)% packet loss`)
	vrpRTT         = regexp.MustCompile(`round-trip min/avg/max = ([\d.]+)/([\d.]+)/([\d.]+) ms`)
)

// ParsePing extracts ping statistics for the platform's output family.
func ParsePing(platform driver.Platform, target, output string) (*PingResult, error) {
	if vrpFamily(platform) {
		return parseVRPPing(platform, target, output)
	}
	return parseIOSPing(platform, target, output)
}

func parseIOSPing(platform driver.Platform, target, output string) (*PingResult, error) {
	m := iosPingStats.FindStringSubmatch(output)
	if m == nil {
		return nil, newParseError("ping", platform, "no success-rate line in output")
	}
	rate, _ := strconv.Atoi(m[1])
	received, _ := strconv.Atoi(m[2])
	sent, _ := strconv.Atoi(m[3])

	result := &PingResult{
		Target:   target,
		Sent:     sent,
		Received: received,
		LossPct:  float64(100 - rate),
	}
	if m[4] != "" {
		var err error
		if result.RTTMin, err = msDuration(m[4]); err != nil {
			return nil, newParseError("ping", platform, "bad round-trip value %q", m[4])
		}
		if result.RTTAvg, err = msDuration(m[5]); err != nil {
			return nil, newParseError("ping", platform, "bad round-trip value %q", m[5])
		}
		if result.RTTMax, err = msDuration(m[6]); err != nil {
			return nil, newParseError("ping", platform, "bad round-trip value %q", m[6])
		}
	}
	return result, nil
}

func parseVRPPing(platform driver.Platform, target, output string) (*PingResult, error) {
	tx := vrpTransmitted.FindStringSubmatch(output)
	rx := vrpReceived.FindStringSubmatch(output)
	loss := vrpLoss.FindStringSubmatch(output)
	if tx == nil || rx == nil || loss == nil {
		return nil, newParseError("ping", platform, "incomplete statistics block")
	}

	sent, _ := strconv.Atoi(tx[1])
	received, _ := strconv.Atoi(rx[1])
	lossPct, err := strconv.ParseFloat(loss[1], 64)
	if err != nil {
		return nil, newParseError("ping", platform, "bad loss value %q", loss[1])
	}

	result := &PingResult{
		Target:   target,
		Sent:     sent,
		Received: received,
		LossPct:  lossPct,
	}
	if m := vrpRTT.FindStringSubmatch(output); m != nil {
		if result.RTTMin, err = msDuration(m[1]); err != nil {
			return nil, newParseError("ping", platform, "bad round-trip value %q", m[1])
		}
		if result.RTTAvg, err = msDuration(m[2]); err != nil {
			return nil, newParseError("ping", platform, "bad round-trip value %q", m[2])
		}
		if result.RTTMax, err = msDuration(m[3]); err != nil {
			return nil, newParseError("ping", platform, "bad round-trip value %q", m[3])
		}
	}
	return result, nil
}
