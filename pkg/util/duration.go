package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses time.ParseDuration syntax plus a "d" suffix for
// days, e.g. "365d", "24h", "30m".
// ParseDuration 解析时长，额外支持 "d"（天）后缀
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, err
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	return time.ParseDuration(s)
}
