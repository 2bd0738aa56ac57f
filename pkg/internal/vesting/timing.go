package vesting

import (
	"fmt"
	"time"
)

// vestTimeLayout 每日划转时刻的解析格式.
const vestTimeLayout = "15:04"

// Period 两次划转之间的固定间隔，按 24 小时推进，不做日历对齐.
const Period = 24 * time.Hour

// ParseVestTime 解析 HH:MM 为时与分.
func ParseVestTime(s string) (hour, minute int, err error) {
	t, err := time.Parse(vestTimeLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid vesting time %q: %w", s, err)
	}

	return t.Hour(), t.Minute(), nil
}

// ComputeFirstRun 计算首次划转时间，返回 UTC.
//
// 基准为当前 UTC 时间加上悬崖天数；换算到参考时区后，若配置了每日时刻
// 则覆盖为当天该时刻，未配置时保留基准的时与分；秒与纳秒一律归零，
// 计划按整分对齐；结果不晚于当前时间时顺延一个周期.
func ComputeFirstRun(now time.Time, cliffDays int, vestingTime string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	nowUTC := now.UTC()
	base := nowUTC.Add(time.Duration(cliffDays) * Period)
	local := base.In(loc)

	hour, minute := local.Hour(), local.Minute()

	if vestingTime != "" {
		var err error

		hour, minute, err = ParseVestTime(vestingTime)
		if err != nil {
			return time.Time{}, err
		}
	}

	local = time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)

	first := local
	if !first.After(nowUTC) {
		first = first.Add(Period)
	}

	return first.UTC(), nil
}

// NextAfter 返回下一次划转时间.
func NextAfter(t time.Time) time.Time {
	return t.Add(Period)
}
