package vesting_test

import (
	"testing"
	"time"

	"github.com/yeisme/vestvault/pkg/internal/vesting"
)

// cet 测试用的固定偏移时区，对应冬令时的中欧时间.
var cet = time.FixedZone("CET", 3600)

// TestParseVestTime 测试 HH:MM 时刻解析.
func TestParseVestTime(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
		ok     bool
	}{
		{input: "09:00", hour: 9, minute: 0, ok: true},
		{input: "13:45", hour: 13, minute: 45, ok: true},
		{input: "00:00", hour: 0, minute: 0, ok: true},
		{input: "23:59", hour: 23, minute: 59, ok: true},
		{input: "24:00", ok: false},
		{input: "9am", ok: false},
		{input: "09:00:30", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		hour, minute, err := vesting.ParseVestTime(tt.input)
		if tt.ok && err != nil {
			t.Errorf("ParseVestTime(%q) unexpected error: %v", tt.input, err)
			continue
		}

		if !tt.ok {
			if err == nil {
				t.Errorf("ParseVestTime(%q) expected error, got %d:%d", tt.input, hour, minute)
			}

			continue
		}

		if hour != tt.hour || minute != tt.minute {
			t.Errorf("ParseVestTime(%q) = %d:%d, want %d:%d", tt.input, hour, minute, tt.hour, tt.minute)
		}
	}
}

// TestComputeFirstRun 测试首次执行时间的计算：悬崖天数、参考时区
// 换算、每日时刻覆盖以及已过时刻顺延 24 小时.
func TestComputeFirstRun(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cliffDays   int
		vestingTime string
		loc         *time.Location
		want        time.Time
	}{
		{
			// 09:00 CET 是 08:00 UTC，已过当前时间，顺延到次日
			name:        "daily time already passed",
			vestingTime: "09:00",
			loc:         cet,
			want:        time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			// 13:00 CET 是 12:00 UTC，尚未到来，当天执行
			name:        "daily time still ahead",
			vestingTime: "13:00",
			loc:         cet,
			want:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			// 无每日时刻：基准等于当前时间，不晚于现在则顺延一个周期
			name: "no override pushes one period",
			loc:  cet,
			want: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "cliff without override",
			cliffDays: 3,
			loc:       cet,
			want:      time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC),
		},
		{
			name:        "cliff with override",
			cliffDays:   1,
			vestingTime: "09:00",
			loc:         cet,
			want:        time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name:        "nil location falls back to utc",
			vestingTime: "13:00",
			loc:         nil,
			want:        time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vesting.ComputeFirstRun(now, tt.cliffDays, tt.vestingTime, tt.loc)
			if err != nil {
				t.Fatalf("ComputeFirstRun: %v", err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("first run = %v, want %v", got, tt.want)
			}

			if got.Location() != time.UTC {
				t.Errorf("first run location = %v, want UTC", got.Location())
			}

			if !got.After(now) {
				t.Errorf("first run %v not after now %v", got, now)
			}
		})
	}
}

// TestComputeFirstRunMinuteAligned 测试未配置每日时刻时秒与纳秒归零，
// 首次执行按整分对齐.
func TestComputeFirstRunMinuteAligned(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 42, 500, time.UTC)

	got, err := vesting.ComputeFirstRun(now, 0, "", cet)
	if err != nil {
		t.Fatalf("ComputeFirstRun: %v", err)
	}

	// 截断到 10:00:00 后不晚于当前时间，顺延一个周期
	want := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("first run = %v, want %v", got, want)
	}
}

// TestComputeFirstRunInvalidTime 测试非法时刻格式被拒绝.
func TestComputeFirstRunInvalidTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	if _, err := vesting.ComputeFirstRun(now, 0, "25:61", cet); err == nil {
		t.Fatal("expected error for invalid vesting time")
	}
}

// TestNextAfter 测试固定 24 小时周期推进.
func TestNextAfter(t *testing.T) {
	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	next := vesting.NextAfter(first)
	if want := first.Add(24 * time.Hour); !next.Equal(want) {
		t.Errorf("NextAfter = %v, want %v", next, want)
	}
}
