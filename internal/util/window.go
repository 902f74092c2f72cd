package util

import (
	"fmt"
	"sync"
	"time"
)

// Clock 可注入的时钟，测试中使用 FixedClock
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock 手动推进的时钟
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Window 闭区间 [Start, End]
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// UTC 返回转换为 UTC 的窗口，数据库中的时间统一按 UTC 存储
func (w Window) UTC() Window {
	return Window{Start: w.Start.UTC(), End: w.End.UTC()}
}

const lastMillisecond = 999 * int(time.Millisecond)

// TodayWindow 返回 ref 所在自然日（loc 时区）的 [00:00:00.000, 23:59:59.999]
func TodayWindow(ref time.Time, loc *time.Location) Window {
	local := ref.In(loc)
	y, m, d := local.Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d, 23, 59, 59, lastMillisecond, loc),
	}
}

// WeekWindow 返回 ISO 周 (year, week) 的周一 00:00 至周日 23:59:59.999
func WeekWindow(week, year int, loc *time.Location) (Window, error) {
	if week < 1 || week > 53 {
		return Window{}, fmt.Errorf("%w: week %d out of range", ErrInvalidArgument, week)
	}

	// 1 月 4 日总在第 1 周
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	offset := int(jan4.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)

	if y, w := monday.ISOWeek(); y != year || w != week {
		return Window{}, fmt.Errorf("%w: year %d has no ISO week %d", ErrInvalidArgument, year, week)
	}

	sunday := monday.AddDate(0, 0, 6)
	return Window{
		Start: monday,
		End:   time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, lastMillisecond, loc),
	}, nil
}

// ISOWeek 返回 ref 在 loc 时区下的 ISO 年和周
func ISOWeek(ref time.Time, loc *time.Location) (year, week int) {
	return ref.In(loc).ISOWeek()
}

// DayKey 返回 ref 在 loc 时区下的日期，如 2025-01-13
func DayKey(ref time.Time, loc *time.Location) string {
	return ref.In(loc).Format(DateFormat)
}

// ReferenceTime 客户端时间与服务器时间相差在容忍范围内时采用客户端时间，否则使用服务器时间
func ReferenceTime(serverNow time.Time, clientTime *time.Time, tolerance time.Duration) time.Time {
	if clientTime == nil || clientTime.IsZero() || tolerance <= 0 {
		return serverNow
	}
	diff := serverNow.Sub(*clientTime)
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return serverNow
	}
	return *clientTime
}
