package statistics

import "time"

// Window 半開時間窗口 [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow date 所在的營業日（loc 時區的 00:00 到隔日 00:00）
func DayWindow(date time.Time, loc *time.Location) Window {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// MonthWindow [當月 1 日, 次月 1 日)
func MonthWindow(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// Contains 零值時間（無法解析的時間戳）不落入任何窗口
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && t.Before(w.End)
}
