// Package pricing implements the rental fee policy.  The policy is a plain
// linear one: whole elapsed days times the daily rate frozen in the rental's
// movie snapshot.  Partial days are not prorated and there is no minimum
// charge, so a movie returned within 24 hours is free.
package pricing

import "time"

// ElapsedDays returns the whole number of days between dateOut and
// returnedAt, flooring the duration.  A rental out for 7 days and a few
// hours counts as 7 days.  Clock skew that puts returnedAt before dateOut
// yields 0 rather than a negative count.
func ElapsedDays(dateOut, returnedAt time.Time) int {
    d := returnedAt.Sub(dateOut)
    if d < 0 {
        return 0
    }
    return int(d / (24 * time.Hour))
}

// Fee computes the rental fee for a return at returnedAt of a rental that
// started at dateOut, charged at dailyRate per whole day.  The result is
// never negative.
func Fee(dateOut, returnedAt time.Time, dailyRate float64) float64 {
    if dailyRate < 0 {
        dailyRate = 0
    }
    return float64(ElapsedDays(dateOut, returnedAt)) * dailyRate
}
