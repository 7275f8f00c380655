package finance

import (
	"errors"
	"time"
)

// ErrUnknownFrequency is returned for frequencies other than Monthly and Biweekly.
var ErrUnknownFrequency = errors.New("frequência de parcelas inválida")

// Frequency is the spacing between crediário installments.
type Frequency string

const (
	Monthly  Frequency = "mensal"
	Biweekly Frequency = "quinzenal"
)

const biweeklyDays = 15

// InstallmentDueDates returns count due dates after firstDate.
//
// Monthly dates are always derived from firstDate itself (not from the previous
// installment) and clamp to the last day of shorter months, so 31 Jan yields
// 29 Feb and then 31 Mar in a leap year. Biweekly dates are firstDate + 15*i days.
func InstallmentDueDates(firstDate time.Time, count int, freq Frequency) ([]time.Time, error) {
	if count < 1 {
		return nil, ErrInvalidInstallmentCount
	}

	dates := make([]time.Time, 0, count)
	for i := 1; i <= count; i++ {
		switch freq {
		case Monthly:
			dates = append(dates, addMonthsClamped(firstDate, i))
		case Biweekly:
			dates = append(dates, firstDate.AddDate(0, 0, biweeklyDays*i))
		default:
			return nil, ErrUnknownFrequency
		}
	}
	return dates, nil
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// Day 1 never overflows, so time.Date only normalizes the month here.
	target := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
