package reports

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Period: filtros de periodo que maneja la pantalla de reportes
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodCustom    Period = "custom"
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth, PeriodCustom:
		return Period(s), nil
	case "":
		return PeriodMonth, nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "Periodo inválido (today|yesterday|week|month|custom)")
}

// ResolveRange convierte un periodo en un rango concreto de instantes.
// Para custom se usa el rango del caller tal cual, sin validar start <= end.
func ResolveRange(p Period, now time.Time, custom DateRange) DateRange {
	switch p {
	case PeriodToday:
		return DateRange{Start: StartOfDay(now), End: now}
	case PeriodYesterday:
		y := now.AddDate(0, 0, -1)
		return DateRange{Start: StartOfDay(y), End: EndOfDay(y)}
	case PeriodWeek:
		// semana ISO, lunes a domingo
		return DateRange{Start: StartOfWeek(now), End: EndOfDay(StartOfWeek(now).AddDate(0, 0, 6))}
	case PeriodMonth:
		return DateRange{Start: StartOfMonth(now), End: EndOfDay(EndOfMonth(now))}
	}
	return custom
}

// PreviousRange calcula la ventana comparable inmediatamente anterior.
// Para semanas y meses es el periodo de calendario anterior, no una ventana
// móvil; para periodos custom es una ventana de la misma duración.
func PreviousRange(p Period, cur DateRange) DateRange {
	switch p {
	case PeriodToday, PeriodYesterday:
		prev := cur.Start.AddDate(0, 0, -1)
		return DateRange{Start: StartOfDay(prev), End: EndOfDay(prev)}
	case PeriodWeek:
		prevWeek := StartOfWeek(cur.Start.AddDate(0, 0, -7))
		return DateRange{Start: prevWeek, End: EndOfDay(prevWeek.AddDate(0, 0, 6))}
	case PeriodMonth:
		prevMonth := cur.Start.AddDate(0, -1, 0)
		return DateRange{Start: StartOfMonth(prevMonth), End: EndOfDay(EndOfMonth(prevMonth))}
	}

	duration := DiffDays(cur.Start, cur.End)
	return DateRange{
		Start: StartOfDay(cur.Start.AddDate(0, 0, -(duration + 1))),
		End:   EndOfDay(cur.Start.AddDate(0, 0, -1)),
	}
}

// DaysIn: cantidad de días del rango, inclusivo, mínimo 1
func DaysIn(r DateRange) int {
	d := DiffDays(r.Start, r.End) + 1
	if d < 1 {
		return 1
	}
	return d
}

// DiffDays: días de calendario completos entre dos fechas
func DiffDays(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / (24 * time.Hour))
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfWeek: lunes de la semana de t, al inicio del día
func StartOfWeek(t time.Time) time.Time {
	daysFromMonday := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t.AddDate(0, 0, -daysFromMonday))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}
