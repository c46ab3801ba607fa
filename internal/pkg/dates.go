package pkg

import "time"

// TruncateToDay zera o horário mantendo a data no fuso informado pelo valor.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// LastDayOfMonth retorna o último dia do mês de referência.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayOfMonth ajusta o dia desejado ao tamanho real do mês.
func ClampDayOfMonth(year int, month time.Month, day int) int {
	last := LastDayOfMonth(year, month)
	if day > last {
		return last
	}
	return day
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
