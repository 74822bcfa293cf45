package timezone

import "time"

// Horários de agendamento são sempre interpretados no fuso da barbearia.
// DefaultTimezone cobre filiais antigas sem fuso preenchido.
const DefaultTimezone = "America/Sao_Paulo"

// Location resolve o fuso da filial, caindo no padrão quando vazio ou
// inválido.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}
