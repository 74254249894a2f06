package shipping

import (
	"strings"

	"github.com/Talonmortem/SHM/internal/warehouse"
)

const maxSuggestions = 8

// ClientField names the inputs that trigger client card suggestions.
type ClientField string

const (
	ByFullName ClientField = "full_name"
	ByPhone    ClientField = "phone"
	ByPassport ClientField = "passport_inn"
)

// Suggest returns up to eight client cards whose matching field contains the
// needle, case-insensitively. A blank needle suggests nothing.
func Suggest(clients []warehouse.Customer, field ClientField, needle string) []warehouse.Customer {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return nil
	}
	var out []warehouse.Customer
	for _, c := range clients {
		if strings.Contains(strings.ToLower(fieldValue(c, field)), needle) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

// FindExact returns the client card whose field equals the value exactly
// (ignoring case and surrounding space), or nil.
func FindExact(clients []warehouse.Customer, field ClientField, value string) *warehouse.Customer {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	for i := range clients {
		if strings.ToLower(strings.TrimSpace(fieldValue(clients[i], field))) == value {
			return &clients[i]
		}
	}
	return nil
}

// ApplyClient copies a client card into the draft's recipient fields. The
// name can be overridden so a half-typed name is not clobbered.
func ApplyClient(d *Draft, c warehouse.Customer, nameOverride string) {
	d.City = c.City
	d.FullName = c.FullName
	if nameOverride != "" {
		d.FullName = nameOverride
	}
	d.Phone = c.Phone
	d.PassportInn = c.PassportNumber
	d.TK = c.TK
}

func fieldValue(c warehouse.Customer, field ClientField) string {
	switch field {
	case ByPhone:
		return c.Phone
	case ByPassport:
		return c.PassportNumber
	default:
		return c.FullName
	}
}
