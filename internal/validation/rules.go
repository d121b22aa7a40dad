// Package validation contiene las reglas de formato compartidas por los
// services (emails de pacientes, prefijos del cache).
package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

// Cache prefix rules:
// - Lowercase only.
// - Start with [a-z].
// - Remaining chars may include [a-z0-9_+:.-].
// - Length 1..128.
// - No glob metacharacters (*?[]) ni espacios.
//
// Válidos: pacientes_, pacientes_42_, stats_7_dashboard, paciente_3_
// Inválidos: "", _x, *, pacientes_*, Pacientes_, "pacientes 42".
var cachePrefixRe = regexp.MustCompile(`^[a-z][a-z0-9_+:.\-]{0,127}$`)

// ValidCachePrefix retorna true si prefix es un prefijo de key válido.
func ValidCachePrefix(prefix string) bool {
	return cachePrefixRe.MatchString(prefix)
}

// ValidEmail acepta direcciones simples (sin display name), de hasta 254
// caracteres y con dominio que contenga un punto.
func ValidEmail(email string) bool {
	if email == "" || len(email) > 254 || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}
