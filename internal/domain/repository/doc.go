// Package repository define las entidades del consultorio y las interfaces
// de repositorio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente. La implementación concreta vive en
// internal/store/pg.
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Los IDs son int64 (BIGSERIAL en Postgres)
//   - Errores de dominio están en errors.go
package repository
