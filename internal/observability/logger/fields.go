package logger

import (
	"time"

	"go.uber.org/zap"
)

// ─── HTTP ───

// RequestID campo con el ID del request.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method campo con el método HTTP.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path campo con el path del request.
func Path(v string) zap.Field { return zap.String("path", v) }

// Route campo con el patrón de ruta resuelto por el router.
func Route(v string) zap.Field { return zap.String("route", v) }

// Status campo con el status code HTTP.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Bytes campo con los bytes de respuesta.
func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

// DurationMs campo con la duración en milisegundos.
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// Duration campo con una duración.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// ClientIP campo con la IP del cliente.
func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

// ─── Clínica ───

// ProfesionalID campo con el ID del profesional.
func ProfesionalID(v int64) zap.Field { return zap.Int64("profesional_id", v) }

// PacienteID campo con el ID del paciente.
func PacienteID(v int64) zap.Field { return zap.Int64("paciente_id", v) }

// ConsultaID campo con el ID de la consulta.
func ConsultaID(v int64) zap.Field { return zap.Int64("consulta_id", v) }

// Estado campo con el estado de una consulta.
func Estado(v string) zap.Field { return zap.String("estado", v) }

// Email campo con un email (usar con cuidado en prod).
func Email(v string) zap.Field { return zap.String("email", v) }

// ─── Cache ───

// CacheKey campo con una key del cache.
func CacheKey(v string) zap.Field { return zap.String("cache_key", v) }

// CachePrefix campo con un prefijo de invalidación.
func CachePrefix(v string) zap.Field { return zap.String("cache_prefix", v) }

// CacheHit campo que indica si la lectura vino del cache.
func CacheHit(v bool) zap.Field { return zap.Bool("cache_hit", v) }

// ─── Sistema ───

// Component campo con el componente/módulo.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op campo con la operación actual.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer campo con la capa (controller, service, repository).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Err campo con un error.
func Err(err error) zap.Field { return zap.Error(err) }

// ─── Genéricos ───

// Count campo con un conteo.
func Count(v int) zap.Field { return zap.Int("count", v) }

// Any campo de cualquier tipo.
func Any(key string, v any) zap.Field { return zap.Any(key, v) }

// String campo string.
func String(key, v string) zap.Field { return zap.String(key, v) }

// Int campo int.
func Int(key string, v int) zap.Field { return zap.Int(key, v) }

// Int64 campo int64.
func Int64(key string, v int64) zap.Field { return zap.Int64(key, v) }

// Bool campo bool.
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
