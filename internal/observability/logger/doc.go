// Package logger provee un logger Zap singleton con scoping por contexto.
//
//   - Singleton: una sola instancia inicializada con Init() en main.
//   - Context scoping: cada request lleva un logger con request_id, método y
//     ruta, inyectado por el middleware de logging.
//   - Entornos: "dev" usa consola con colores, "prod" usa JSON.
//
// Uso:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Info("consulta creada", logger.ConsultaID(c.ID), logger.ProfesionalID(c.ProfesionalID))
package logger
