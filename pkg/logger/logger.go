// Package logger expone el logger estructurado de la aplicación sobre
// zerolog. Los casos de uso lo reciben inyectado; nadie toca zerolog global
// salvo la redirección que hace New para librerías de terceros.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // "development" escribe consola legible; cualquier otro valor, JSON
	Level string // trace, debug, info, warn, error, fatal
}

// Logger envoltorio inyectable sobre zerolog.
type Logger struct {
	z zerolog.Logger
}

// New construye el logger según el entorno. En development la salida es de
// consola con hora corta; en producción, JSON por stdout para el colector.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	z := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	// Las librerías que usan el logger global de zerolog escriben igual
	log.Logger = z

	return &Logger{z: z}
}

// parseLevel tolera niveles desconocidos cayendo en info.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Eventos por nivel, delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.z.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.z.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.z.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.z.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.z.Fatal() }

// With abre un sublogger con campos fijos (por request, por job).
func (l *Logger) With() zerolog.Context { return l.z.With() }

// Zerolog expone el logger interno cuando hace falta la API completa.
func (l *Logger) Zerolog() zerolog.Logger { return l.z }
