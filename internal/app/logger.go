package app

import (
	"io"
	"log"
	"os"

	"gradescope_proxy/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger направляет стандартный log в stdout и, если задан LOG_FILE,
// дополнительно в файл с ротацией.
func setupLogger(cfg config.LogConfig) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.File() == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File(),
		MaxSize:    cfg.MaxSizeMB(),
		MaxBackups: cfg.MaxBackups(),
		MaxAge:     cfg.MaxAgeDays(),
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return rotating
}
