package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

type Fields = logrus.Fields

// L возвращает общий логгер приложения.
func L() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stdout)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		if os.Getenv("DEBUG") == "true" {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
	})
	return log
}

// WithComponent помечает записи именем подсистемы.
func WithComponent(name string) *logrus.Entry {
	return L().WithField("component", name)
}
