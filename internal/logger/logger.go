// README: Shared structured logger (logrus singleton).
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var once sync.Once
var log *logrus.Logger

// Get returns the process-wide logger. A singleton so the level can be
// raised once config is loaded without re-wiring callers.
func Get() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.Out = os.Stdout
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	})
	return log
}

func SetLevel(level logrus.Level) {
	Get().SetLevel(level)
}
