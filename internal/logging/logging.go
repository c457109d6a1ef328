package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared application logger.
var Logger = logrus.New()

var once sync.Once

// Init configures the shared logger. In release mode output goes to a
// rotating file as well as stdout; otherwise stdout only.
func Init(ginMode string) {
	once.Do(func() {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		Logger.SetLevel(logrus.InfoLevel)

		if ginMode == "release" {
			rotating := &lumberjack.Logger{
				Filename:   "logs/taskboard.log",
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
			Logger.SetOutput(io.MultiWriter(os.Stdout, rotating))
		} else {
			Logger.SetOutput(os.Stdout)
		}
	})
}
