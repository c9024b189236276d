package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// JSONで標準出力に出すアプリ共通ロガー
func New(env string) *logrus.Logger {
	logg := logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)

	if env == "production" {
		logg.SetLevel(logrus.InfoLevel)
	} else {
		logg.SetLevel(logrus.DebugLevel)
	}

	return logg
}
