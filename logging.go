package malbolge_gen

import (
	"github.com/sirupsen/logrus"
)

// logger is the package logger. The malbolge CLI sets the level on the
// standard logrus instance; hot-path debug lines stay behind the DEBUG gate.
var logger = logrus.WithField("component", "malbolge_gen")
