package highway

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "highway")
