package eddsastrict

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

func init() {
	logger.Store(logrus.StandardLogger())
}

// SetLogger redirects the package's diagnostics. A nil logger restores the
// logrus standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger.Store(l)
}

func logFor(function string) *logrus.Entry {
	return logger.Load().WithFields(logrus.Fields{
		"package":  "eddsastrict",
		"function": function,
	})
}

// bytesPreview logs only the leading bytes of public material.
func bytesPreview(data []byte, name string) logrus.Fields {
	preview := "nil"
	if len(data) > 0 {
		n := 8
		if len(data) < n {
			n = len(data)
		}
		preview = fmt.Sprintf("%x", data[:n])
		if len(data) > n {
			preview += "..."
		}
	}
	return logrus.Fields{
		name + "_preview": preview,
		name + "_size":    len(data),
	}
}

// rejected logs a verification failure at debug level and returns err.
func rejected(function string, pk PublicKey, err error) error {
	logFor(function).
		WithFields(bytesPreview(pk.b[:], "public_key")).
		WithError(err).
		Debug("signature rejected")
	return err
}
