package server

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		meth := c.Request().Method
		path := c.Request().URL
		begin := time.Now()
		c.Logger().Debugf("< request %s %s", meth, path)

		// errors are written here so the logged status is the one sent
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		c.Logger().Infof(
			"> response status = %d (for %s %s) in %v / error = %v",
			c.Response().Status, meth, path, time.Since(begin), err,
		)
		return nil
	}
}

// SetLevel sets the echo logger level by name: debug|info|warn|error|off.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}
