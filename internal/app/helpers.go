package app

import "github.com/gin-gonic/gin"

// configureGinMode picks gin's mode from the environment. Route debug output
// is silenced; the zap request logger covers it.
func configureGinMode(dev bool) {
	if !dev {
		gin.SetMode(gin.ReleaseMode)
		return
	}
	if gin.Mode() == gin.TestMode {
		return
	}
	gin.SetMode(gin.DebugMode)
	gin.DebugPrintRouteFunc = func(string, string, string, int) {}
}
