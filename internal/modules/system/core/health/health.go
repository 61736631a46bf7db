package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxListedCollections = 10

// Database is the subset of the store client the probes need.
type Database interface {
	Name() string
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

// EnvFlags records whether the connection settings came from the environment.
type EnvFlags struct {
	DatabaseURL  bool
	DatabaseName bool
}

type diagnostic struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// RegisterRoutes mounts the banner and the diagnostic on root and the
// readiness probe on api. db may be nil.
func RegisterRoutes(root gin.IRoutes, api *gin.RouterGroup, db Database, env EnvFlags) {
	root.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Auto-Explainer API running"})
	})

	root.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, diagnose(c.Request.Context(), db, env))
	})

	api.GET("/health", func(c *gin.Context) {
		dbOK := db != nil && db.Ping(c.Request.Context()) == nil

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
		})
	})
}

func diagnose(ctx context.Context, db Database, env EnvFlags) diagnostic {
	d := diagnostic{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      setLabel(env.DatabaseURL),
		DatabaseName:     setLabel(env.DatabaseName),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if db == nil {
		d.Database = "⚠️ Available but not initialized"
		return d
	}

	d.Database = "✅ Available"
	d.ConnectionStatus = "Connected"
	names, err := db.CollectionNames(ctx)
	if err != nil {
		d.Database = "⚠️ Connected but Error: " + clip(err.Error(), 50)
		return d
	}
	if len(names) > maxListedCollections {
		names = names[:maxListedCollections]
	}
	if names != nil {
		d.Collections = names
	}
	d.Database = "✅ Connected & Working"
	return d
}

func setLabel(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
