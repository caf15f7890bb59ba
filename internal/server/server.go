package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/daybookhq/daybook/internal/database"
	"github.com/daybookhq/daybook/internal/identity"
	"github.com/daybookhq/daybook/internal/server/middlewares"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	Identity identity.Client
	// SecureCookies marks the session cookies as Secure (production).
	SecureCookies bool
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Session(ctrl.Identity))

	//
	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		identity:      ctrl.Identity,
		secureCookies: ctrl.SecureCookies,
	}
	router.POST("/auth/signup", auth.Register)
	router.POST("/auth/login", auth.Login)
	router.POST("/auth/logout", auth.Logout)
	router.GET("/auth/me", auth.Me)

	//
	// entry handlers
	//
	entry := &entry{
		db: ctrl.Database,
	}
	restricted.GET("/entries", entry.List)
	restricted.POST("/entries", entry.Create)
	restricted.GET("/entries/:id", entry.Show)
	restricted.PATCH("/entries/:id", entry.Update)
	restricted.DELETE("/entries/:id", entry.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *identity.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*identity.User)
	if ok {
		return user
	}
	return nil
}
