package middlewares

import (
	"fmt"
	"log"
	"net/http"

	"github.com/daybookhq/daybook/internal/jerror"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler is a middleware that formats rendered errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if !c.Response().Committed {
		switch err := err.(type) {
		case *echo.HTTPError:
			if err.Internal != nil {
				log.Printf("Error [ECHO]: %s", err.Internal)
			}
			_ = c.JSON(err.Code, jerror.New(fmt.Sprintf("%v", err.Message)))
		case *jerror.JError:
			status := jerror.StatusCode(err)
			if status < 500 {
				_ = c.JSON(status, err)
				return
			}

			internal(err, c)
		default:
			internal(err, c)
		}
	}
}

func internal(err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.Printf("Error [%s]: %s", id, err.Error())

	_ = c.JSON(http.StatusInternalServerError, jerror.New(err.Error()))
}
