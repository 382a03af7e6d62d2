// Package server exposes the story service as a JSON API on echo.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"GO-story/internal/story"
)

const banner = "Gossip Girl API is running."

// New builds the echo instance with every route registered.
func New(svc *story.Service, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	SetLevel(e, loglevel)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		he := asErrorMessage(err)
		e.DefaultHTTPErrorHandler(he, c)
		if he.Code < http.StatusInternalServerError {
			c.Logger().Debug(err)
			return
		}
		c.Logger().Error(err)
	}
	e.Use(middleware.Recover())
	e.Use(logRequests)

	h := &handlers{svc: svc}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, banner)
	})
	e.GET("/canon-rules", h.canonRules)

	e.GET("/characters", h.listCharacters)
	e.GET("/characters/:name", h.getCharacter)
	e.POST("/characters/:name", h.saveCharacter)

	e.GET("/stories", h.listStories)
	e.POST("/story-fresh", h.createStory)
	e.GET("/story/:id", h.getStory)
	e.DELETE("/story/:id", h.deleteStory)
	e.POST("/story/:id/events", h.addEvent)
	e.GET("/story/:id/summary", h.summary)
	e.GET("/story/:id/milestones", h.milestones)
	e.POST("/story/:id/fork", h.forkStory)
	e.POST("/story/:id/characters/:name", h.updateCharacterState)
	e.GET("/story/:id/relationships", h.relationships)
	e.POST("/story/:id/relationships", h.setRelationship)
	e.GET("/story/:id/prompt", h.prompt)
	e.POST("/story/:id/continue", h.continueStory)

	return e
}
