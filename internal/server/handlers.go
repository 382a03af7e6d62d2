package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"GO-story/internal/story"
)

type handlers struct {
	svc *story.Service
}

type statusResponse struct {
	Status string `json:"status"`
}

type storyIDResponse struct {
	StoryID string `json:"storyId"`
}

type createStoryRequest struct {
	Title      string   `json:"title"`
	Characters []string `json:"characters"`
}

type forkRequest struct {
	Title string `json:"title"`
}

type eventRequest struct {
	Text string `json:"text"`
}

type eventResponse struct {
	EventIndex int              `json:"eventIndex"`
	Summary    string           `json:"summary"`
	Milestone  *story.Milestone `json:"milestone,omitempty"`
}

type relationshipRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

type relationshipsResponse struct {
	Relationships map[string]map[string]string `json:"relationships"`
}

type continueRequest struct {
	Direction string `json:"direction"`
}

type continueResponse struct {
	Scene     string           `json:"scene"`
	Summary   string           `json:"summary"`
	Milestone *story.Milestone `json:"milestone,omitempty"`
}

func (h *handlers) canonRules(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"rules": h.svc.Rules()})
}

func (h *handlers) listCharacters(c echo.Context) error {
	chars, err := h.svc.ListCharacters(c.Request().Context())
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, chars)
}

func (h *handlers) getCharacter(c echo.Context) error {
	char, err := h.svc.GetCharacter(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, char)
}

func (h *handlers) saveCharacter(c echo.Context) error {
	var char story.Character
	if err := c.Bind(&char); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	name := c.Param("name")
	if _, err := h.svc.SaveCharacter(c.Request().Context(), name, char); err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, statusResponse{Status: fmt.Sprintf("%s saved", name)})
}

func (h *handlers) listStories(c echo.Context) error {
	all, err := h.svc.ListStories(c.Request().Context())
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, all)
}

func (h *handlers) createStory(c echo.Context) error {
	var req createStoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	st, err := h.svc.CreateStory(c.Request().Context(), req.Title, req.Characters)
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, storyIDResponse{StoryID: st.ID})
}

func (h *handlers) getStory(c echo.Context) error {
	st, err := h.svc.GetStory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *handlers) deleteStory(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.DeleteStory(c.Request().Context(), id); err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, statusResponse{Status: fmt.Sprintf("Story %s deleted.", id)})
}

func (h *handlers) addEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	st, m, err := h.svc.AddEvent(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, eventResponse{
		EventIndex: len(st.Events) - 1,
		Summary:    st.Summary,
		Milestone:  m,
	})
}

func (h *handlers) summary(c echo.Context) error {
	sum, err := h.svc.Summary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": sum})
}

func (h *handlers) milestones(c echo.Context) error {
	ms, err := h.svc.Milestones(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, ms)
}

func (h *handlers) forkStory(c echo.Context) error {
	var req forkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	f, err := h.svc.ForkStory(c.Request().Context(), c.Param("id"), req.Title)
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, storyIDResponse{StoryID: f.ID})
}

func (h *handlers) updateCharacterState(c echo.Context) error {
	var char story.Character
	if err := c.Bind(&char); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	id := c.Param("id")
	key, err := h.svc.UpdateCharacterState(c.Request().Context(), id, c.Param("name"), char)
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, statusResponse{
		Status: fmt.Sprintf("Character '%s' updated for story %s.", key, id),
	})
}

func (h *handlers) relationships(c echo.Context) error {
	rels, err := h.svc.Relationships(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, relationshipsResponse{Relationships: rels})
}

func (h *handlers) setRelationship(c echo.Context) error {
	var req relationshipRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	rels, err := h.svc.SetRelationship(c.Request().Context(), c.Param("id"), req.From, req.To, req.Label)
	if err != nil {
		return fromServiceError(err)
	}
	if rels == nil {
		rels = map[string]map[string]string{}
	}
	return c.JSON(http.StatusOK, relationshipsResponse{Relationships: rels})
}

func (h *handlers) prompt(c echo.Context) error {
	p, err := h.svc.Prompt(c.Request().Context(), c.Param("id"), c.QueryParam("direction"))
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"prompt": p})
}

func (h *handlers) continueStory(c echo.Context) error {
	var req continueRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("can not understand the requested json", err)
	}
	scene, st, m, err := h.svc.Continue(c.Request().Context(), c.Param("id"), req.Direction)
	if err != nil {
		return fromServiceError(err)
	}
	return c.JSON(http.StatusOK, continueResponse{Scene: scene, Summary: st.Summary, Milestone: m})
}
