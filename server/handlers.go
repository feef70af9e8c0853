package server

import (
	"net/http"

	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/model"
	"github.com/labstack/echo/v4"
)

// CatalogItem is a catalog entry with its resolved display colors
type CatalogItem struct {
	model.CatalogEntry
	Tokens model.ColorTokens `json:"tokens"`
	Opened bool              `json:"opened"`
}

// ActivateResponse is returned by POST /jar/activate
type ActivateResponse struct {
	Accepted bool         `json:"accepted"`
	State    jar.Snapshot `json:"state"`
}

// NotesResponse is returned by GET /notes
type NotesResponse struct {
	Notes []model.OpenedNote `json:"notes"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// do runs fn on the jar loop, mapping loop failures to 503
func (s *Server) do(c echo.Context, fn func(*jar.Controller)) error {
	if err := s.loop.Do(c.Request().Context(), fn); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return nil
}

func (s *Server) handleCatalog(c echo.Context) error {
	var items []CatalogItem
	err := s.do(c, func(ctrl *jar.Controller) {
		opened := make(map[string]bool)
		for _, n := range ctrl.History() {
			opened[n.ID] = true
		}
		for _, e := range s.catalog.Entries() {
			items = append(items, CatalogItem{CatalogEntry: e, Tokens: e.Color.Tokens(), Opened: opened[e.ID]})
		}
	})
	if err != nil {
		return err
	}
	if items == nil {
		items = []CatalogItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleState(c echo.Context) error {
	var snap jar.Snapshot
	if err := s.do(c, func(ctrl *jar.Controller) { snap = ctrl.Snapshot() }); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// handleNotes lists opened notes newest first, or in reveal order with
// ?order=reveal
func (s *Server) handleNotes(c echo.Context) error {
	order := c.QueryParam("order")
	if order != "" && order != "reveal" && order != "newest" {
		return errorJSON(c, http.StatusBadRequest, "order must be 'newest' or 'reveal'")
	}

	var notes []model.OpenedNote
	err := s.do(c, func(ctrl *jar.Controller) {
		if order == "reveal" {
			notes = ctrl.History()
		} else {
			notes = ctrl.Gallery()
		}
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NotesResponse{Notes: notes})
}

func (s *Server) handleActivate(c echo.Context) error {
	var resp ActivateResponse
	err := s.do(c, func(ctrl *jar.Controller) {
		resp.Accepted = ctrl.Activate()
		resp.State = ctrl.Snapshot()
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleReset(c echo.Context) error {
	var snap jar.Snapshot
	err := s.do(c, func(ctrl *jar.Controller) {
		ctrl.Reset()
		snap = ctrl.Snapshot()
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

func (s *Server) handleOpenNote(c echo.Context) error {
	id := c.Param("id")
	var (
		found bool
		snap  jar.Snapshot
	)
	err := s.do(c, func(ctrl *jar.Controller) {
		found = ctrl.OpenDetailByID(id)
		snap = ctrl.Snapshot()
	})
	if err != nil {
		return err
	}
	if !found {
		return errorJSON(c, http.StatusNotFound, "note not opened yet")
	}
	return c.JSON(http.StatusOK, snap)
}

func (s *Server) handleCloseDetail(c echo.Context) error {
	var snap jar.Snapshot
	err := s.do(c, func(ctrl *jar.Controller) {
		ctrl.CloseDetail()
		snap = ctrl.Snapshot()
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
