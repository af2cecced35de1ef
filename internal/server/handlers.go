package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arugacyber/thumbnail"
)

type resolutionResponse struct {
	Query    string `json:"query"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Variant  string `json:"variant,omitempty"`
	Category string `json:"category,omitempty"`
}

func toResponse(r thumbnail.Resolution) resolutionResponse {
	return resolutionResponse{
		Query:    r.Query,
		URL:      r.URL,
		Source:   r.Source,
		Variant:  r.Variant,
		Category: r.Category,
	}
}

type catalogEntry struct {
	Key    string `json:"key"`
	Images int    `json:"images"`
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleThumbnail(c echo.Context) error {
	res := a.Thumbs.Resolve(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, toResponse(res))
}

func (a *App) handleArticle(c echo.Context) error {
	ctx := c.Request().Context()
	phrase := a.Thumbs.SearchPhrase(ctx, c.QueryParam("title"), c.QueryParam("description"))
	res := a.Thumbs.Resolve(ctx, phrase)
	return c.JSON(http.StatusOK, toResponse(res))
}

func (a *App) handleCatalog(c echo.Context) error {
	cat := a.catalog()
	keys := append(cat.Keys(), thumbnail.GenericCategory)
	out := make([]catalogEntry, 0, len(keys))
	for _, k := range keys {
		pool, _ := cat.Pool(k)
		out = append(out, catalogEntry{Key: k, Images: len(pool)})
	}
	return c.JSON(http.StatusOK, out)
}
