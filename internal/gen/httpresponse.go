package gen

import (
	"net/http"

	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// JSONPretty will end up prominent on the profiler if the payloads are big; ours are a handful of titles
	// and some counters, so legibility wins
	return c.JSONPretty(http.StatusOK, jsr, vv.JSONINDENT)
}
