//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/e-gun/TopicaGoServer/internal/gen"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vlt"
	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtTopicGraph - render a page of bar charts showing the term weights behind each topic title of a vaulted report
func RtTopicGraph(c echo.Context) error {
	const (
		DISABLED = "Graphing has been disabled on this server."
		SESSOFF  = "Graphing is turned off in this session; visit '/setoption/graph/yes' to turn it back on."
		UNKNOWN  = "No report with id »%s« is in the vault. Extract first; graph next."
	)

	c.Response().After(func() { Msg.LogPaths("RtTopicGraph()") })

	user := vlt.ReadUUIDCookie(c)
	s := vlt.AllSessions.GetSess(user)

	fail := func(code int, m string) error {
		return c.JSONPretty(code, str.ExtractionFailureJSON{Message: m}, vv.JSONINDENT)
	}

	if lnch.Config.GraphDisabled {
		return fail(http.StatusForbidden, DISABLED)
	}

	if !s.GraphOK {
		return fail(http.StatusForbidden, SESSOFF)
	}

	id := gen.Purgechars(lnch.Config.BadChars, c.Param("id"))
	if !vlt.AllReports.IsInVault(id) {
		return fail(http.StatusNotFound, fmt.Sprintf(UNKNOWN, id))
	}

	r := vlt.AllReports.GetReport(id)

	return c.HTML(http.StatusOK, buildreportgraph(r))
}

//
// GRAPHING
//

// buildreportgraph - one bar chart per topic, stacked onto a single html page
func buildreportgraph(r str.TopicReport) string {
	const (
		PAGETITLE = "topics of »%s«"
	)

	p := components.NewPage()
	p.PageTitle = fmt.Sprintf(PAGETITLE, r.Filename)

	for _, l := range r.Labels {
		p.AddCharts(newtopicbar(l, r))
	}

	var buf bytes.Buffer
	err := p.Render(&buf)
	Msg.EC(err)

	return buf.String()
}

// newtopicbar - return a pre-formatted charts.Bar for one topic
func newtopicbar(l str.TopicLabel, r str.TopicReport) *charts.Bar {
	const (
		PRECISON   = 4
		SERIESNAME = "term weight"
		TITLESTR   = "Topic %d: %s"
		SUBSTR     = "»%s« (k=%d)"
		LEFTALIGN  = "20"
		SAVETYPE   = "png" // svg requires specific chart initialization
		SAVESTR    = "Save to file..."
	)

	round := func(val float64) float32 {
		ratio := math.Pow(10, float64(PRECISON))
		return float32(math.Round(val*ratio) / ratio)
	}

	terms := make([]string, len(l.Terms))
	weights := make([]opts.BarData, len(l.Terms))
	for i, tw := range l.Terms {
		terms[i] = tw.Term
		weights[i] = opts.BarData{Value: round(tw.Weight)}
	}

	tit := opts.Title{
		Title:    fmt.Sprintf(TITLESTR, l.Topic, l.Title),
		Subtitle: fmt.Sprintf(SUBSTR, r.Filename, r.K),
		Left:     LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  fmt.Sprintf(TITLESTR, l.Topic, l.Title),
		Title: SAVESTR, // get chinese if ""
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Right:   LEFTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
	)

	bar.SetXAxis(terms).AddSeries(SERIESNAME, weights)

	return bar
}
