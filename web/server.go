// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

// Package web serves a small local browser UI over the stored packing runs.
package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fjankowsk/meertrap-misc/report"
	"github.com/fjankowsk/meertrap-misc/store"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head><title>beampack runs</title></head>
<body>
<h1>Packing runs</h1>
<table border="1" cellpadding="4">
<tr><th>Id</th><th>Source</th><th>nbeams</th><th>bunch</th><th>Beams</th><th>Groups</th><th>Created</th><th>Charts</th></tr>
{{range .Runs}}
<tr>
<td>{{.ID}}</td>
<td>{{.SourceFile}}</td>
<td>{{.NBeams}}</td>
<td>{{.Bunch}}</td>
<td>{{.BeamCount}}</td>
<td>{{.GroupCount}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
<td>
<a href="/runs/{{.ID}}/scatter">scatter</a>
<a href="/runs/{{.ID}}/histogram">histogram</a>
<a href="/runs/{{.ID}}/cdf">cdf</a>
</td>
</tr>
{{end}}
</table>
</body>
</html>`

// listLimit caps the index page and the JSON run list.
const listLimit = 200

// Server exposes stored packing runs over HTTP, both as JSON and as
// rendered echarts pages. It binds to localhost only.
type Server struct {
	repo store.RunRepository
}

// NewServer creates a web server over the given run repository.
func NewServer(repo store.RunRepository) *Server {
	return &Server{repo: repo}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("index.html").Parse(indexTemplate)))

	r.GET("/", s.indexView)
	r.GET("/runs/:id/scatter", s.scatterView)
	r.GET("/runs/:id/histogram", s.histogramView)
	r.GET("/runs/:id/cdf", s.cdfView)
	r.GET("/api/runs", s.listRuns)
	r.GET("/api/runs/:id", s.getRun)

	return r
}

// Run serves on localhost at the given port until the listener fails.
func (s *Server) Run(port int) error {
	return s.Router().Run("localhost:" + strconv.Itoa(port))
}

func (s *Server) indexView(ctx *gin.Context) {
	runs, err := s.repo.ListRuns(listLimit, 0)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "listing runs: %v", err)

		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{"Runs": runs})
}

func (s *Server) listRuns(ctx *gin.Context) {
	runs, err := s.repo.ListRuns(listLimit, 0)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(ctx *gin.Context) {
	run, ok := s.loadRun(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"run":     run,
		"summary": report.Summarize(run.Scores),
	})
}

func (s *Server) scatterView(ctx *gin.Context) {
	run, ok := s.loadRun(ctx)
	if !ok {
		return
	}

	ctx.Header("Content-Type", "text/html; charset=utf-8")

	title := "Beam packing - " + run.SourceFile
	if err := report.RenderGroupScatter(ctx.Writer, run.Beams, title); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) histogramView(ctx *gin.Context) {
	run, ok := s.loadRun(ctx)
	if !ok {
		return
	}

	ctx.Header("Content-Type", "text/html; charset=utf-8")

	title := "Total distance histogram - " + run.SourceFile
	if err := report.RenderScoreHistogram(ctx.Writer, run.Scores, title); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) cdfView(ctx *gin.Context) {
	run, ok := s.loadRun(ctx)
	if !ok {
		return
	}

	ctx.Header("Content-Type", "text/html; charset=utf-8")

	title := "Total distance CDF - " + run.SourceFile
	if err := report.RenderScoreCDF(ctx.Writer, run.Scores, title); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) loadRun(ctx *gin.Context) (*store.Run, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})

		return nil, false
	}

	run, err := s.repo.GetRun(id)
	if errors.Is(err, store.ErrRunNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "run not found"})

		return nil, false
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return nil, false
	}

	return run, true
}
