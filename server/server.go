// Package server exposes the workflow core over HTTP: registering plugin
// package descriptors, registering workflows, triggering runs and reading
// result histories.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/Walkmana-25/Saphillon-Core/api/v1"
	"github.com/Walkmana-25/Saphillon-Core/plugin"
	"github.com/Walkmana-25/Saphillon-Core/workflow"
)

// Server holds the registered plugin packages and workflows. Host function
// bodies only exist in-process, so packages registered from descriptors
// resolve their bodies against the functions of the packages the server was
// built with, keyed by function id.
type Server struct {
	log *slog.Logger

	mu        sync.RWMutex
	packages  map[string]*plugin.Package
	functions map[string]*plugin.Function // by function id, for descriptor resolution
	workflows map[string]*workflow.Code
}

// New creates a Server preloaded with the given plugin packages.
func New(log *slog.Logger, packages ...*plugin.Package) *Server {
	s := &Server{
		log:       log,
		packages:  make(map[string]*plugin.Package),
		functions: make(map[string]*plugin.Function),
		workflows: make(map[string]*workflow.Code),
	}
	for _, p := range packages {
		s.addPackage(p)
	}
	return s
}

func (s *Server) addPackage(p *plugin.Package) {
	s.packages[p.ID] = p
	for _, f := range p.Functions {
		s.functions[f.ID] = f
	}
}

// Register installs the HTTP routes on a gin engine.
func (s *Server) Register(g *gin.Engine) {
	g.GET("/v1/plugins", s.listPlugins)
	g.POST("/v1/plugins", s.registerPlugin)
	g.GET("/v1/workflows", s.listWorkflows)
	g.POST("/v1/workflows", s.registerWorkflow)
	g.POST("/v1/workflows/:id/run", s.runWorkflow)
	g.GET("/v1/workflows/:id/results", s.workflowResults)
}

func (s *Server) listPlugins(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*v1.PluginPackage, 0, len(s.packages))
	for _, p := range s.packages {
		out = append(out, p.Descriptor())
	}
	c.JSON(http.StatusOK, gin.H{"plugins": out})
}

// registerPlugin accepts a wire-level package descriptor. Every function in
// it must resolve to a body already known to this process; descriptors never
// carry code.
func (s *Server) registerPlugin(c *gin.Context) {
	var d v1.PluginPackage
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid plugin package descriptor: " + err.Error()})
		return
	}
	if d.PackageID == "" {
		d.PackageID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fns := make([]*plugin.Function, 0, len(d.Functions))
	for i := range d.Functions {
		fd := &d.Functions[i]
		known, ok := s.functions[fd.FunctionID]
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "no body registered for function id " + fd.FunctionID,
			})
			return
		}
		fns = append(fns, plugin.FunctionFromDescriptor(fd, known.Body))
	}

	p := plugin.PackageFromDescriptor(&d, fns)
	s.addPackage(p)
	s.log.Info("plugin package registered", "package_id", p.ID, "functions", len(p.Functions))
	c.JSON(http.StatusCreated, p.Descriptor())
}

type registerWorkflowRequest struct {
	Workflow v1.WorkflowCode `json:"workflow"`
	Packages []string        `json:"packages"`
}

func (s *Server) registerWorkflow(c *gin.Context) {
	var req registerWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid workflow descriptor: " + err.Error()})
		return
	}
	if req.Workflow.ID == "" {
		req.Workflow.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workflows[req.Workflow.ID]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "workflow already registered: " + req.Workflow.ID})
		return
	}

	pkgs := make([]*plugin.Package, 0, len(req.Packages))
	for _, id := range req.Packages {
		p, ok := s.packages[id]
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "unknown plugin package: " + id})
			return
		}
		pkgs = append(pkgs, p)
	}

	wf := workflow.FromDescriptor(&req.Workflow, pkgs)
	s.workflows[wf.ID] = wf
	s.log.Info("workflow registered", "workflow_id", wf.ID, "code_revision", wf.CodeRevision)
	c.JSON(http.StatusCreated, gin.H{"id": wf.ID, "code_revision": wf.CodeRevision})
}

func (s *Server) listWorkflows(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type entry struct {
		ID           string `json:"id"`
		CodeRevision int32  `json:"code_revision"`
		Runs         int    `json:"runs"`
	}
	out := make([]entry, 0, len(s.workflows))
	for _, wf := range s.workflows {
		out = append(out, entry{ID: wf.ID, CodeRevision: wf.CodeRevision, Runs: len(wf.Results())})
	}
	c.JSON(http.StatusOK, gin.H{"workflows": out})
}

func (s *Server) runWorkflow(c *gin.Context) {
	wf, ok := s.lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown workflow: " + c.Param("id")})
		return
	}

	// Run blocks for the whole execution; failures come back as data.
	res := wf.Run(c.Request.Context())
	if res.ResultType == v1.WorkflowResultFailure {
		s.log.Error("workflow run failed",
			"workflow_id", wf.ID,
			"revision", res.WorkflowResultRevision,
			"error", res.Result)
	} else {
		s.log.Info("workflow run finished",
			"workflow_id", wf.ID,
			"revision", res.WorkflowResultRevision)
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) workflowResults(c *gin.Context) {
	wf, ok := s.lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown workflow: " + c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": wf.Results()})
}

func (s *Server) lookup(id string) (*workflow.Code, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wf, ok := s.workflows[id]
	return wf, ok
}
