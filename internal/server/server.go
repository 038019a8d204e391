package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/scorecard/internal/config"
	"github.com/agenthands/scorecard/internal/core"
	"github.com/agenthands/scorecard/internal/core/model"
	"github.com/agenthands/scorecard/internal/llm"
	"github.com/agenthands/scorecard/internal/store"
)

type Server struct {
	Config *config.Config
	Engine *core.Engine
	Store  store.ResultStore
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env overrides for container deployments.
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("SCORECARD_DB"); v != "" {
		cfg.Store.Path = v
	}

	var client llm.Client
	if cfg.Scoring.UseSemantic {
		client, err = llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
	}

	var st store.ResultStore
	if cfg.Store.Path != "" {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to open results store: %v", err)
		}
		st = sqlStore
	}

	return &Server{
		Config: cfg,
		Engine: core.NewEngine(cfg, client, st),
		Store:  st,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/extract", s.Extract)
	r.POST("/evaluate", s.Evaluate)
	r.POST("/runs", s.CreateRun)
	r.GET("/runs", s.ListRuns)
	r.GET("/runs/:uuid", s.GetRun)

	return r
}

type ExtractRequest struct {
	Text string `json:"text"`
}

func (s *Server) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": s.Engine.Extractor.Extract(req.Text)})
}

type EvaluateRequest struct {
	Response string   `json:"response"`
	Truth    []string `json:"truth"`
	RunUUID  string   `json:"run_uuid"`
	SampleID string   `json:"sample_id"`
}

func (s *Server) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.RunUUID == "" {
		report := s.Engine.Evaluate(c.Request.Context(), req.Response, req.Truth)
		c.JSON(http.StatusOK, gin.H{"report": report})
		return
	}

	if s.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results store configured"})
		return
	}

	ev, err := s.Engine.EvaluateSample(c.Request.Context(), req.RunUUID, req.SampleID, req.Response, req.Truth)
	if err != nil {
		log.Printf("Failed to evaluate sample: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate sample"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evaluation": ev})
}

type CreateRunRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateRun(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results store configured"})
		return
	}

	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	run := model.Run{UUID: uuid.New().String(), Name: req.Name, CreatedAt: time.Now().UTC()}
	if err := s.Store.SaveRun(c.Request.Context(), run); err != nil {
		log.Printf("Failed to create run: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run": run})
}

func (s *Server) ListRuns(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results store configured"})
		return
	}

	runs, err := s.Store.ListRuns(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) GetRun(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results store configured"})
		return
	}

	runUUID := c.Param("uuid")
	summary, err := s.Store.GetRunSummary(c.Request.Context(), runUUID)
	if err != nil {
		log.Printf("Failed to summarize run: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize run"})
		return
	}

	evs, err := s.Store.ListEvaluations(c.Request.Context(), runUUID)
	if err != nil {
		log.Printf("Failed to list evaluations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list evaluations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "evaluations": evs})
}
