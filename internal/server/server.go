package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tracelab/trace/internal/config"
	"github.com/tracelab/trace/internal/core"
	"github.com/tracelab/trace/internal/core/mint"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/driver"
	"github.com/tracelab/trace/internal/ledger"
	"github.com/tracelab/trace/internal/llm"
	"github.com/tracelab/trace/internal/registry"
)

type Server struct {
	Pipeline *core.Pipeline
	Registry registry.Store
	Wallet   string
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using env-only config", cfgPath, err)
		cfg = &config.Config{}
	}

	// Env vars override the config file.
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
	if v := os.Getenv("REGISTRY_DIR"); v != "" {
		cfg.Registry.Dir = v
	}
	if v := os.Getenv("LEDGER_RPC_URL"); v != "" {
		cfg.Ledger.RPCURL = v
	}
	if v := os.Getenv("AUTHOR_WALLET"); v != "" {
		cfg.Pipeline.AuthorWallet = v
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "groq"
		cfg.LLM.Model = "llama-3.3-70b-versatile"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 120
	}
	if cfg.Registry.Dir == "" {
		cfg.Registry.Dir = "data/hypotheses"
	}

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	store, err := registry.NewFileStore(cfg.Registry.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize registry: %v", err)
	}

	writer := ledger.NewRPCWriter(cfg.Ledger.RPCURL, cfg.Ledger.Network)

	var graphStore *driver.GraphStore
	if cfg.GraphStore.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.GraphStore.URI, cfg.GraphStore.User, cfg.GraphStore.Password)
		if err != nil {
			log.Printf("Warning: graph store unavailable: %v", err)
		} else {
			graphStore = driver.NewGraphStore(d)
			if err := graphStore.EnsureIndices(context.Background()); err != nil {
				log.Printf("Warning: failed to build graph indices: %v", err)
			}
		}
	}

	minter := mint.NewMinter(store, writer)
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	pipeline := core.NewPipeline(llmClient, minter, graphStore, timeout)

	return &Server{
		Pipeline: pipeline,
		Registry: store,
		Wallet:   cfg.Pipeline.AuthorWallet,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/api/hypotheses", s.ProcessPapers)
	r.GET("/api/hypotheses/:id", s.GetHypothesis)
	r.GET("/api/hypotheses", s.ListHypotheses)

	return r
}

type ProcessRequest struct {
	PaperA       model.ExtractedPaper `json:"paper_a"`
	PaperB       model.ExtractedPaper `json:"paper_b"`
	AuthorWallet string               `json:"author_wallet"`
}

func (s *Server) ProcessPapers(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	wallet := req.AuthorWallet
	if wallet == "" {
		wallet = s.Wallet
	}

	result, err := s.Pipeline.Run(c.Request.Context(), &req.PaperA, &req.PaperB, wallet)
	if err != nil {
		status := http.StatusInternalServerError
		stage := ""
		var stageErr *model.StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
			if errors.Is(err, model.ErrInputValidation) {
				status = http.StatusUnprocessableEntity
			}
		}
		log.Printf("Pipeline run failed: %v", err)
		c.JSON(status, gin.H{"error": err.Error(), "stage": stage})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) GetHypothesis(c *gin.Context) {
	card, err := s.Registry.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hypothesis not found"})
			return
		}
		log.Printf("Registry get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hypothesis"})
		return
	}
	c.JSON(http.StatusOK, card)
}

func (s *Server) ListHypotheses(c *gin.Context) {
	filters := registry.Filters{
		PrimarySynergyID: c.Query("synergy"),
		Confidence:       model.Confidence(c.Query("confidence")),
	}
	if v := c.Query("variable"); v != "" {
		filters.Variables = []string{v}
	}

	cards, err := s.Registry.List(filters)
	if err != nil {
		log.Printf("Registry list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hypotheses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hypotheses": cards})
}
