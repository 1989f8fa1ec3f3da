package core

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tracelab/trace/internal/core/graph"
	"github.com/tracelab/trace/internal/core/hypothesis"
	"github.com/tracelab/trace/internal/core/mint"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/core/synergy"
	"github.com/tracelab/trace/internal/driver"
	"github.com/tracelab/trace/internal/llm"
)

// Pipeline wires the full run: graph construction, synergy analysis, graph
// enhancement, primary selection, bounded hypothesis generation, then
// minting. Each run operates on immutable inputs and owns its intermediate
// values; a fatal stage error short-circuits everything downstream.
type Pipeline struct {
	LLM        llm.LLMClient
	Analyzer   *synergy.Analyzer
	Generator  *hypothesis.Generator
	Minter     *mint.Minter
	GraphStore *driver.GraphStore // optional, best-effort persistence
	Timeout    time.Duration      // per reasoner-bearing stage; 0 disables
}

func NewPipeline(llmClient llm.LLMClient, minter *mint.Minter, store *driver.GraphStore, timeout time.Duration) *Pipeline {
	return &Pipeline{
		LLM:        llmClient,
		Analyzer:   synergy.NewAnalyzer(llmClient),
		Generator:  hypothesis.NewGenerator(llmClient),
		Minter:     minter,
		GraphStore: store,
		Timeout:    timeout,
	}
}

// RunResult carries everything a run produced. Card and Mint are nil when
// the run fails; partial results are never reported as success.
type RunResult struct {
	RunID          string                `json:"run_id"`
	Graph          *model.Graph          `json:"graph"`
	Analysis       *model.AnalysisResult `json:"analysis"`
	PrimarySynergy *model.Synergy        `json:"primary_synergy"`
	Card           *model.MintedCard     `json:"card"`
	Mint           *model.MintResult     `json:"mint"`
	Outcome        hypothesis.State      `json:"outcome"`
	Attempts       int                   `json:"attempts"`
}

func (p *Pipeline) Run(ctx context.Context, paperA, paperB *model.ExtractedPaper, authorWallet string) (*RunResult, error) {
	runID := uuid.New().String()

	baseGraph, err := graph.Build(paperA, paperB)
	if err != nil {
		return nil, &model.StageError{Stage: "graph_build", Err: err}
	}

	analysis, err := p.analyze(ctx, paperA, paperB, baseGraph)
	if err != nil {
		return nil, &model.StageError{Stage: "synergy_analysis", Err: err}
	}

	enhanced, err := graph.Enhance(baseGraph, analysis)
	if err != nil {
		return nil, &model.StageError{Stage: "graph_enhance", Err: err}
	}

	primary, err := synergy.SelectPrimary(analysis.PotentialSynergies, analysis.OverlappingVariables)
	if err != nil {
		return nil, &model.StageError{Stage: "synergy_select", Err: err}
	}

	genResult, err := p.generate(ctx, paperA, paperB, analysis, enhanced, primary)
	if err != nil {
		return nil, &model.StageError{Stage: "hypothesis_generation", Err: err}
	}

	mintResult, minted, err := p.Minter.Mint(ctx, genResult.Card, authorWallet)
	if err != nil {
		return nil, &model.StageError{Stage: "mint", Err: err}
	}

	if p.GraphStore != nil {
		if err := p.GraphStore.SaveGraph(ctx, runID, enhanced); err != nil {
			log.Printf("Warning: graph persistence failed for run %s: %v", runID, err)
		}
	}

	return &RunResult{
		RunID:          runID,
		Graph:          enhanced,
		Analysis:       analysis,
		PrimarySynergy: primary,
		Card:           minted,
		Mint:           mintResult,
		Outcome:        genResult.State,
		Attempts:       genResult.Attempts,
	}, nil
}

func (p *Pipeline) analyze(ctx context.Context, paperA, paperB *model.ExtractedPaper, g *model.Graph) (*model.AnalysisResult, error) {
	ctx, cancel := p.stageContext(ctx)
	defer cancel()
	return p.Analyzer.Analyze(ctx, paperA, paperB, g)
}

func (p *Pipeline) generate(ctx context.Context, paperA, paperB *model.ExtractedPaper,
	analysis *model.AnalysisResult, g *model.Graph, primary *model.Synergy) (*hypothesis.Result, error) {
	ctx, cancel := p.stageContext(ctx)
	defer cancel()
	return p.Generator.Generate(ctx, paperA, paperB, analysis, g, primary)
}

func (p *Pipeline) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.Timeout)
}
