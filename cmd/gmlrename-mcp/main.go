package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/gmlrename/pkg/analysis"
	"github.com/mamaar/gmlrename/pkg/apply"
	"github.com/mamaar/gmlrename/pkg/graph"
	"github.com/mamaar/gmlrename/pkg/hotreload"
	"github.com/mamaar/gmlrename/pkg/refactor"
	"github.com/mamaar/gmlrename/pkg/types"
)

func main() {
	var (
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("gmlrename-mcp v0.1.0")
		fmt.Println("Model Context Protocol server for semantic-safe GML symbol renames")
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	project := newMemProject()
	rawQueries := analysis.NewQueries(project.collaborators())
	cache := analysis.NewSemanticQueryCache(rawQueries, analysis.DefaultSemanticCacheConfig())
	queries := analysis.NewQueries(cache.Collaborators())

	planner := refactor.NewPlanner(queries, logger, analysis.NewRenameValidationCache(analysis.DefaultRenameCacheConfig()))
	batchPlanner := refactor.NewBatchPlanner(planner, logger)
	applier := apply.NewApplier(queries, logger)

	mcpServer := server.NewMCPServer(
		"gmlrename-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	addRegisterFileTool(mcpServer, project, cache)
	addPreviewRenameTool(mcpServer, planner)
	addPlanRenameTool(mcpServer, planner)
	addPlanBatchRenameTool(mcpServer, batchPlanner)
	addApplyRenameTool(mcpServer, applier, project)
	addBuildCascadeTool(mcpServer, queries, logger)
	addClassifySafetyTool(mcpServer, queries, logger)

	logger.Info("starting gmlrename-mcp", "transport", "stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// addRegisterFileTool lets a client seed the in-memory project index with
// a file's source and the symbol ids it declares. It registers no
// occurrences or dependents; those are added only through memProject's
// RegisterOccurrence and RegisterDependent methods.
func addRegisterFileTool(s *server.MCPServer, project *memProject, cache *analysis.SemanticQueryCache) {
	tool := mcp.NewTool("register_file",
		mcp.WithDescription("Register a GML file's source and declared symbols with the in-memory project index"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path, e.g. scripts/scr_move.gml")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Full source text of the file")),
		mcp.WithArray("declared_symbols", mcp.Description("Symbol ids declared in this file, e.g. gml/script/scr_move")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		path, ok := args["path"].(string)
		if !ok {
			return mcp.NewToolResultError("path is required"), nil
		}
		source, ok := args["source"].(string)
		if !ok {
			return mcp.NewToolResultError("source is required"), nil
		}

		var declared []string
		if raw, ok := args["declared_symbols"].([]any); ok {
			for _, v := range raw {
				if str, ok := v.(string); ok {
					declared = append(declared, str)
				}
			}
		}

		project.RegisterFile(path, source, declared)
		cache.InvalidateFile(path)
		return mcp.NewToolResultText(fmt.Sprintf("registered %s (%d symbols)", path, len(declared))), nil
	})
}

func addPreviewRenameTool(s *server.MCPServer, planner *refactor.Planner) {
	tool := mcp.NewTool("preview_rename",
		mcp.WithDescription("Preview a single rename without throwing on conflicts -- returns the conflicts that would be raised"),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Fully qualified symbol id, e.g. gml/script/scr_move")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("Proposed new bare name")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		symbol, ok := args["symbol"].(string)
		if !ok {
			return mcp.NewToolResultError("symbol is required"), nil
		}
		newName, ok := args["new_name"].(string)
		if !ok {
			return mcp.NewToolResultError("new_name is required"), nil
		}

		conflicts, err := planner.ValidateRenameRequest(types.RenameRequest{Symbol: symbol, NewName: newName})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error previewing rename: %v", err)), nil
		}

		return textResultJSON(conflicts)
	})
}

func addPlanRenameTool(s *server.MCPServer, planner *refactor.Planner) {
	tool := mcp.NewTool("plan_rename",
		mcp.WithDescription("Plan a single symbol rename, failing with a composite error if any conflict is detected"),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Fully qualified symbol id, e.g. gml/script/scr_move")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("Proposed new bare name")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		symbol, ok := args["symbol"].(string)
		if !ok {
			return mcp.NewToolResultError("symbol is required"), nil
		}
		newName, ok := args["new_name"].(string)
		if !ok {
			return mcp.NewToolResultError("new_name is required"), nil
		}

		plan, err := planner.PlanRename(types.RenameRequest{Symbol: symbol, NewName: newName})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error planning rename: %v", err)), nil
		}

		return textResultJSON(plan)
	})
}

func addPlanBatchRenameTool(s *server.MCPServer, batchPlanner *refactor.BatchPlanner) {
	tool := mcp.NewTool("plan_batch_rename",
		mcp.WithDescription("Plan a batch of renames applied together, rejecting duplicate symbols/targets and circular rename chains"),
		mcp.WithArray("renames", mcp.Required(), mcp.Description("Array of {symbol, new_name} objects")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		raw, ok := args["renames"].([]any)
		if !ok {
			return mcp.NewToolResultError("renames is required"), nil
		}

		reqs := make([]types.RenameRequest, 0, len(raw))
		for _, item := range raw {
			obj, ok := item.(map[string]any)
			if !ok {
				return mcp.NewToolResultError("each rename must be an object with symbol and new_name"), nil
			}
			symbol, _ := obj["symbol"].(string)
			newName, _ := obj["new_name"].(string)
			reqs = append(reqs, types.RenameRequest{Symbol: symbol, NewName: newName})
		}

		plan, err := batchPlanner.PlanBatchRename(reqs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error planning batch rename: %v", err)), nil
		}

		return textResultJSON(plan)
	})
}

func addApplyRenameTool(s *server.MCPServer, applier *apply.Applier, project *memProject) {
	tool := mcp.NewTool("apply_rename",
		mcp.WithDescription("Apply a previously planned workspace edit to the in-memory project (or dry-run it)"),
		mcp.WithString("plan_json", mcp.Required(), mcp.Description("JSON-encoded types.WorkspaceEdit, as returned in a plan's Edit field")),
		mcp.WithBoolean("dry_run", mcp.Description("If true, compute the result without writing it back"), mcp.DefaultBool(false)),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		planJSON, ok := args["plan_json"].(string)
		if !ok {
			return mcp.NewToolResultError("plan_json is required"), nil
		}
		dryRun, _ := args["dry_run"].(bool)

		var ws types.WorkspaceEdit
		if err := json.Unmarshal([]byte(planJSON), &ws); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid plan_json: %v", err)), nil
		}

		result, err := applier.Apply(project, ws, dryRun)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error applying edit: %v", err)), nil
		}

		return textResultJSON(result)
	})
}

func addBuildCascadeTool(s *server.MCPServer, queries *analysis.Queries, logger *slog.Logger) {
	tool := mcp.NewTool("build_cascade",
		mcp.WithDescription("Build the hot-reload cascade and impact graph for a set of directly-changed symbols"),
		mcp.WithArray("changed_symbols", mcp.Required(), mcp.Description("Symbol ids that changed directly")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		raw, ok := args["changed_symbols"].([]any)
		if !ok {
			return mcp.NewToolResultError("changed_symbols is required"), nil
		}

		changed := make([]string, 0, len(raw))
		for _, v := range raw {
			if str, ok := v.(string); ok {
				changed = append(changed, str)
			}
		}

		cascade, err := graph.BuildCascade(queries, changed, logger)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error building cascade: %v", err)), nil
		}
		impact := graph.BuildImpactGraph(cascade, logger)

		return textResultJSON(map[string]any{
			"cascade": cascade,
			"impact":  impact,
		})
	})
}

func addClassifySafetyTool(s *server.MCPServer, queries *analysis.Queries, logger *slog.Logger) {
	tool := mcp.NewTool("classify_safety",
		mcp.WithDescription("Classify whether a rename can be hot-reloaded safely or requires a full restart"),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Fully qualified symbol id")),
		mcp.WithString("old_name", mcp.Required(), mcp.Description("Current bare name")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("Proposed bare name")),
		mcp.WithBoolean("has_analyzer", mcp.Description("Whether a semantic analyzer is available"), mcp.DefaultBool(true)),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		symbolID, ok := args["symbol"].(string)
		if !ok {
			return mcp.NewToolResultError("symbol is required"), nil
		}
		oldName, ok := args["old_name"].(string)
		if !ok {
			return mcp.NewToolResultError("old_name is required"), nil
		}
		newName, ok := args["new_name"].(string)
		if !ok {
			return mcp.NewToolResultError("new_name is required"), nil
		}
		hasAnalyzer := true
		if v, ok := args["has_analyzer"].(bool); ok {
			hasAnalyzer = v
		}

		sym, err := types.ParseSymbolID(symbolID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid symbol id: %v", err)), nil
		}

		occurrences, err := queries.Occurrences(oldName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("occurrence lookup failed: %v", err)), nil
		}

		conflicts := refactor.DetectConflicts(queries, oldName, newName, occurrences, logger)
		result := hotreload.ClassifySafety(sym, oldName, newName, conflicts, hasAnalyzer)

		return textResultJSON(result)
	})
}

func textResultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("error encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
