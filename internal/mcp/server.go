package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TrainSphere", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("TrainSphere workout tracking server. Query logged workouts and progress, log new sessions, and build the full training report."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolGetReport, Handler: h.getReport},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resReport, Handler: h.reportResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"trainsphere://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workout sessions logged in the last 7 days, with exercises"),
	mcp.WithMIMEType("application/json"),
)

var resReport = mcp.NewResource(
	"trainsphere://report",
	"Training Report",
	mcp.WithResourceDescription("Full training report: profile, plan, checklist, quick notes, and recent workouts"),
	mcp.WithMIMEType("application/json"),
)
