package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-edit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-edit-mcp - MCP server for interactive image editing")
			fmt.Println()
			fmt.Println("Usage: image-edit-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_EDIT_LOG_LEVEL=debug         Enable debug logging")
			fmt.Println("  IMAGE_EDIT_VIEWPORT_WIDTH=1200     Viewport width in pixels")
			fmt.Println("  IMAGE_EDIT_VIEWPORT_HEIGHT=700     Viewport height in pixels")
			fmt.Println("  IMAGE_EDIT_OUTLINE_COLOR=#ff5252   Crop outline color")
			fmt.Println("  IMAGE_EDIT_DIM_ALPHA=0.35          Opacity outside the crop region")
			fmt.Println("  IMAGE_EDIT_ZOOM_LABEL=true         Draw the zoom level on renders")
			fmt.Println("  IMAGE_EDIT_SAVE_DIR=/path          Directory for exported images")
			fmt.Println()
			fmt.Println("The same keys (lower case, without the prefix) may be set in ~/.imageeditrc.")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Image Edit MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
