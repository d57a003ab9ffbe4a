package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sunnycho100/ocean-freight-optimizer/api"
	"github.com/sunnycho100/ocean-freight-optimizer/config"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/engine"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/reports"
	"github.com/sunnycho100/ocean-freight-optimizer/internal/resolver"
)

const maxRequestBodySize = 10 << 20 // 10 MiB

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		dataDir    = flag.String("data-dir", "", "Directory to store dataset snapshots (overrides config)")
		configFile = flag.String("config", "", "Path to a config file (optional)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Ocean Freight Rate Collector - destination resolution and inland rate collection\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/rates    # Use custom data directory\n", os.Args[0])
		fmt.Printf("  %s --config rates.yaml      # Load settings from a file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Ocean Freight Rate Collector v1.0.0\n")
		fmt.Printf("Destination resolution, ranked route lookup, and resolution reports\n")
		return
	}

	settings, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		settings.Server.Port = *port
	}
	if *dataDir != "" {
		settings.Server.DataDir = *dataDir
	}

	resolverService, err := resolver.NewService(&settings.Resolver)
	if err != nil {
		log.Fatalf("Failed to initialize resolver: %v", err)
	}

	log.Printf("Using data directory: %s", settings.Server.DataDir)
	rateEngine := engine.NewEngine(settings.Server.DataDir, settings.Server.MaxWorkers)
	defer rateEngine.Stop()

	reportsService := reports.NewService(settings.Server.EventsFile, settings.Server.MaxEvents)

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestIDMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))

	// Setup API routes
	collectorAPI := api.NewAPI(rateEngine, resolverService, reportsService)
	collectorAPI.SetupRoutes(router)

	// Start the server
	log.Printf("Starting server on port %s...", settings.Server.Port)
	if err := router.Run(":" + settings.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
