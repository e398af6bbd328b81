package main

import (
	"fmt"
	"os"

	"github.com/agentbridge/portal/internal/util"
	"github.com/agentbridge/portal/pkg/logger"
	"github.com/agentbridge/portal/pkg/logger/console"
)

const usage = `flowedit - inspect and edit agent workflows from the terminal

Usage:
  flowedit <command> [flags]

Commands:
  show      fetch a workflow and print a summary of its graph
  validate  run structural validation against a workflow
  options   list the LLMs, MCP tools and RAG connectors available to nodes
  skeleton  print the default start -> llm -> end workflow as JSON
  test      trigger a test run for an agent's workflow

Environment:
  PORTAL_API_URL    base URL of the portal backend (default http://localhost:8080)
  PORTAL_API_TOKEN  bearer token or master API key
`

func main() {
	util.LoadEnv()
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	}))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "show":
		runShow(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "options":
		runOptions(os.Args[2:])
	case "skeleton":
		runSkeleton(os.Args[2:])
	case "test":
		runTest(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "flowedit: unknown command %q\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
