package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apichat "argument_negotiation_bot/pkg/api/chat"
	apiconfig "argument_negotiation_bot/pkg/api/config"
	"argument_negotiation_bot/pkg/core/agent"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/prompt"
	"argument_negotiation_bot/pkg/core/router"
	"argument_negotiation_bot/pkg/core/salarydata"
	"argument_negotiation_bot/pkg/core/scenario"
	"argument_negotiation_bot/pkg/core/skills"
	"argument_negotiation_bot/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Prompt library
	prompts := prompt.NewSeeded()
	fmt.Printf("[PROMPT] Registered %d prompts\n", prompts.Count())

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Storage: Postgres when DATABASE_URL is set, in-memory otherwise.
	var scenarios scenario.Store
	var convos convo.Store
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[FATAL] Database init failed: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		scenarios = scenario.NewRepo(store.GetPool())
		convos = convo.NewRepo(store.GetPool())
		fmt.Println("[STORE] Using Postgres")
	} else {
		scenarios = scenario.NewMemoryStore()
		convos = convo.NewMemoryStore()
		fmt.Println("[STORE] DATABASE_URL not set, using in-memory stores")
	}

	deps := skills.Deps{
		Agents:    agentMgr,
		Prompts:   prompts,
		Scenarios: scenarios,
		Salary:    salarydata.NewClient(),
		BiasCache: skills.NewBiasCache(),
	}
	dispatcher := router.NewDispatcher(skills.All(deps), convos)

	// Config endpoints
	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Chat endpoints
	chatHandler := apichat.NewHandler(dispatcher)
	http.HandleFunc("/api/chat", chatHandler.HandleChat)
	http.HandleFunc("/api/chat/stream", chatHandler.HandleStream)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/chat")
	fmt.Println("  - GET  /api/chat/stream  (SSE streaming)")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
