package main

import (
	"log"

	"github.com/sashabaranov/go-openai"

	"github.com/HarshwardhanZalte/AIDRA/agents"
	"github.com/HarshwardhanZalte/AIDRA/config"
	"github.com/HarshwardhanZalte/AIDRA/contacts"
	"github.com/HarshwardhanZalte/AIDRA/cronjobs"
	"github.com/HarshwardhanZalte/AIDRA/orchestrator"
	"github.com/HarshwardhanZalte/AIDRA/routes"
	"github.com/HarshwardhanZalte/AIDRA/sessions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := openai.NewClient(cfg.OpenAIKey)

	imageAgent := agents.NewImageAgent(client, cfg.VisionModel, cfg.SchemaRetries)
	safetyAgent := agents.NewSafetyAgent(client, cfg.TextModel, cfg.SchemaRetries)
	responseAgent := agents.NewResponseAgent(client, cfg.TextModel, cfg.SchemaRetries, cfg.CriticalSeverity)

	directory := contacts.NewStaticDirectory()
	store := sessions.NewMemoryStore()

	orc := orchestrator.New(imageAgent, safetyAgent, responseAgent, directory, store, cfg.MaxConcurrent)

	// Periodic session stats
	cronjobs.InitCronJobs(store)

	r := routes.SetupRouter(orc, store)
	log.Printf("AIDRA listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
