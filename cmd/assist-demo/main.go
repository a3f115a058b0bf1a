package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"physio/internal/ai"
	"physio/internal/modules/assist"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	query := "show me all massage appointments for last week"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}
	fmt.Printf("Query: %s\n", query)

	reply, err := provider.CompleteIntent(ctx, query)
	if err != nil {
		log.Fatalf("Error classifying query: %v", err)
	}
	fmt.Printf("Raw reply: %s\n", reply)

	intent, err := assist.ValidateIntent([]byte(reply))
	if err != nil {
		log.Fatalf("Reply rejected: %v", err)
	}

	fmt.Printf("Action: %s\n", intent.Action)
	if intent.Service != nil {
		fmt.Printf("Service: %s\n", *intent.Service)
	}
	if intent.DateRange != nil {
		fmt.Printf("Date range: %s\n", *intent.DateRange)
		if r := assist.ResolveDateRange(*intent.DateRange); r != nil {
			fmt.Printf("Resolved: %s .. %s\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
		}
	}
}
