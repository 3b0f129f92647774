// Command seed lists the demo occasions against a running API instance.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"ticketchain/internal/middleware"
	"ticketchain/internal/models"
)

var (
	baseURL = flag.String("url", "http://localhost:8081", "Base URL of the ticketchain API")
	admin   = flag.String("admin", "admin", "Administrator identity to list occasions as")
	dryRun  = flag.Bool("dry-run", false, "Show what would be listed without making changes")
)

// Demo listings. Costs are in the smallest currency unit; the hackathon
// occasion deliberately carries zero inventory.
var occasions = []models.CreateOccasionRequest{
	{Name: "Kairat Nurtas", Cost: 4000, MaxTickets: 300, Date: "Nov 29", Time: "19:00", Location: "Astana, Kazakhstan"},
	{Name: "AC/DC", Cost: 5000, MaxTickets: 450, Date: "Jan 2", Time: "20:00", Location: "Shymkent, Kazakhstan"},
	{Name: "Blockhain Hackathon", Cost: 2000, MaxTickets: 0, Date: "Dec 9", Time: "11:00", Location: "Aktau, Kazakhstan"},
	{Name: "Blockchain Life", Cost: 3000, MaxTickets: 100, Date: "Apr 15", Time: "12:00", Location: "Dubai, United Arab Emirates"},
	{Name: "Ne Prosto Orchestra", Cost: 2500, MaxTickets: 150, Date: "Dec 15", Time: "18:00", Location: "Taraz, Kazakhstan"},
	{Name: "Dimash Qudaibergen", Cost: 6000, MaxTickets: 500, Date: "Mar 3", Time: "19:30", Location: "Almaty, Kazakhstan"},
}

func main() {
	flag.Parse()

	slog.Info("Seeding demo occasions", "url", *baseURL, "count", len(occasions))

	client := &http.Client{Timeout: 10 * time.Second}

	for _, occ := range occasions {
		if *dryRun {
			slog.Info("Would list occasion", "name", occ.Name, "tickets", occ.MaxTickets)
			continue
		}

		id, err := listOccasion(client, occ)
		if err != nil {
			slog.Error("Failed to list occasion", "name", occ.Name, "error", err)
			os.Exit(1)
		}
		slog.Info("Listed occasion", "id", id, "name", occ.Name, "tickets", occ.MaxTickets)
	}

	slog.Info("Seeding completed")
}

func listOccasion(client *http.Client, occ models.CreateOccasionRequest) (int64, error) {
	payload, err := json.Marshal(occ)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal occasion: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, *baseURL+"/api/occasions", bytes.NewBuffer(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CallerHeader, *admin)

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var created models.CreateOccasionResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return created.ID, nil
}
