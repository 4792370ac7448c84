// Hand-run seeder: fires a small demo funnel at a running api instance so
// the dashboard has something to show. Not part of the server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fysiofunnel/api/internal/entity"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  no .env file, using system environment")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	practice := os.Getenv("SEED_PRACTICE_CODE")
	if practice == "" {
		practice = "DEMO-001"
	}

	fmt.Printf("🔄 Seeding demo funnel against %s (practice %s)\n\n", baseURL, practice)

	for i := 0; i < 5; i++ {
		post(baseURL+"/events", map[string]any{
			"practice_code": practice,
			"event_type":    string(entity.EventClicked),
			"metadata":      map[string]any{"campaign": "demo_seed", "visit": i + 1},
		})
	}

	lead := map[string]any{
		"volledige_naam": "Sanne de Vries",
		"emailadres":     "sanne.demo@example.nl",
		"telefoon":       "+31 6 12345678",
		"bron":           "demo_seed",
		"doel":           "rugklachten na het sporten",
		"toestemming":    true,
		"praktijk_code":  practice,
	}
	post(baseURL+"/leads", lead)

	post(baseURL+"/events", map[string]any{
		"practice_code": practice,
		"event_type":    string(entity.EventRegistered),
		"metadata":      map[string]any{"source": "demo_seed"},
	})

	today := time.Now().Format("2006-01-02")
	fmt.Println("\nDemo funnel seeded.")
	fmt.Printf(" Metrics: %s/api/metrics?practice=%s&from=%s&to=%s\n", baseURL, practice, today, today)
	fmt.Printf(" Series:  %s/api/series?practice=%s&from=%s&to=%s\n", baseURL, practice, today, today)
	fmt.Println(" (both need the X-Admin-Key header)")
}

func post(url string, body map[string]any) {
	payload, _ := json.Marshal(body)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("❌ POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Fatalf("❌ POST %s answered %d", url, resp.StatusCode)
	}
	fmt.Printf("✅ POST %s -> %d\n", url, resp.StatusCode)
}
