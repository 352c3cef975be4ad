package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AlexandForests/lolvsfriends/internal/models"
)

// Smoke-tests a running server: posts a friends list to the bulk update
// endpoint and prints the per-entry results.
func main() {
	apiURL := flag.String("url", "http://localhost:3001/api/update-all-matches", "bulk update endpoint")
	friends := flag.String("friends", "", "comma separated riot ids, name#tag (tag optional)")
	flag.Parse()

	roster := parseRoster(*friends)
	if len(roster) == 0 {
		log.Fatal("no friends given, pass -friends 'Name#NA1,Other#EUW'")
	}

	payload, err := json.Marshal(models.UpdateAllMatchesRequest{FriendsList: roster})
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Post(*apiURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)

	var parsed models.UpdateAllMatchesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Printf("Response: %s\n", string(body))
		os.Exit(1)
	}

	fmt.Printf("Run: %s\n", parsed.RunID)
	for _, r := range parsed.Results {
		if r.Status == "success" {
			fmt.Printf("  %-24s %d matches\n", r.Summoner, r.MatchesProcessed)
		} else {
			fmt.Printf("  %-24s FAILED: %s\n", r.Summoner, r.Error)
		}
	}

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func parseRoster(raw string) []models.RosterEntry {
	var roster []models.RosterEntry
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, tag, _ := strings.Cut(part, "#")
		roster = append(roster, models.RosterEntry{SummonerName: name, TagLine: tag})
	}
	return roster
}
