// Mock upstream backend serving activities, events, and profiles with the
// mixed location encodings found in production documents.
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

//go:embed activities.json
var activitiesData []byte

//go:embed events.json
var eventsData []byte

//go:embed profiles.json
var profilesData []byte

func serveJSON(name string, data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Printf("[Upstream] %s write error: %v", name, err)
		}

		log.Printf("[Upstream] %s %s - 200 OK", r.Method, r.URL.Path)
	}
}

func main() {
	var profiles map[string]json.RawMessage
	if err := json.Unmarshal(profilesData, &profiles); err != nil {
		log.Fatalf("[Upstream] bad profiles.json: %v", err)
	}

	http.HandleFunc("/api/activities", serveJSON("activities", activitiesData))
	http.HandleFunc("/api/events", serveJSON("events", eventsData))

	http.HandleFunc("/api/profiles/", func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimPrefix(r.URL.Path, "/api/profiles/")

		doc, ok := profiles[userID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			log.Printf("[Upstream] %s %s - 404", r.Method, r.URL.Path)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc); err != nil {
			log.Printf("[Upstream] profile write error: %v", err)
		}

		log.Printf("[Upstream] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Upstream] Health write error: %v", err)
		}
	})

	log.Println("Mock upstream backend running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
