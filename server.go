package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

var sessionPathRe = regexp.MustCompile(`^/[0-9a-f]{16}$`)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

// intParam reads a positive integer query parameter, clamped to max
func intParam(r *http.Request, name string, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// SetupRoutes configures HTTP routes. db and analytics may be nil.
func SetupRoutes(hub *Hub, db *DB, analytics *Analytics, clientDir string) *http.ServeMux {
	mux := http.NewServeMux()

	if clientDir != "" {
		fs := http.FileServer(http.Dir(clientDir))
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache")
			// SPA: serve index.html for root and session paths
			if r.URL.Path == "/" || sessionPathRe.MatchString(r.URL.Path) {
				http.ServeFile(w, r, filepath.Join(clientDir, "index.html"))
				return
			}
			fs.ServeHTTP(w, r)
		}))
	}

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade error: %v", err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, hub.sessions.ListSessions())
	})

	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			writeJSON(w, []LeaderboardEntry{})
			return
		}
		entries, err := db.TopRuns(intParam(r, "limit", 10, 100))
		if err != nil {
			log.Printf("leaderboard: %v", err)
			http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []LeaderboardEntry{}
		}
		writeJSON(w, entries)
	})

	mux.HandleFunc("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		pilot := r.URL.Query().Get("pilot")
		if pilot == "" {
			http.Error(w, "pilot required", http.StatusBadRequest)
			return
		}
		if db == nil {
			writeJSON(w, []RunRow{})
			return
		}
		runs, err := db.RunsByPilot(pilot, intParam(r, "limit", 20, 100))
		if err != nil {
			log.Printf("runs for %q: %v", pilot, err)
			http.Error(w, "runs unavailable", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []RunRow{}
		}
		writeJSON(w, runs)
	})

	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		days := intParam(r, "days", 7, 365)
		counts, err := analytics.EventCounts(days)
		if err != nil {
			log.Printf("event counts: %v", err)
			http.Error(w, "analytics unavailable", http.StatusInternalServerError)
			return
		}
		perDay, err := analytics.SessionCounts(days)
		if err != nil {
			log.Printf("session counts: %v", err)
		}
		peers, sessions := analytics.GetLiveMetrics()
		writeJSON(w, map[string]interface{}{
			"days":     days,
			"counts":   counts,
			"per_day":  perDay,
			"peers":    peers,
			"sessions": sessions,
		})
	})

	// PNG join link for a session, for scanning from a phone
	mux.HandleFunc("/api/qr", func(w http.ResponseWriter, r *http.Request) {
		sid := r.URL.Query().Get("sid")
		if hub.sessions.GetSession(sid) == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		link := fmt.Sprintf("%s://%s/%s", scheme, r.Host, sid)
		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			log.Printf("qr encode: %v", err)
			http.Error(w, "qr unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(png)
	})

	return mux
}
