package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/ovozlabs/ovoz-voice-service/system"
)

// StatusServer provides HTTP status endpoints for this service
type StatusServer struct {
	startTime  time.Time
	port       int
	version    string
	components func() map[string]string

	// Metrics
	submissionsReceived    atomic.Uint64
	transcriptionsFinished atomic.Uint64
	submissionsRejected    atomic.Uint64
	grantsIssued           atomic.Uint64
}

// NewStatusServer creates a new status server. components returns the
// current status string per wired component.
func NewStatusServer(port int, version string, components func() map[string]string) *StatusServer {
	return &StatusServer{
		startTime:  time.Now(),
		port:       port,
		version:    version,
		components: components,
	}
}

// Start begins the HTTP status server
func (ss *StatusServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", ss.handleStatus)
	mux.HandleFunc("/health", ss.handleHealth)

	addr := fmt.Sprintf("127.0.0.1:%d", ss.port)
	log.Printf("[STATUS] Starting status server on http://%s", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("[STATUS] Server error: %v", err)
		}
	}()

	return nil
}

// handleStatus returns detailed service status
func (ss *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(ss.startTime)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuUsage, _ := system.GetCPUUsage()
	memUsage, _ := system.GetMemoryUsage()

	status := map[string]interface{}{
		"service":   "ovoz-voice-service",
		"status":    "operational",
		"version":   ss.version,
		"uptime":    uptime.String(),
		"timestamp": time.Now().Format(time.RFC3339),
		"metrics": map[string]interface{}{
			"submissions_received":    ss.submissionsReceived.Load(),
			"transcriptions_finished": ss.transcriptionsFinished.Load(),
			"submissions_rejected":    ss.submissionsRejected.Load(),
			"grants_issued":           ss.grantsIssued.Load(),
			"goroutines":              runtime.NumGoroutine(),
			"cpu_percent":             cpuUsage,
			"memory_percent":          memUsage,
			"memory_alloc_mb":         float64(m.Alloc) / 1024 / 1024,
			"gc_runs":                 m.NumGC,
		},
	}
	if ss.components != nil {
		status["components"] = ss.components()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("[STATUS] Error encoding status: %v", err)
	}
}

// handleHealth returns simple health check (for load balancers)
func (ss *StatusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	}); err != nil {
		log.Printf("[STATUS] Error encoding health: %v", err)
	}
}

// Metric incrementers (called from the event handler)
func (ss *StatusServer) IncrementSubmissions() {
	ss.submissionsReceived.Add(1)
}

func (ss *StatusServer) IncrementTranscriptions() {
	ss.transcriptionsFinished.Add(1)
}

func (ss *StatusServer) IncrementRejections() {
	ss.submissionsRejected.Add(1)
}

func (ss *StatusServer) IncrementGrants() {
	ss.grantsIssued.Add(1)
}
