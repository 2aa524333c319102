package services

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/spokefoods/spoke-backend/utils"
)

// ReachabilityChecker reports whether the outbound network path is usable.
// It is re-evaluated per call, never cached as process state, and injected
// into everything that needs an online/offline decision.
type ReachabilityChecker func() bool

var probeEndpoints = []string{
	"https://www.google.com",
	"https://cloudflare.com",
}

// NewReachabilityChecker probes two well-known endpoints with a short
// per-endpoint timeout. The first 2xx wins; if neither responds the caller
// operates in offline mode.
func NewReachabilityChecker(timeout time.Duration) ReachabilityChecker {
	client := &http.Client{Timeout: timeout}

	return func() bool {
		for _, endpoint := range probeEndpoints {
			// Cache-bust so an intermediary cannot answer for a dead link.
			url := fmt.Sprintf("%s?cache_bust=%d", endpoint, rand.Int63())
			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				continue
			}
			req.Header.Set("Cache-Control", "no-cache")

			resp, err := client.Do(req)
			if err != nil {
				utils.ErrorLogger.Printf("reachability: failed to reach %s: %v", endpoint, err)
				continue
			}
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return true
			}
			utils.ErrorLogger.Printf("reachability: %s responded with status %d", endpoint, resp.StatusCode)
		}
		utils.ErrorLogger.Println("reachability: all endpoints failed, assuming offline")
		return false
	}
}
