package client

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"
)

// ProbeStatus is the lifecycle of a card's reachability badge. Every card
// starts Checking and transitions exactly once to Online or Offline.
type ProbeStatus string

const (
	StatusChecking ProbeStatus = "checking"
	StatusOnline   ProbeStatus = "online"
	StatusOffline  ProbeStatus = "offline"
)

// DefaultProbeTimeout bounds each probe so badges cannot stay Checking
// forever on a black-holed host.
const DefaultProbeTimeout = 5 * time.Second

// connection pooling limits so probing many services does not exhaust sockets
const (
	probeMaxIdleConns        = 100
	probeMaxIdleConnsPerHost = 4
	probeIdleConnTimeout     = 60 * time.Second
)

// ProbeResult is the terminal outcome of probing one card.
type ProbeResult struct {
	Index   int
	URL     string
	Status  ProbeStatus
	Latency time.Duration
}

// Prober issues best-effort reachability probes. A probe is a minimal HEAD
// request whose body and status semantics are ignored: completing the
// request at all means Online, any transport failure means Offline. This is
// reachability, not a health check.
type Prober struct {
	http    *http.Client
	timeout time.Duration
}

func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        probeMaxIdleConns,
				MaxIdleConnsPerHost: probeMaxIdleConnsPerHost,
				IdleConnTimeout:     probeIdleConnTimeout,
			},
		},
		timeout: timeout,
	}
}

// Probe checks a single URL and returns its terminal status.
func (p *Prober) Probe(ctx context.Context, url string) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	result := ProbeResult{URL: url, Status: StatusOffline}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		result.Latency = time.Since(start)
		return result
	}

	resp, err := p.http.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		return result
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	// any completed request counts as online, whatever the status code
	result.Status = StatusOnline
	return result
}

// ProbeAll checks every card concurrently and independently. Results arrive
// on the returned channel in completion order, tagged with the card index;
// the channel closes once all probes have resolved. There is no retry and no
// shared rate limit.
func (p *Prober) ProbeAll(ctx context.Context, cards []Card) <-chan ProbeResult {
	results := make(chan ProbeResult, len(cards))

	var wg sync.WaitGroup
	for i := range cards {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			result := p.Probe(ctx, url)
			result.Index = i
			results <- result
		}(i, cards[i].URL)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Close releases idle connections held by the prober's transport.
func (p *Prober) Close() {
	if transport, ok := p.http.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
