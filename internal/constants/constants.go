package constants

import "time"

var CacheTTL = struct {
	WebsiteAnalysis time.Duration
}{
	WebsiteAnalysis: 30 * time.Minute,
}

var CacheKeys = struct {
	WebsiteAnalysis string
}{
	WebsiteAnalysis: "tastejourney:analysis:",
}

var ScraperConfig = struct {
	Timeout          time.Duration
	TotalTimeout     time.Duration
	MaxBodyBytes     int64
	UserAgent        string
	ScraperAPIURL    string
	MaxImages        int
	MaxPhones        int
	MaxThemes        int
	FallbackTitleFmt string
}{
	Timeout:          15 * time.Second,
	TotalTimeout:     25 * time.Second,
	MaxBodyBytes:     5 << 20,
	UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	ScraperAPIURL:    "https://api.scraperapi.com",
	MaxImages:        10,
	MaxPhones:        3,
	MaxThemes:        4,
	FallbackTitleFmt: "Content from %s",
}

var RecommendConfig = struct {
	TopK         int
	BudgetSpread int
	Currency     string
}{
	TopK:         3,
	BudgetSpread: 300,
	Currency:     "USD",
}

var EnrichmentConfig = struct {
	Timeout        time.Duration
	Concurrency    int
	SerpAPIURL     string
	NumbeoURL      string
	CreatorResults int64
}{
	Timeout:        8 * time.Second,
	Concurrency:    8,
	SerpAPIURL:     "https://serpapi.com/search.json",
	NumbeoURL:      "https://www.numbeo.com/api/city_prices",
	CreatorResults: 5,
}

var CircuitBreakerConfig = struct {
	FailureThreshold uint32
	MaxRequests      uint32
	Interval         time.Duration
	ResetTimeout     time.Duration
}{
	FailureThreshold: 3,                // 3 consecutive failures open the circuit
	MaxRequests:      1,                // probes allowed while half-open
	Interval:         60 * time.Second, // closed-state counter reset
	ResetTimeout:     30 * time.Second, // open -> half-open
}

var AIInputLimits = struct {
	MaxMessageLength int
	MaxHistoryTurns  int
}{
	MaxMessageLength: 2000,
	MaxHistoryTurns:  10,
}

var WebSocketConfig = struct {
	ReadLimit    int64
	PongWait     time.Duration
	PingInterval time.Duration
	WriteWait    time.Duration
}{
	ReadLimit:    16 << 10,
	PongWait:     60 * time.Second,
	PingInterval: 50 * time.Second,
	WriteWait:    10 * time.Second,
}
