package middleware

import (
	"sync"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"golang.org/x/time/rate"
)

var limiterInstance = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*ipEntry
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{ips: make(map[string]*ipEntry), rateLimit: r, burstRate: b}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	entry, exists := i.ips[ip]
	if !exists {
		if len(i.ips) >= config.RATE_LIMITER_MAX_TRACKED_IPS {
			i.evictStale()
		}
		entry = &ipEntry{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// evictStale drops IPs idle for over an hour, caller must hold the lock.
func (i *IPRateLimiter) evictStale() {
	cutoff := time.Now().Add(-time.Hour)
	for ip, entry := range i.ips {
		if entry.lastSeen.Before(cutoff) {
			delete(i.ips, ip)
		}
	}
}

//TODO: when the users grow
// I must offload this key-value to redis
