package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// visitor 单个 IP 的访问记录
type visitor struct {
	timestamps []time.Time
}

// prune 移除窗口外的时间戳，返回剩余数量
func (v *visitor) prune(cutoff time.Time) int {
	kept := v.timestamps[:0]
	for _, ts := range v.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	v.timestamps = kept
	return len(kept)
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	// 定期清理完全过期的 IP，避免 map 无限增长
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, v := range visitors {
				if v.prune(cutoff) == 0 {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{}
			visitors[ip] = v
		}
		v.prune(now.Add(-window))
		if len(v.timestamps) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		v.timestamps = append(v.timestamps, now)
		mu.Unlock()

		c.Next()
	}
}
