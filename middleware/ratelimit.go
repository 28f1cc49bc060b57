package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"base97/config"
	"base97/pkg/log"
	"base97/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewTokenBucket 基于 Redis 的令牌桶限流, 按客户端 IP 计数。
// Redis 异常时放行, 限流不能把正常请求拖死。
func NewTokenBucket(cfg *config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if cfg == nil || !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	limiterScript := redis.NewScript(`
		local key = KEYS[1]
		local now_ms = tonumber(ARGV[1])
		local capacity = tonumber(ARGV[2])
		local refill_tokens = tonumber(ARGV[3])
		local interval_ms = tonumber(ARGV[4])
		local ttl_seconds = tonumber(ARGV[5])

		local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
		local tokens = tonumber(state[1])
		local last_refill = tonumber(state[2])

		if tokens == nil or last_refill == nil then
			tokens = capacity
			last_refill = now_ms
		end

		if interval_ms > 0 and refill_tokens > 0 then
			local elapsed = math.max(0, now_ms - last_refill)
			local intervals = math.floor(elapsed / interval_ms)
			if intervals > 0 then
				tokens = math.min(capacity, tokens + (intervals * refill_tokens))
				last_refill = last_refill + (intervals * interval_ms)
			end
		end

		local allowed = 0
		local retry_after_ms = 0
		if tokens > 0 then
			allowed = 1
			tokens = tokens - 1
		else
			local until_next = interval_ms - (now_ms - last_refill)
			if until_next < 0 then until_next = 0 end
			retry_after_ms = until_next
		end

		redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
		redis.call('EXPIRE', key, ttl_seconds)
		return {allowed, retry_after_ms}
	`)

	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		now := time.Now().UnixMilli()

		res, err := limiterScript.Run(c.Request.Context(), rdb, []string{key},
			now, cfg.Capacity, cfg.RefillTokens, cfg.RefillInterval, cfg.TTLSeconds).Int64Slice()
		if err != nil || len(res) != 2 {
			log.L.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if res[0] != 1 {
			retryAfter := int(math.Ceil(float64(res[1]) / 1000))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Abort(c, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
