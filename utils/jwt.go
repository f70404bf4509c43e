package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RedisClient is an optional shared Redis client used for token revocation.
// It stays nil when REDIS_ADDR is not configured; revocation then falls back
// to the revoked_tokens table.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		log.Printf("[jwt] redis ping failed: %v", err)
		// don't fail startup for redis issues; revocation falls back to DB
		return
	}
	RedisClient = rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const UserRoleKey = contextKey("userRole")
const RequestIDKey = contextKey("requestID")

// GenerateAccessToken issues a short-lived access token (default 15 minutes).
func GenerateAccessToken(userID uint, role string) (string, error) {
	return GenerateAccessTokenWithExpiry(userID, role, 15*time.Minute)
}

// GenerateAccessTokenWithExpiry issues an access token with custom expiry duration
func GenerateAccessTokenWithExpiry(userID uint, role string, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAdminToken issues an access token for an admin session (6 hours).
func GenerateAdminToken(adminID int64) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(32)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":   adminID,
		"role": "admin",
		"exp":  now.Add(6 * time.Hour).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken creates a refresh token, stores it in DB and returns the opaque jti
func GenerateRefreshToken(userID uint) (string, error) {
	jti, err := generateJTI(48)
	if err != nil {
		return "", err
	}
	rt, err := models.NewRefreshToken(userID, 7)
	if err != nil {
		return "", err
	}
	rt.ID = jti
	if database.DB == nil {
		return "", errors.New("database not initialized")
	}
	if err := database.DB.Create(rt).Error; err != nil {
		return "", err
	}
	return jti, nil
}

// ValidateAccessToken parses the access token and validates signature,
// registered claims and the jti revocation store.
func ValidateAccessToken(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return nil, nil, errors.New("token expired")
		}
		return nil, nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return token, nil, errors.New("invalid claims")
	}

	now := time.Now()
	if expRaw, ok := claims["exp"]; ok {
		if v, ok := expRaw.(float64); ok && now.Unix() > int64(v) {
			return token, nil, errors.New("token expired")
		}
	}
	if nbfRaw, ok := claims["nbf"]; ok {
		if v, ok := nbfRaw.(float64); ok && now.Unix() < int64(v) {
			return token, nil, errors.New("token not yet valid")
		}
	}
	if audEnv := os.Getenv("JWT_AUD"); audEnv != "" {
		if aud, ok := claims["aud"].(string); !ok || aud != audEnv {
			return token, nil, errors.New("invalid audience")
		}
	}
	if issEnv := os.Getenv("JWT_ISS"); issEnv != "" {
		if iss, ok := claims["iss"].(string); !ok || iss != issEnv {
			return token, nil, errors.New("invalid issuer")
		}
	}

	// jti revocation: Redis blacklist first, otherwise the revoked_tokens table
	if jti, ok := claims["jti"].(string); ok && jti != "" {
		if RedisClient != nil {
			res, err := RedisClient.Get(context.Background(), "jwt:blacklist:"+jti).Result()
			if err == nil && res == "1" {
				return token, nil, errors.New("token revoked")
			}
			// ignore redis errors (do not fail auth due to redis outage)
		} else if database.DB != nil {
			var rec struct {
				ID string `gorm:"primaryKey"`
			}
			err := database.DB.Table("revoked_tokens").Where("id = ?", jti).First(&rec).Error
			if err == nil {
				return token, nil, errors.New("token revoked")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				// Ignore DB errors (do not fail authentication because of DB outage)
			}
		}
	}

	return token, claims, nil
}

// ValidateRefreshToken checks whether a refresh token jti exists in DB and is not expired/revoked
func ValidateRefreshToken(jti string) (*models.RefreshToken, error) {
	if database.DB == nil {
		return nil, errors.New("database not initialized")
	}
	var rt models.RefreshToken
	if err := database.DB.Where("id = ?", jti).First(&rt).Error; err != nil {
		return nil, err
	}
	if rt.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}

// RevokeJTI inserts a jti into the revocation store. If Redis is configured,
// set a key with TTL; otherwise fall back to the revoked_tokens table.
func RevokeJTI(jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient != nil {
		return RedisClient.Set(context.Background(), "jwt:blacklist:"+jti, "1", ttl).Err()
	}
	if database.DB != nil {
		res := database.DB.Exec("INSERT INTO revoked_tokens (id, revoked_at) VALUES (?, ?) ON DUPLICATE KEY UPDATE revoked_at = VALUES(revoked_at)", jti, time.Now())
		return res.Error
	}
	return errors.New("no revocation store configured")
}

// ClaimUserID extracts the numeric id claim (JSON numbers arrive as float64).
func ClaimUserID(claims jwt.MapClaims) uint {
	switch v := claims["id"].(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case string:
		var n uint64
		_, _ = fmt.Sscanf(v, "%d", &n)
		return uint(n)
	}
	return 0
}

// ClaimAdminID extracts the numeric id claim as an admin ID.
func ClaimAdminID(claims jwt.MapClaims) int64 {
	switch v := claims["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		var n int64
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}

// GetUserID returns the authenticated user id placed in context by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

// generateJTI creates a URL-safe random identifier used as JWT ID
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}
