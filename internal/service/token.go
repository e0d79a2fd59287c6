// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName 存放 session token 的 cookie 名稱
	CookieName = "jwt"
	TokenTTL   = 7 * 24 * time.Hour
)

var timeNow = time.Now

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID int `json:"userId"`
	jwt.RegisteredClaims
}

// TokenIssuer 簽發與驗證無狀態的 session token，並產生對應的 cookie
type TokenIssuer struct {
	secret     []byte
	ttl        time.Duration
	apexDomain string
}

func NewTokenIssuer(secret, apexDomain string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		ttl:        TokenTTL,
		apexDomain: strings.ToLower(strings.TrimPrefix(apexDomain, ".")),
	}, nil
}

// Issue 產生 HS256 token，內容為 userId 與 iat/exp/sub
func (t *TokenIssuer) Issue(userID int) (string, error) {
	now := timeNow()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 驗證簽章與期限，拒絕非 HMAC 演算法
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(timeNow), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Cookie 產生帶 token 的 cookie；origin 為 apex 或 www.apex 時才設定 Domain
func (t *TokenIssuer) Cookie(token, origin string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   t.cookieDomain(origin),
		MaxAge:   int(t.ttl.Seconds()),
		Expires:  timeNow().Add(t.ttl),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// ClearedCookie 與 Cookie 屬性相同，但立即過期
func (t *TokenIssuer) ClearedCookie(origin string) *http.Cookie {
	c := t.Cookie("", origin)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

func (t *TokenIssuer) cookieDomain(origin string) string {
	if t.apexDomain == "" || origin == "" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == t.apexDomain || host == "www."+t.apexDomain {
		return t.apexDomain
	}
	return ""
}
