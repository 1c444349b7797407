// Package netconsole implements host.Console over a websocket
// connection, plus the session-token and passphrase machinery a network
// host needs around it. Grounded on the teacher's pkg/auth (JWT
// issuance/verification, bcrypt password hashing) and pkg/terminal (the
// gorilla/websocket read/write-pump pair), adapted from a browser
// terminal's frame protocol to the plain text-line protocol this
// language core's Console contract needs.
package netconsole

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
)

// frame is the single wire message shape exchanged over the socket: an
// output line from the program, or an input line from the client.
type frame struct {
	Kind   string `json:"kind"` // "print", "println", "clear", "color", "locate", "input", "line"
	Text   string `json:"text,omitempty"`
	FG     int    `json:"fg,omitempty"`
	BG     int    `json:"bg,omitempty"`
	Row    int    `json:"row,omitempty"`
	Col    int    `json:"col,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// Console is a host.Console backed by a websocket connection, one per
// session. Every exported method is safe to call from the goroutine
// running the Machine; inbound client frames are read on their own
// goroutine and delivered to ReadLine through a channel.
type Console struct {
	conn      *websocket.Conn
	sessionID string
	lines     chan string
	errs      chan error
}

// New wraps conn as a Console and starts its inbound read pump. conn is
// expected to already have completed the websocket handshake.
func New(conn *websocket.Conn) *Console {
	c := &Console{
		conn:      conn,
		sessionID: uuid.NewString(),
		lines:     make(chan string, 1),
		errs:      make(chan error, 1),
	}
	go c.readPump()
	return c
}

// SessionID is the per-connection identifier minted for this Console,
// suitable for correlating log lines or associating a Machine with a
// ProgramStore namespace.
func (c *Console) SessionID() string { return c.sessionID }

func (c *Console) readPump() {
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			c.errs <- err
			return
		}
		if f.Kind == "line" {
			c.lines <- f.Text
		}
	}
}

func (c *Console) send(f frame) error {
	return c.conn.WriteJSON(f)
}

func (c *Console) Print(s string) error {
	return c.send(frame{Kind: "print", Text: s})
}

func (c *Console) Println(s string) error {
	return c.send(frame{Kind: "println", Text: s})
}

func (c *Console) Clear() error {
	return c.send(frame{Kind: "clear"})
}

func (c *Console) SetColor(fg, bg int) error {
	return c.send(frame{Kind: "color", FG: fg, BG: bg})
}

func (c *Console) Locate(row, col int) error {
	return c.send(frame{Kind: "locate", Row: row, Col: col})
}

func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := c.send(frame{Kind: "input", Prompt: prompt}); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-c.errs:
		return "", err
	case line := <-c.lines:
		return line, nil
	}
}

// Close releases the underlying connection.
func (c *Console) Close() error {
	return c.conn.Close()
}

// --- session tokens ---

const tokenExpiration = 24 * time.Hour

// SessionClaims is the JWT payload minted for a network session,
// shaped after the teacher's auth.GuestClaims.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies session tokens with a single HMAC
// secret, the same signing scheme as the teacher's pkg/auth.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a TokenIssuer signing with secret. secret should
// come from deployment configuration, never a literal in source.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret}
}

// Issue mints a signed token for a fresh session ID.
func (i *TokenIssuer) Issue() (token string, sessionID string, err error) {
	sessionID = uuid.NewString()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	return signed, sessionID, err
}

// Verify validates a token minted by Issue and returns its session ID.
func (i *TokenIssuer) Verify(token string) (string, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	return claims.SessionID, nil
}

// --- passphrases ---

// HashPassphrase bcrypt-hashes a passphrase for storage, matching the
// teacher's use of bcrypt for stored user credentials.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassphrase reports whether passphrase matches a hash produced
// by HashPassphrase.
func VerifyPassphrase(hash, passphrase string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) == nil
}
