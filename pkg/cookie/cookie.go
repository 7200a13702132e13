package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
	ErrDecrypt   = errors.New("cookie: decryption failed")
)

// MinSecretLength is the shortest accepted secret.
const MinSecretLength = 32

// Manager reads and writes the short-lived cookies of a login flow.
// Signed and encrypted values are bound to the cookie name, so a value
// cannot be replayed under a different cookie.
type Manager struct {
	aead     cipher.AEAD
	secret   []byte
	domain   string
	path     string
	sameSite http.SameSite
	secure   bool
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager. The secret is required and must be at least
// MinSecretLength bytes.
func New(secret string, opts ...Option) (*Manager, error) {
	switch {
	case secret == "":
		return nil, ErrNoSecret
	case len(secret) < MinSecretLength:
		return nil, ErrBadSecret
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		aead:     aead,
		secret:   []byte(secret),
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
// Lax is the default and is required for the OAuth callback, which arrives
// as a top-level cross-site navigation.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// SetSigned sets a cookie whose value is readable but tamper-evident.
// Format: base64(value).base64(hmac(name, value)).
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.sign(name, []byte(value)))
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
}

// GetSigned returns a signed cookie value.
// Returns ErrBadSig if the value was altered or signed for another name.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrBadSig
	}
	if !hmac.Equal(sig, m.sign(name, value)) {
		return "", ErrBadSig
	}

	return string(value), nil
}

// SetEncrypted sets a cookie whose value the client cannot read.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) {
	nonce := make([]byte, m.aead.NonceSize())
	_, _ = rand.Read(nonce)

	sealed := m.aead.Seal(nonce, nonce, []byte(value), []byte(name))
	http.SetCookie(w, m.cookie(name, base64.RawURLEncoding.EncodeToString(sealed), maxAge))
}

// GetEncrypted returns an encrypted cookie value.
// Returns ErrDecrypt if the value was altered or sealed for another name.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil || len(data) < m.aead.NonceSize() {
		return "", ErrDecrypt
	}

	nonce, ciphertext := data[:m.aead.NonceSize()], data[m.aead.NonceSize():]
	plaintext, err := m.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// PopSigned reads a signed cookie and expires it in the same response.
// The cookie is expired even when verification fails.
func (m *Manager) PopSigned(w http.ResponseWriter, r *http.Request, name string) (string, error) {
	value, err := m.GetSigned(r, name)
	if !errors.Is(err, ErrNotFound) {
		m.Delete(w, name)
	}
	return value, err
}

// PopEncrypted reads an encrypted cookie and expires it in the same response.
// The cookie is expired even when decryption fails.
func (m *Manager) PopEncrypted(w http.ResponseWriter, r *http.Request, name string) (string, error) {
	value, err := m.GetEncrypted(r, name)
	if !errors.Is(err, ErrNotFound) {
		m.Delete(w, name)
	}
	return value, err
}

func (m *Manager) sign(name string, value []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write(value)
	return mac.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}
