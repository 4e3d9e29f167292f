// Package creds manages Dolt credentials: ed25519 keypairs stored as
// JWK files, and the signed JWTs remote hosts accept for
// authentication.
package creds

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWKFileExtension is the extension credential files carry on disk.
const JWKFileExtension = ".jwk"

// keyIDEncoding matches the base32 alphabet Dolt uses for key IDs.
var keyIDEncoding = base32.NewEncoding("0123456789abcdefghijklmnopqrstuv").WithPadding(base32.NoPadding)

var (
	// ErrInvalidJWK indicates a credential file that cannot be parsed.
	ErrInvalidJWK = errors.New("invalid jwk credential")
	// ErrNoPrivateKey indicates a credential loaded without its
	// private half.
	ErrNoPrivateKey = errors.New("credential has no private key")
)

// Credentials is an ed25519 keypair identified by its derived key ID.
type Credentials struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
	KeyID      string
}

// jwkKey is the on-disk JWK representation, matching the files Dolt
// writes under its creds directory.
type jwkKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	D   string `json:"d,omitempty"`
}

// Generate creates a new ed25519 credential.
func Generate() (*Credentials, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return &Credentials{
		PublicKey:  pub,
		PrivateKey: priv,
		KeyID:      KeyID(pub),
	}, nil
}

// KeyID derives the identifier for a public key. It matches the ID
// `dolt creds ls` prints for the same key.
func KeyID(pub ed25519.PublicKey) string {
	return keyIDEncoding.EncodeToString(pub)
}

// PublicKeyString returns the base32 form of the public key.
func (c *Credentials) PublicKeyString() string {
	return keyIDEncoding.EncodeToString(c.PublicKey)
}

// Save writes the credential as a JWK file named <keyid>.jwk under dir,
// creating dir if needed. It returns the file path.
func (c *Credentials) Save(dir string) (string, error) {
	if len(c.PrivateKey) == 0 {
		return "", ErrNoPrivateKey
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	key := jwkKey{
		Kty: "OKP",
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(c.PublicKey),
		D:   base64.RawURLEncoding.EncodeToString(c.PrivateKey.Seed()),
	}
	data, err := json.Marshal(key)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, c.KeyID+JWKFileExtension)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a credential from a JWK file.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a credential from JWK bytes.
func Parse(data []byte) (*Credentials, error) {
	var key jwkKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWK, err)
	}
	if key.Kty != "OKP" || key.Crv != "Ed25519" {
		return nil, fmt.Errorf("%w: unsupported key type %s/%s", ErrInvalidJWK, key.Kty, key.Crv)
	}

	pub, err := base64.RawURLEncoding.DecodeString(key.X)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: bad public key", ErrInvalidJWK)
	}

	c := &Credentials{
		PublicKey: ed25519.PublicKey(pub),
		KeyID:     KeyID(pub),
	}
	if key.D != "" {
		seed, err := base64.RawURLEncoding.DecodeString(key.D)
		if err != nil || len(seed) != ed25519.SeedSize {
			return nil, fmt.Errorf("%w: bad private key", ErrInvalidJWK)
		}
		c.PrivateKey = ed25519.NewKeyFromSeed(seed)
	}
	return c, nil
}

// ListDir loads every credential file under dir. A missing directory
// yields an empty list.
func ListDir(dir string) ([]*Credentials, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []*Credentials
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), JWKFileExtension) {
			continue
		}
		c, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		out = append(out, c)
	}
	return out, nil
}

// SignJWT mints an EdDSA token for the given audience, valid for ttl.
// The token's key ID header lets the remote look up the public key.
func (c *Credentials) SignJWT(audience string, ttl time.Duration) (string, error) {
	if len(c.PrivateKey) == 0 {
		return "", ErrNoPrivateKey
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "doltgo",
		Subject:   c.KeyID,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = c.KeyID

	signed, err := token.SignedString(c.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token signed by this credential's key and returns its
// claims.
func (c *Credentials) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
				return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
			}
			return c.PublicKey, nil
		})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
