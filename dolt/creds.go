package dolt

import (
	"fmt"
	"strings"
)

// KeyPair identifies a credential key pair for remote authentication.
type KeyPair struct {
	PublicKey string
	KeyID     string
	Active    bool
}

// CredsNew generates a new credential key pair and returns its public key
// and key ID.
func (r *Repo) CredsNew() (*KeyPair, error) {
	out, err := r.exec("creds", "new")
	if err != nil {
		return nil, err
	}

	// Output is two lines: "pub key: <key>" and "key id: <id>".
	kp := &KeyPair{}
	for _, line := range splitLines(out) {
		switch {
		case strings.Contains(line, "pub key"):
			kp.PublicKey = afterColon(line)
		case strings.Contains(line, "key id"):
			kp.KeyID = afterColon(line)
		}
	}
	if kp.PublicKey == "" {
		return nil, fmt.Errorf("unexpected creds new output: %q", out)
	}
	return kp, nil
}

// CredsList parses the credentials this repository knows about. The active
// credential, if any, is marked.
func (r *Repo) CredsList() ([]KeyPair, error) {
	out, err := r.exec("creds", "ls", "--verbose")
	if err != nil {
		return nil, err
	}

	var creds []KeyPair
	for _, line := range splitLines(out) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		active := strings.HasPrefix(trimmed, "*")
		fields := strings.Fields(strings.TrimPrefix(trimmed, "*"))
		if len(fields) < 2 {
			continue
		}
		creds = append(creds, KeyPair{
			PublicKey: fields[0],
			KeyID:     fields[1],
			Active:    active,
		})
	}
	return creds, nil
}

// CredsRm removes the key pair identified by the public key.
// Returns ErrCredsNotFound if it does not exist.
func (r *Repo) CredsRm(publicKey string) error {
	out, err := r.exec("creds", "rm", publicKey)
	if err != nil {
		return err
	}
	if strings.HasPrefix(out, "failed") {
		return ErrCredsNotFound
	}
	return nil
}

// CredsUse selects the credential with the given public key ID for remote
// operations.
func (r *Repo) CredsUse(publicKeyID string) error {
	out, err := r.exec("creds", "use", publicKeyID)
	if err != nil {
		return err
	}
	if strings.HasPrefix(out, "error") {
		return fmt.Errorf("%w: %s", ErrCredsNotFound, publicKeyID)
	}
	return nil
}

// CredsCheck verifies that credentials authenticate against an endpoint.
// Both endpoint and creds are optional; defaults come from dolt config.
func (r *Repo) CredsCheck(endpoint, credsID string) (bool, error) {
	args := []string{"creds", "check"}
	if endpoint != "" {
		args = append(args, "--endpoint", endpoint)
	}
	if credsID != "" {
		args = append(args, "--creds", credsID)
	}

	out, err := r.exec(args...)
	if err != nil {
		return false, err
	}
	for _, line := range splitLines(out) {
		if strings.HasPrefix(line, "error") {
			return false, nil
		}
	}
	return true, nil
}
