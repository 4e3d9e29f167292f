// Package remotes parses and validates Dolt remote URLs.
//
// Dolt accepts several remote forms: a bare "owner/database" shorthand
// for DoltHub, an explicit https URL, a filesystem path, and an
// "aws://[dynamo-table:s3-bucket]/database" URL naming the DynamoDB
// table and S3 bucket backing the remote.
package remotes

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// DefaultRemoteHost serves DoltHub-hosted remotes.
const DefaultRemoteHost = "doltremoteapi.dolthub.com"

// Scheme classifies a remote URL.
type Scheme string

const (
	SchemeDoltHub Scheme = "https"
	SchemeFile    Scheme = "file"
	SchemeAWS     Scheme = "aws"
)

// ErrInvalidRemoteURL indicates a remote URL in none of the accepted
// forms.
var ErrInvalidRemoteURL = errors.New("invalid remote url")

// Remote is a parsed remote URL.
type Remote struct {
	// Scheme is the remote's transport.
	Scheme Scheme
	// Host is the remote API host, for https remotes.
	Host string
	// Owner is the organization or user, for hosted remotes.
	Owner string
	// Database is the remote database name.
	Database string
	// Path is the filesystem location, for file remotes.
	Path string
	// DynamoTable and S3Bucket back an aws remote.
	DynamoTable string
	S3Bucket    string
	// Raw is the input URL.
	Raw string
}

// URL renders the remote in the form `dolt remote add` accepts.
func (r *Remote) URL() string {
	switch r.Scheme {
	case SchemeDoltHub:
		return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Database)
	case SchemeFile:
		return "file://" + r.Path
	case SchemeAWS:
		return fmt.Sprintf("aws://[%s:%s]/%s", r.DynamoTable, r.S3Bucket, r.Database)
	}
	return r.Raw
}

// Parse parses a remote URL in any accepted form. A bare
// "owner/database" is shorthand for a DoltHub remote.
func Parse(raw string) (*Remote, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidRemoteURL)
	}

	switch {
	case strings.HasPrefix(raw, "aws://"):
		return parseAWS(raw)
	case strings.HasPrefix(raw, "file://"):
		return &Remote{Scheme: SchemeFile, Path: strings.TrimPrefix(raw, "file://"), Raw: raw}, nil
	case filepath.IsAbs(raw):
		return &Remote{Scheme: SchemeFile, Path: raw, Raw: raw}, nil
	case strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "http://"):
		return parseHosted(raw)
	}

	// owner/database shorthand.
	parts := strings.Split(raw, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRemoteURL, raw)
	}
	return &Remote{
		Scheme:   SchemeDoltHub,
		Host:     DefaultRemoteHost,
		Owner:    parts[0],
		Database: parts[1],
		Raw:      raw,
	}, nil
}

func parseHosted(raw string) (*Remote, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRemoteURL, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: path %q is not owner/database", ErrInvalidRemoteURL, u.Path)
	}
	return &Remote{
		Scheme:   SchemeDoltHub,
		Host:     u.Host,
		Owner:    parts[0],
		Database: parts[1],
		Raw:      raw,
	}, nil
}

// parseAWS handles aws://[dynamo-table:s3-bucket]/database.
func parseAWS(raw string) (*Remote, error) {
	rest := strings.TrimPrefix(raw, "aws://")
	if !strings.HasPrefix(rest, "[") {
		return nil, fmt.Errorf("%w: aws remote must name [table:bucket]", ErrInvalidRemoteURL)
	}
	end := strings.Index(rest, "]")
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated [table:bucket]", ErrInvalidRemoteURL)
	}

	table, bucket, ok := strings.Cut(rest[1:end], ":")
	if !ok || table == "" || bucket == "" {
		return nil, fmt.Errorf("%w: aws remote must name [table:bucket]", ErrInvalidRemoteURL)
	}

	database := strings.Trim(rest[end+1:], "/")
	if database == "" || strings.Contains(database, "/") {
		return nil, fmt.Errorf("%w: aws remote must end in a database name", ErrInvalidRemoteURL)
	}

	return &Remote{
		Scheme:      SchemeAWS,
		DynamoTable: table,
		S3Bucket:    bucket,
		Database:    database,
		Raw:         raw,
	}, nil
}
