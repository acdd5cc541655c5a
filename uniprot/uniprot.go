// Package uniprot downloads protein sequences from UniProt by
// accession.
package uniprot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/protplot/bio"
	"bitbucket.org/Davydov/protplot/cache"
)

// log is the global logging variable.
var log = logging.MustGetLogger("uniprot")

// DefaultBaseURL is the UniProtKB REST endpoint.
const DefaultBaseURL = "https://rest.uniprot.org/uniprotkb/"

// DefaultMaxSize is the largest record accepted, in bytes.
const DefaultMaxSize = 1 << 20

// ErrAccession is returned for a malformed accession.
var ErrAccession = errors.New("invalid accession")

var accessionRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Client fetches FASTA records. Cache can be nil, zero MaxSize means
// DefaultMaxSize.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *cache.Store
	MaxSize int64
}

// NewClient creates a new Client. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		MaxSize: DefaultMaxSize,
	}
}

// URL returns the FASTA record address for an accession.
func (c *Client) URL(accession string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + accession + ".fasta"
}

// Fetch returns the raw FASTA record for an accession, e.g. P32248.
func (c *Client) Fetch(ctx context.Context, accession string) ([]byte, error) {
	if !accessionRe.MatchString(accession) {
		return nil, fmt.Errorf("%w: %q", ErrAccession, accession)
	}

	e, err := c.Cache.Get(accession)
	if err != nil {
		log.Warningf("Error reading cache for %s: %v", accession, err)
	} else if e != nil {
		log.Infof("Using cached %s", accession)
		return e.Fasta, nil
	}

	u := c.URL(accession)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain")

	log.Infof("Fetching %s", u)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uniprot fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uniprot %s: status %d", accession, resp.StatusCode)
	}
	limit := c.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("uniprot read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("uniprot %s: record larger than %d bytes", accession, limit)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("uniprot %s: empty record", accession)
	}
	if _, _, err := bio.Load(body); err != nil {
		return nil, fmt.Errorf("uniprot %s: %w", accession, err)
	}

	if err := c.Cache.Put(accession, body); err != nil {
		log.Warningf("Error caching %s: %v", accession, err)
	}
	return body, nil
}

// Record fetches a record and returns it parsed, together with its
// cleaned sequence.
func (c *Client) Record(ctx context.Context, accession string) (bio.Sequences, string, error) {
	b, err := c.Fetch(ctx, accession)
	if err != nil {
		return nil, "", err
	}
	return bio.Load(b)
}
