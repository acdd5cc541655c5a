package uniprot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/protplot/cache"
)

const record = ">sp|P32248|CCR7_HUMAN C-C chemokine receptor type 7\nMDLGKPMKSV\nLVVALLVIFQ\n"

func init() {
	logging.SetLevel(logging.ERROR, "uniprot")
	logging.SetLevel(logging.ERROR, "cache")
}

func server(tst *testing.T, hits *int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/uniprotkb/P32248.fasta":
			fmt.Fprint(w, record)
		case "/uniprotkb/EMPTY.fasta":
		case "/uniprotkb/HTML.fasta":
			fmt.Fprint(w, "<html>Service unavailable</html>\n")
		default:
			http.NotFound(w, r)
		}
	}))
	tst.Cleanup(srv.Close)
	return srv
}

func TestFetch(tst *testing.T) {
	var hits int32
	srv := server(tst, &hits)
	c := NewClient(srv.URL+"/uniprotkb/", 5*time.Second)

	b, err := c.Fetch(context.Background(), "P32248")
	if err != nil {
		tst.Fatal("Error fetching:", err)
	}
	if string(b) != record {
		tst.Error("Wrong record:", string(b))
	}

	seqs, seq, err := c.Record(context.Background(), "P32248")
	if err != nil {
		tst.Fatal("Error fetching sequence:", err)
	}
	if seq != "MDLGKPMKSVLVVALLVIFQ" || len(seqs) != 1 || seqs[0].ShortName() != "CCR7_HUMAN" {
		tst.Error("Wrong record:", seqs, seq)
	}
}

func TestFetchErrors(tst *testing.T) {
	var hits int32
	srv := server(tst, &hits)
	c := NewClient(srv.URL+"/uniprotkb", 5*time.Second)

	if _, err := c.Fetch(context.Background(), "NOPE"); err == nil {
		tst.Error("Expected error for missing record")
	}
	if _, err := c.Fetch(context.Background(), "EMPTY"); err == nil {
		tst.Error("Expected error for empty record")
	}
	if _, err := c.Fetch(context.Background(), "HTML"); err == nil {
		tst.Error("Expected error for a non-FASTA record")
	}
	for _, acc := range []string{"", "../etc", "P3 2248"} {
		if _, err := c.Fetch(context.Background(), acc); !errors.Is(err, ErrAccession) {
			tst.Errorf("Expected accession error for %q, got: %v", acc, err)
		}
	}
	if atomic.LoadInt32(&hits) != 3 {
		tst.Error("Invalid accessions should not reach the server, hits =", atomic.LoadInt32(&hits))
	}
}

func TestFetchMaxSize(tst *testing.T) {
	var hits int32
	srv := server(tst, &hits)
	c := NewClient(srv.URL+"/uniprotkb/", 5*time.Second)

	c.MaxSize = int64(len(record)) - 1
	if _, err := c.Fetch(context.Background(), "P32248"); err == nil {
		tst.Error("Expected error for an oversized record")
	}
	c.MaxSize = int64(len(record))
	if _, err := c.Fetch(context.Background(), "P32248"); err != nil {
		tst.Error("Record of exactly MaxSize rejected:", err)
	}
	c.MaxSize = 0
	if _, err := c.Fetch(context.Background(), "P32248"); err != nil {
		tst.Error("Default size limit rejected record:", err)
	}
}

func TestFetchCancelled(tst *testing.T) {
	var hits int32
	srv := server(tst, &hits)
	c := NewClient(srv.URL+"/uniprotkb/", 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Fetch(ctx, "P32248"); err == nil {
		tst.Error("Expected error for cancelled context")
	}
}

func TestFetchCache(tst *testing.T) {
	var hits int32
	srv := server(tst, &hits)

	store, err := cache.Open(filepath.Join(tst.TempDir(), "cache.db"))
	if err != nil {
		tst.Fatal("Error opening cache:", err)
	}
	defer store.Close()

	c := NewClient(srv.URL+"/uniprotkb/", 5*time.Second)
	c.Cache = store

	for i := 0; i < 3; i++ {
		b, err := c.Fetch(context.Background(), "P32248")
		if err != nil {
			tst.Fatal("Error fetching:", err)
		}
		if string(b) != record {
			tst.Error("Wrong record:", string(b))
		}
	}
	if atomic.LoadInt32(&hits) != 1 {
		tst.Error("Expected a single request, got", atomic.LoadInt32(&hits))
	}

	// failed fetches are not cached
	c.Fetch(context.Background(), "NOPE")
	c.Fetch(context.Background(), "NOPE")
	if atomic.LoadInt32(&hits) != 3 {
		tst.Error("Expected three requests, got", atomic.LoadInt32(&hits))
	}
}

func TestURL(tst *testing.T) {
	c := NewClient("", time.Second)
	if u := c.URL("P32248"); u != "https://rest.uniprot.org/uniprotkb/P32248.fasta" {
		tst.Error("Wrong url:", u)
	}
}
