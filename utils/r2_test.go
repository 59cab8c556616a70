package utils

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestR2StorePut(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		method, path = r.Method, r.URL.Path
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	store, err := NewR2Store(context.Background(), R2Config{
		AccessKeyID:     "key",
		AccessKeySecret: "secret",
		Bucket:          "archive",
		CDNBaseURL:      "https://cdn.example.com/",
		Endpoint:        srv.URL,
	})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "matches/euw1/EUW1_1.json", []byte(`{}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/matches/euw1/EUW1_1.json", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/archive/matches/euw1/EUW1_1.json", path)
}

func TestR2StoreURLDefaultsToBucketEndpoint(t *testing.T) {
	store, err := NewR2Store(context.Background(), R2Config{AccountID: "acc", Bucket: "archive"})
	require.NoError(t, err)
	assert.Equal(t, "https://acc.r2.cloudflarestorage.com/archive/a/b.json", store.URL("/a/b.json"))
}

func TestR2StoreHonorsCABundle(t *testing.T) {
	var puts atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		puts.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	bundle := filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	require.NoError(t, os.WriteFile(bundle, pemBytes, 0o600))
	t.Setenv("AWS_CA_BUNDLE", bundle)

	store, err := NewR2Store(context.Background(), R2Config{
		AccessKeyID:     "key",
		AccessKeySecret: "secret",
		Bucket:          "archive",
		Endpoint:        srv.URL,
	})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "matches/euw1/EUW1_1.json", []byte(`{}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/archive/matches/euw1/EUW1_1.json", url)
	assert.Equal(t, int32(1), puts.Load())
}
