package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":8080")
	assert.Equal(t, ":8080", s.Address())
}

func TestHTTPServer_StartAndStop(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewHTTPServer(mux, ln.Addr().String())

	done := make(chan error, 1)
	go func() {
		done <- s.Start(fixedListener{ln})
	}()

	url := fmt.Sprintf("http://%s/ping", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	// A graceful shutdown is not an error from Start.
	assert.NoError(t, <-done)
}

func TestHTTPServer_Start_ListenFailure(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), "invalid-address")

	err := s.Start(failingListener{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

type fixedListener struct {
	ln net.Listener
}

func (f fixedListener) Listen(protocol, addr string) (net.Listener, error) {
	return f.ln, nil
}

type failingListener struct{}

func (failingListener) Listen(protocol, addr string) (net.Listener, error) {
	return nil, fmt.Errorf("failed to listen: no such device")
}
