package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blogapi/internal/testutil"
)

// capturingListener hands the opened listener to the test so it can learn
// the bound port.
type capturingListener struct {
	opened chan net.Listener
}

func (c *capturingListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, err
	}
	c.opened <- ln
	return ln, nil
}

func TestHTTPServer_StartServeStop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	srv := NewHTTPServer("127.0.0.1:0", handler, testutil.MakeNoopLogger())
	assert.Equal(t, "127.0.0.1:0", srv.Address())

	sl := &capturingListener{opened: make(chan net.Listener, 1)}
	startErr := make(chan error, 1)
	go func() {
		startErr <- srv.Start(sl)
	}()

	var ln net.Listener
	select {
	case ln = <-sl.opened:
	case <-time.After(time.Second):
		t.Fatal("listener was not opened")
	}

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	// A clean shutdown is not reported as a serve failure.
	assert.NoError(t, <-startErr)
}

func TestHTTPServer_StartListenFailure(t *testing.T) {
	srv := NewHTTPServer("invalid-address", http.NotFoundHandler(), testutil.MakeNoopLogger())

	sl := &capturingListener{opened: make(chan net.Listener, 1)}
	err := srv.Start(sl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
