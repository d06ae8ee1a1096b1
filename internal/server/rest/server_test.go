package rest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

func TestServe_StopsOnContextCancel(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", logging.NopLogger{}, failingAccounts{err: common.ErrorInvalidCredentials})

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	url := fmt.Sprintf("http://%s/login", lis.Addr().String())
	resp, err := http.Post(url, "application/json", strings.NewReader(`{"email":"a","password":"b"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHandler_ReturnsRouter(t *testing.T) {
	srv := NewHTTPServer(":0", logging.NopLogger{}, failingAccounts{})
	assert.NotNil(t, srv.Handler())
}
