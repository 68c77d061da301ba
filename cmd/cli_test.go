package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestSendRejectsInvalidAddress(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "send", "--address", "http://127.0.0.1:80", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid address")
}

func TestSendRequiresMessage(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "send", "--address", "ws://127.0.0.1:8080")
	require.Error(t, err)
}

func TestSendPrintsTranscriptWithReplies(t *testing.T) {
	address := newEchoServer(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "send", "--address", address, "--wait", "300ms", "hello")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✅ Connected to "+address)
	assert.Contains(t, stdout, "> hello")
	assert.Contains(t, stdout, "echo: hello")
	assert.Less(t, strings.Index(stdout, "> hello"), strings.Index(stdout, "echo: hello"))
}

func TestSendThenHistoryListsEndpoint(t *testing.T) {
	address := newEchoServer(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "send", "--address", address, "--wait", "50ms", "ping")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "endpoints: 1")
	assert.Contains(t, stdout, address)
	assert.Contains(t, stdout, "used once")
}

func TestHistoryEmpty(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No endpoints used yet.")
}

func TestSendReturnsConnectError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	address := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "send", "--address", address, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to "+address+" failed")
}

func TestNetinfoPrintsAttachment(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "netinfo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Network")
	assert.Contains(t, stdout, "type: ")
}

func TestConfigFileSuppliesDefaultAddress(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, "wst")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[server]\naddress = \"http://nope:1\"\n"), 0o600))

	_, _, err := executeCLI(t, home, "send", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid address")
}

func newEchoServer(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.CloseNow()

		ctx := context.Background()
		for {
			_, data, err := c.Read(ctx)
			if err != nil {
				return
			}
			if err := c.Write(ctx, websocket.MessageText, append([]byte("echo: "), data...)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Chdir(home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
