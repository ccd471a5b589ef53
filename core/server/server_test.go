package server_test

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tsl-devserver/core/server"
	"tsl-devserver/core/server/servertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

type running struct {
	srv    *server.Server
	client *http.Client
	done   chan error
}

// startServer serves root over TLS on an ephemeral loopback port.
func startServer(t *testing.T, root string) *running {
	t.Helper()

	certFile, keyFile, pool := servertest.WriteCertPair(t, t.TempDir())
	cfg := server.Config{
		Host:     "127.0.0.1",
		Port:     "0",
		CertFile: certFile,
		KeyFile:  keyFile,
	}

	srv, err := server.New(cfg, setupServingApp(t, root), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	t.Cleanup(func() {
		_ = srv.Shutdown()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return &running{srv: srv, client: tlsClient(pool), done: done}
}

func tlsClient(pool *x509.CertPool) *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: pool},
		},
	}
}

func fetch(t *testing.T, client *http.Client, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestServer_ServesOverTLS(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "simple-tsl-example.html"), []byte("<p>simple</p>"), 0o644))
	r := startServer(t, root)

	t.Run("File", func(t *testing.T) {
		resp, body := fetch(t, r.client, r.srv.URL()+"/simple-tsl-example.html")
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "<p>simple</p>", string(body))
		require.NotNil(t, resp.TLS)
		assertIsolationHeaders(t, resp.Header)
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, _ := fetch(t, r.client, r.srv.URL()+"/missing.html")
		assert.Equal(t, 404, resp.StatusCode)
		assertIsolationHeaders(t, resp.Header)
	})
}

func TestServer_RejectsPlainHTTP(t *testing.T) {
	r := startServer(t, t.TempDir())
	plainURL := "http" + r.srv.URL()[len("https"):] + "/"

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(plainURL)
	if err == nil {
		defer resp.Body.Close()
		assert.NotEqual(t, 200, resp.StatusCode)
		return
	}
	assert.Error(t, err)
}

func TestServer_RejectsUntrustedClient(t *testing.T) {
	r := startServer(t, t.TempDir())

	// A client without the self-signed root must fail verification.
	_, err := tlsClient(x509.NewCertPool()).Get(r.srv.URL() + "/")
	assert.Error(t, err)
}

func TestServer_ConcurrentRequests(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("shader-%d.js", i)
		files[name] = fmt.Sprintf("export default %d;", i)
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(files[name]), 0o644))
	}
	r := startServer(t, root)

	var g errgroup.Group
	for name, want := range files {
		name, want := name, want
		g.Go(func() error {
			resp, err := r.client.Get(r.srv.URL() + "/" + name)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode != 200 || string(body) != want {
				return fmt.Errorf("%s: got %d %q, want %q", name, resp.StatusCode, body, want)
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

func TestServer_URL(t *testing.T) {
	certFile, keyFile, _ := servertest.WriteCertPair(t, t.TempDir())
	srv, err := server.New(server.Config{
		Host:     "localhost",
		Port:     "8443",
		CertFile: certFile,
		KeyFile:  keyFile,
	}, setupServingApp(t, t.TempDir()), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "https://localhost:8443", srv.URL())
}

func TestServer_ServeWithoutListen(t *testing.T) {
	certFile, keyFile, _ := servertest.WriteCertPair(t, t.TempDir())
	srv, err := server.New(server.Config{Host: "127.0.0.1", Port: "0", CertFile: certFile, KeyFile: keyFile},
		setupServingApp(t, t.TempDir()), zap.NewNop())
	require.NoError(t, err)

	assert.ErrorContains(t, srv.Serve(), "not listening")
}

func TestServer_Shutdown(t *testing.T) {
	r := startServer(t, t.TempDir())
	url := r.srv.URL()

	require.NoError(t, r.srv.Shutdown())
	select {
	case err := <-r.done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
	r.done <- nil // consumed by cleanup

	r.client.CloseIdleConnections()
	_, err := r.client.Get(url + "/")
	assert.Error(t, err)
}

func TestServer_ShutdownImmediatelyAfterServe(t *testing.T) {
	for i := 0; i < 5; i++ {
		certFile, keyFile, _ := servertest.WriteCertPair(t, t.TempDir())
		srv, err := server.New(server.Config{Host: "127.0.0.1", Port: "0", CertFile: certFile, KeyFile: keyFile},
			setupServingApp(t, t.TempDir()), zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, srv.Listen())
		url := srv.URL()

		done := make(chan error, 1)
		go func() { done <- srv.Serve() }()
		require.NoError(t, srv.Shutdown())

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after Shutdown")
		}

		// No longer accepting connections.
		_, err = net.DialTimeout("tcp", url[len("https://"):], time.Second)
		assert.Error(t, err)
	}
}

func TestServer_LogsHandshakeFailures(t *testing.T) {
	certFile, keyFile, _ := servertest.WriteCertPair(t, t.TempDir())
	core, logs := observer.New(zapcore.InfoLevel)
	srv, err := server.New(server.Config{Host: "127.0.0.1", Port: "0", CertFile: certFile, KeyFile: keyFile},
		setupServingApp(t, t.TempDir()), zap.New(core))
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()
	t.Cleanup(func() {
		_ = srv.Shutdown()
		<-done
	})

	conn, err := net.DialTimeout("tcp", srv.URL()[len("https://"):], time.Second)
	require.NoError(t, err)
	_, _ = conn.Write([]byte("GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _ = io.Copy(io.Discard, conn)
	_ = conn.Close()

	assert.Eventually(t, func() bool {
		return logs.FilterMessageSnippet("error when serving connection").Len() > 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNew_MissingCertificatesDoesNotBind(t *testing.T) {
	// Reserve a free port, then release it.
	free, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := fmt.Sprint(free.Addr().(*net.TCPAddr).Port)
	require.NoError(t, free.Close())

	dir := t.TempDir()
	srv, err := server.New(server.Config{
		Host:     "127.0.0.1",
		Port:     port,
		CertFile: filepath.Join(dir, "localhost.pem"),
		KeyFile:  filepath.Join(dir, "localhost2.key"),
	}, setupServingApp(t, t.TempDir()), zap.NewNop())

	var cfgErr *server.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Nil(t, srv)

	// The port must still be free.
	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	require.NoError(t, err)
	_ = ln.Close()
}
