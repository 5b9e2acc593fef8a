package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("<h1>"+n+"</h1>"), 0o644))
	}
	return dir
}

func TestIndexListsUnits(t *testing.T) {
	dir := writePages(t, "Store.html", "Session.html", "highlight.css")
	logger, _ := test.NewNullLogger()
	srv := httptest.NewServer(NewHandler(dir, "Docs", logger))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	var hrefs []string
	doc.Find("li.docs-link a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	assert.Equal(t, []string{"./Session.html", "./Store.html"}, hrefs)
	assert.Equal(t, "Docs | Index", doc.Find("title").Text())
}

func TestServesPages(t *testing.T) {
	dir := writePages(t, "Store.html")
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	srv := httptest.NewServer(NewHandler(dir, "", logger))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/Store.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/Missing.html")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	require.NotEmpty(t, hook.AllEntries())
	entry := hook.AllEntries()[0]
	assert.Equal(t, "/Store.html", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestIndexMissingDirectory(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewHandler(filepath.Join(t.TempDir(), "gone"), "", logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, NewHandler(t.TempDir(), "", logger), logger) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeListenError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := Serve(context.Background(), "bad-address", NewHandler(t.TempDir(), "", logger), logger)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to serve"))
}
