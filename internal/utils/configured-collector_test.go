package utils_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/skytrax-reviews/internal/utils"
	"github.com/gocolly/colly/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerServer(t *testing.T, status int) (*httptest.Server, func() []http.Header) {
	t.Helper()
	var mu sync.Mutex
	var seen []http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Clone())
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		w.Write([]byte(`<html><body><p>ok</p></body></html>`))
	}))
	t.Cleanup(server.Close)
	return server, func() []http.Header {
		mu.Lock()
		defer mu.Unlock()
		return seen
	}
}

func TestConfiguredCollector(t *testing.T) {
	t.Run("send browser headers and a fixed user agent", func(t *testing.T) {
		server, seen := headerServer(t, http.StatusOK)
		collector := utils.ConfiguredCollector(utils.CollectorOptions{UserAgent: "review-bot/1.0"})

		require.NoError(t, collector.Visit(server.URL))

		headers := seen()
		require.Len(t, headers, 1)
		assert.Equal(t, "review-bot/1.0", headers[0].Get("User-Agent"))
		assert.Equal(t, "en-US,en;q=0.9", headers[0].Get("Accept-Language"))
		assert.Equal(t, "navigate", headers[0].Get("Sec-Fetch-Mode"))
	})

	t.Run("rotate a random user agent by default", func(t *testing.T) {
		server, seen := headerServer(t, http.StatusOK)
		collector := utils.ConfiguredCollector(utils.CollectorOptions{})

		require.NoError(t, collector.Visit(server.URL))

		headers := seen()
		require.Len(t, headers, 1)
		assert.NotEmpty(t, headers[0].Get("User-Agent"))
	})

	t.Run("allow revisiting the same url", func(t *testing.T) {
		server, seen := headerServer(t, http.StatusOK)
		collector := utils.ConfiguredCollector(utils.CollectorOptions{})

		require.NoError(t, collector.Visit(server.URL))
		require.NoError(t, collector.Visit(server.URL))

		assert.Len(t, seen(), 2)
	})

	t.Run("hand error status bodies to html callbacks", func(t *testing.T) {
		server, _ := headerServer(t, http.StatusNotFound)
		collector := utils.ConfiguredCollector(utils.CollectorOptions{RequestTimeout: time.Second})
		var parsed bool
		collector.OnHTML("p", func(*colly.HTMLElement) { parsed = true })

		collector.Visit(server.URL)

		assert.True(t, parsed)
	})
}
