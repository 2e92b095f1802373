package iotext_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/soweego-go/soweego/internal/iotext"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"full https url", "https://www.discogs.com/artist/12345", true},
		{"missing scheme gets https", "www.discogs.com/artist/12345", true},
		{"bare domain", "example.com", true},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"invalid host", "http://", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := iotext.ValidateURL(tt.in)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTokenizeURL(t *testing.T) {
	tokens := iotext.TokenizeURL("https://www.discogs.com/artist/david-bowie")

	assert.Contains(t, tokens, "discogs")
	assert.NotContains(t, tokens, "www")
	assert.NotContains(t, tokens, "com")
	assert.Contains(t, tokens, "david")
	assert.Contains(t, tokens, "bowie")
}

func TestIsWikiLink(t *testing.T) {
	assert.True(t, iotext.IsWikiLink("https://en.wikipedia.org/wiki/David_Bowie"))
	assert.True(t, iotext.IsWikiLink("https://www.wikidata.org/wiki/Q5383"))
	assert.False(t, iotext.IsWikiLink("https://www.discogs.com/artist/12345"))
}

func TestResolveURLClassifiesAlive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	status, err := iotext.ResolveURL(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, iotext.ResolveAlive, status)
}

func TestResolveURLClassifiesDead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	status, err := iotext.ResolveURL(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, iotext.ResolveDead, status)
}

func TestResolveURLClassifiesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Timeout: 5 * time.Millisecond}
	status, err := iotext.ResolveURL(context.Background(), client, server.URL)
	assert.Error(t, err)
	assert.Equal(t, iotext.ResolveTimeout, status)
}

func TestExtractIDFromURL(t *testing.T) {
	reg := model.NewFormatterRegistry()
	reg.Register("P1953", model.Formatter{
		Template: "https://www.discogs.com/artist/$1",
		IDRegex:  regexp.MustCompile(`^\d+$`),
	})

	id, pid, ok := iotext.ExtractIDFromURL(reg, "https://www.discogs.com/artist/12345/")
	assert.True(t, ok)
	assert.Equal(t, "12345", id)
	assert.Equal(t, model.PropertyID("P1953"), pid)

	_, _, ok = iotext.ExtractIDFromURL(reg, "https://example.com/other")
	assert.False(t, ok)
}
