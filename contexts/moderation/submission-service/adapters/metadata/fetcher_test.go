package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherReadsTitleAndDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head>
			<title> Bean There </title>
			<meta name="description" content="Specialty coffee in Lisbon.">
		</head><body></body></html>`)
	}))
	defer server.Close()

	meta, err := NewFetcher(0).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bean There", meta.Title)
	assert.Equal(t, "Specialty coffee in Lisbon.", meta.Description)
}

func TestFetcherFallsBackToOpenGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta property="og:description" content="A cozy corner cafe.">
		</head></html>`)
	}))
	defer server.Close()

	meta, err := NewFetcher(0).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "A cozy corner cafe.", meta.Description)
}

func TestFetcherCapsDescriptionLength(t *testing.T) {
	long := strings.Repeat("x", 2000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><head><meta name="description" content=%q></head></html>`, long)
	}))
	defer server.Close()

	meta, err := NewFetcher(0).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, meta.Description, maxDescriptionLength)
}

func TestFetcherSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
