package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func performRequest(server *Server, method string, path string, headers map[string]string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSubmissionRoutesRequireUserIdentity(t *testing.T) {
	server := newTestServer(t, "s3cret", &stubClassifier{})

	rec := performRequest(server, http.MethodPost, "/api/submissions", nil, `{"name":"Bean There"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create without X-User-Id: expected 401, got %d", rec.Code)
	}

	rec = performRequest(server, http.MethodPost, "/api/submissions/sub-1/photo", nil, "binary")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("photo without X-User-Id: expected 401, got %d", rec.Code)
	}
}

func TestReviewRoutesRequireAdminIdentity(t *testing.T) {
	server := newTestServer(t, "s3cret", &stubClassifier{})

	for _, action := range []string{"approve", "reject", "flag"} {
		rec := performRequest(server, http.MethodPost, "/api/submissions/sub-1/"+action, nil, `{"reason":"x"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without X-Admin-Id: expected 401, got %d", action, rec.Code)
		}

		rec = performRequest(server, http.MethodPost, "/api/submissions/missing/"+action, map[string]string{
			"X-Admin-Id": "mod-1",
		}, `{"reason":"x"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s on missing submission: expected 404, got %d", action, rec.Code)
		}
	}
}

func TestCatalogWritesRequireAdminIdentity(t *testing.T) {
	server := newTestServer(t, "s3cret", &stubClassifier{})

	rec := performRequest(server, http.MethodPost, "/api/cafes", nil, `{"name":"Bean There"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create cafe without X-Admin-Id: expected 401, got %d", rec.Code)
	}

	rec = performRequest(server, http.MethodPost, "/api/cafes/cafe-1/hide", nil, `{"reason":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("hide cafe without X-Admin-Id: expected 401, got %d", rec.Code)
	}
}

func TestRatingWritesRequireUserIdentity(t *testing.T) {
	server := newTestServer(t, "s3cret", &stubClassifier{})

	rec := performRequest(server, http.MethodPut, "/api/cafes/cafe-1/rating", nil, `{"score":5}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("rate without X-User-Id: expected 401, got %d", rec.Code)
	}

	rec = performRequest(server, http.MethodDelete, "/api/cafes/cafe-1/rating", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("delete rating without X-User-Id: expected 401, got %d", rec.Code)
	}
}

func TestPublicReadsNeedNoIdentity(t *testing.T) {
	server := newTestServer(t, "s3cret", &stubClassifier{})

	rec := performRequest(server, http.MethodGet, "/api/cafes", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list cafes: expected 200, got %d", rec.Code)
	}

	rec = performRequest(server, http.MethodGet, "/api/cafes/search?min_lat=38&max_lat=39&min_lng=-10&max_lng=-9", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search cafes: expected 200, got %d", rec.Code)
	}
}
