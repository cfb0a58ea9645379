package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDispatch_PostsEnvelope(t *testing.T) {
	var gotMethod, gotContentType, gotUser, gotPass, gotRequestID string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotUser, gotPass, _ = r.BasicAuth()
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("<Envelope/>"))
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(Options{
		Endpoint: srv.URL,
		Username: "svc",
		Password: "secret",
	}, nil)

	resp, err := d.Dispatch(context.Background(), []byte("<request/>"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if string(resp) != "<Envelope/>" {
		t.Errorf("response = %q", resp)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q", gotMethod)
	}
	if !strings.HasPrefix(gotContentType, "text/xml") {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotUser != "svc" || gotPass != "secret" {
		t.Errorf("basic auth = %q/%q", gotUser, gotPass)
	}
	if gotRequestID == "" {
		t.Error("expected a request id header")
	}
	if string(gotBody) != "<request/>" {
		t.Errorf("posted body = %q", gotBody)
	}
}

func TestDispatch_SOAPFaultOn500IsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<Envelope><Body><Fault/></Body></Envelope>"))
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(Options{Endpoint: srv.URL}, nil)

	resp, err := d.Dispatch(context.Background(), []byte("<request/>"))
	if err != nil {
		t.Fatalf("fault bodies must be returned for decoding, got error: %v", err)
	}
	if !strings.Contains(string(resp), "Fault") {
		t.Errorf("response = %q", resp)
	}
}

func TestDispatch_UnauthorizedBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(Options{Endpoint: srv.URL}, nil)

	_, err := d.Dispatch(context.Background(), []byte("<request/>"))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
}

func TestDispatch_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	d := NewHTTPDispatcher(Options{Endpoint: srv.URL}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := d.Dispatch(ctx, []byte("<request/>")); err == nil {
		t.Fatal("expected context deadline error")
	}
}
