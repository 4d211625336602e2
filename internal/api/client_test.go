// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticCreds is a CredentialSource returning a fixed token.
type staticCreds string

func (s staticCreds) Credential() string { return string(s) }

func TestBearerAttachedWhenCredentialPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithCredentials(staticCreds("tok-123")))
	if err := client.get(context.Background(), "/users", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestNoBearerWhenUnauthenticated(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithCredentials(staticCreds("")))
	if err := client.get(context.Background(), "/users", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestUnauthorizedTriggersHookAndReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	hookCalls := 0
	client.SetUnauthorizedHook(func() { hookCalls++ })

	err := client.get(context.Background(), "/users", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if hookCalls != 1 {
		t.Errorf("hook called %d times, want 1", hookCalls)
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "token expired" {
		t.Errorf("err = %v, want server message carried through", err)
	}
}

func TestNonAuthErrorsDoNotTriggerHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	hookCalls := 0
	client.SetUnauthorizedHook(func() { hookCalls++ })

	err := client.get(context.Background(), "/users", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if hookCalls != 0 {
		t.Errorf("hook called %d times, want 0", hookCalls)
	}
	if IsUnauthorized(err) {
		t.Error("500 should not look unauthorized")
	}
}

func TestTransportErrorDistinctFromAPIError(t *testing.T) {
	// Point at a closed server to force a connection failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, WithTimeout(500*time.Millisecond))
	hookCalls := 0
	client.SetUnauthorizedHook(func() { hookCalls++ })

	err := client.get(context.Background(), "/users", nil, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !IsTransportError(err) {
		t.Errorf("IsTransportError(%v) = false", err)
	}
	if IsUnauthorized(err) {
		t.Error("transport failure must not be treated as unauthorized")
	}
	if hookCalls != 0 {
		t.Errorf("hook called %d times on transport failure, want 0", hookCalls)
	}
}

func TestEnvelopeRejectionBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"validation failed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.get(context.Background(), "/users", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "validation failed" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestNoRetries(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"message":"try later"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.get(context.Background(), "/users", nil, nil); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want exactly 1", requests)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(&APIError{StatusCode: 400, Message: "bad input"}); got != "bad input" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("dial tcp: refused")); got != "could not reach the server" {
		t.Errorf("UserMessage = %q", got)
	}
}
