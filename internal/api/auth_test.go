// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/admin/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "admin@example.com" || req["password"] != "correct-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{
			"token":"tok-abc",
			"user":{"_id":"a1","email":"admin@example.com","fullName":"Admin","role":"admin","permissions":["users:write"]}
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Login(context.Background(), "admin@example.com", "correct-pass", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok-abc" {
		t.Errorf("Token = %q", result.Token)
	}
	if result.User.Email != "admin@example.com" || result.User.Role != "admin" {
		t.Errorf("User = %+v", result.User)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "admin@example.com", "wrong", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestLoginMFARequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"mfaRequired":true}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Login(context.Background(), "admin@example.com", "correct-pass", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.MFARequired {
		t.Error("MFARequired = false, want true")
	}
	if result.Token != "" {
		t.Errorf("Token = %q, want empty before MFA", result.Token)
	}
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"user":{"_id":"a1","fullName":"Admin","role":"superadmin"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.ID != "a1" || user.Role != "superadmin" {
		t.Errorf("user = %+v", user)
	}
}

func TestHasPermission(t *testing.T) {
	admin := &AdminUser{Role: "admin", Permissions: []string{"users:write"}}
	if !admin.HasPermission("users:write") {
		t.Error("expected users:write")
	}
	if admin.HasPermission("destinations:write") {
		t.Error("unexpected destinations:write")
	}

	super := &AdminUser{Role: "superadmin"}
	if !super.HasPermission("anything") {
		t.Error("superadmin should hold all permissions")
	}

	var nobody *AdminUser
	if nobody.HasPermission("users:read") {
		t.Error("nil identity should hold no permissions")
	}
}
