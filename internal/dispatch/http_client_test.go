package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClientDispatch(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"task_id": "task-42"})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	token, err := client.Dispatch(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if token != "task-42" {
		t.Errorf("token = %q, want task-42", token)
	}
	if gotPath != "/precompute-embedding" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["email"] != "jane@example.com" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestHTTPClientDispatchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	_, err = client.Dispatch(context.Background(), "jane@example.com")
	var dispErr *DispatchError
	if !errors.As(err, &dispErr) {
		t.Fatalf("error type = %T, want *DispatchError", err)
	}
	if dispErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", dispErr.Status)
	}
}

func TestHTTPClientDispatchMissingTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	if _, err := client.Dispatch(context.Background(), "jane@example.com"); err == nil {
		t.Error("expected error for response without task_id")
	}
}

func TestNewHTTPClientRequiresURL(t *testing.T) {
	if _, err := NewHTTPClient("  ", time.Second); err == nil {
		t.Error("expected error for empty worker URL")
	}
}
