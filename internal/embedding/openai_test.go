package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	_, err := NewOpenAIEmbedder(Config{})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Input) != 1 || req.Input[0] != "See you later" {
			t.Errorf("unexpected input: %v", req.Input)
		}
		if req.Model != "text-embedding-3-small" {
			t.Errorf("unexpected model: %q", req.Model)
		}

		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}, "index": 0},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	emb, err := NewOpenAIEmbedder(Config{APIKey: "test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	vec, err := emb.Embed(context.Background(), "See you later")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3-dimensional vector, got %d", len(vec))
	}
	if vec[0] != 0.1 || vec[2] != 0.3 {
		t.Errorf("unexpected vector: %v", vec)
	}
}

func TestOpenAIEmbedder_Embed_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	emb, err := NewOpenAIEmbedder(Config{APIKey: "test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	if _, err := emb.Embed(context.Background(), "anything"); err == nil {
		t.Error("expected error for empty embedding response")
	}
}

func TestOpenAIEmbedder_Embed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	emb, err := NewOpenAIEmbedder(Config{APIKey: "test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}

	if _, err := emb.Embed(context.Background(), "anything"); err == nil {
		t.Error("expected error when the API fails")
	}
}
