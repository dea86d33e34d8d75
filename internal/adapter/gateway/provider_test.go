package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pixluck/wallet/internal/domain"
	"github.com/pixluck/wallet/internal/usecase/mocks"
)

func newProviderTestClient(t *testing.T, handler http.HandlerFunc) *ProviderClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := mocks.NewMockConfigRepository(&domain.PlatformConfig{
		AgentCode:  "agent-1",
		AgentToken: "agent-token",
	})
	return NewProviderClient(server.URL, config, zerolog.Nop())
}

func TestProviderClient_CreateUser(t *testing.T) {
	var captured providerRequest

	client := newProviderTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(providerResponse{Status: 1})
	})

	if err := client.CreateUser(context.Background(), "user-42"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if captured.Method != "user_create" {
		t.Errorf("expected method user_create, got %s", captured.Method)
	}
	if captured.AgentCode != "agent-1" || captured.AgentToken != "agent-token" {
		t.Errorf("credentials not injected: %+v", captured)
	}
	if captured.UserCode != "user-42" {
		t.Errorf("unexpected user_code %s", captured.UserCode)
	}
}

func TestProviderClient_LaunchGame(t *testing.T) {
	var captured providerRequest

	client := newProviderTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(providerResponse{Status: 1, LaunchURL: "https://games.example/session/abc"})
	})

	url, err := client.LaunchGame(context.Background(), "user-42", "pragmatic", "sweet-bonanza", "pt")
	if err != nil {
		t.Fatalf("LaunchGame failed: %v", err)
	}

	if url != "https://games.example/session/abc" {
		t.Errorf("unexpected launch url %s", url)
	}
	if captured.Method != "game_launch" || captured.GameCode != "sweet-bonanza" || captured.Lang != "pt" {
		t.Errorf("unexpected request: %+v", captured)
	}
}

func TestProviderClient_LaunchGameProviderFailure(t *testing.T) {
	client := newProviderTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(providerResponse{Status: 0, Msg: "INVALID_GAME"})
	})

	if _, err := client.LaunchGame(context.Background(), "user-42", "pragmatic", "bad-game", "pt"); err == nil {
		t.Fatal("expected error on provider failure status")
	}
}

func TestProviderClient_LaunchGameMissingURL(t *testing.T) {
	client := newProviderTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(providerResponse{Status: 1})
	})

	if _, err := client.LaunchGame(context.Background(), "user-42", "pragmatic", "game", "pt"); err == nil {
		t.Fatal("expected error when launch url is absent")
	}
}

func TestConfigCredentials(t *testing.T) {
	config := mocks.NewMockConfigRepository(&domain.PlatformConfig{
		AgentCode:  "agent-1",
		AgentToken: "secret-token",
	})
	creds := NewConfigCredentials(config)

	code, secret, err := creds.AgentCredentials(context.Background())
	if err != nil {
		t.Fatalf("AgentCredentials failed: %v", err)
	}
	if code != "agent-1" || secret != "secret-token" {
		t.Errorf("unexpected credentials %s/%s", code, secret)
	}
}
