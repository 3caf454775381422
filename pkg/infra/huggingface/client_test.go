package huggingface_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spacesync-dev/spacesync/pkg/domain/model"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
	"github.com/spacesync-dev/spacesync/pkg/infra/huggingface"
)

func TestClient_WhoAmI(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/whoami-v2" {
			t.Errorf("path = %v, want /api/whoami-v2", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "acme", "type": "org"}`))
	}))
	defer srv.Close()

	client := huggingface.New("hf_dummytoken", huggingface.WithBaseURL(srv.URL))

	identity, err := client.WhoAmI(context.Background())
	if err != nil {
		t.Fatalf("WhoAmI() unexpected error = %v", err)
	}
	if identity.Name != "acme" {
		t.Errorf("identity name = %v, want acme", identity.Name)
	}
	if identity.Type != "org" {
		t.Errorf("identity type = %v, want org", identity.Type)
	}
	if gotAuth != "Bearer hf_dummytoken" {
		t.Errorf("authorization header = %v, want bearer token", gotAuth)
	}
}

func TestClient_RepoInfo(t *testing.T) {
	tests := []struct {
		name     string
		repo     model.HubRepo
		wantPath string
	}{
		{
			name:     "space",
			repo:     model.HubRepo{Slug: "acme/dashboard", Kind: types.RepoKindSpace},
			wantPath: "/api/spaces/acme/dashboard",
		},
		{
			name:     "model",
			repo:     model.HubRepo{Slug: "acme/bert", Kind: types.RepoKindModel},
			wantPath: "/api/models/acme/bert",
		},
		{
			name:     "dataset",
			repo:     model.HubRepo{Slug: "acme/corpus", Kind: types.RepoKindDataset},
			wantPath: "/api/datasets/acme/corpus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("path = %v, want %v", r.URL.Path, tt.wantPath)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"id": "` + tt.repo.Slug + `",
					"sha": "a1b2c3d4e5f6a7b8c9d0a1b2c3d4e5f6a7b8c9d0",
					"private": true,
					"siblings": [{"rfilename": "README.md"}, {"rfilename": "app.py"}]
				}`))
			}))
			defer srv.Close()

			client := huggingface.New("hf_dummytoken", huggingface.WithBaseURL(srv.URL))

			info, err := client.RepoInfo(context.Background(), tt.repo)
			if err != nil {
				t.Fatalf("RepoInfo() unexpected error = %v", err)
			}
			if info.ID != tt.repo.Slug {
				t.Errorf("repo id = %v, want %v", info.ID, tt.repo.Slug)
			}
			if info.SHA.Short() != "a1b2c3d4" {
				t.Errorf("sha = %v, want a1b2c3d4...", info.SHA)
			}
			if !info.Private {
				t.Error("repo should be private")
			}
			if info.FileCount != 2 {
				t.Errorf("file count = %d, want 2", info.FileCount)
			}
		})
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantMsg: "hub rejected the access token"},
		{name: "not found", status: http.StatusNotFound, wantMsg: "hub repository not found"},
		{name: "server error", status: http.StatusInternalServerError, wantMsg: "unexpected hub response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := huggingface.New("hf_dummytoken", huggingface.WithBaseURL(srv.URL))

			_, err := client.WhoAmI(context.Background())
			if err == nil {
				t.Fatal("WhoAmI() expected error")
			}
			if got := err.Error(); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("error = %v, want message containing %q", got, tt.wantMsg)
			}
		})
	}
}
