package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/common"
	"github.com/physicalai/companion/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHTTPClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ada@example.com", body["email"])
		require.Equal(t, "pw", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": "u1", "email": "ada@example.com", "name": "Ada"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, testLogger())
	resp, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-123", resp.Token)
	require.Equal(t, "u1", resp.User.ID)
}

func TestHTTPClient_Login_BackendDetailExtracted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, testLogger())
	_, err := c.Login(context.Background(), "ada@example.com", "bad")
	require.Error(t, err)

	var be *common.BackendError
	require.ErrorAs(t, err, &be)
	require.Equal(t, http.StatusUnauthorized, be.StatusCode)
	require.Equal(t, "Invalid credentials", be.Detail)
}

func TestHTTPClient_Signup_SendsProfileFields(t *testing.T) {
	var got SignupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"token": "t", "user": map[string]any{"id": "u2"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, testLogger())
	_, err := c.Signup(context.Background(), SignupRequest{
		Name:       "Ada",
		Email:      "ada@example.com",
		Password:   "pw",
		Background: models.BackgroundHardware,
		Hardware:   models.HardwareJetson,
		Experience: models.ExperienceBeginner,
		Language:   models.LanguageUrdu,
	})
	require.NoError(t, err)
	require.Equal(t, models.BackgroundHardware, got.Background)
	require.Equal(t, models.HardwareJetson, got.Hardware)
	require.Equal(t, "pw", got.Password)
}

func TestHTTPClient_Me(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/me", r.URL.Path)
			require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "ada@example.com"})
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, testLogger())
		user, err := c.Me(context.Background(), "tok-123")
		require.NoError(t, err)
		require.Equal(t, "u1", user.ID)
	})

	t.Run("rejected token maps to ErrAuth", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, testLogger())
		_, err := c.Me(context.Background(), "stale")
		require.ErrorIs(t, err, common.ErrAuth)
	})
}

func TestHTTPClient_Query(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "answer field", body: `{"answer":"42"}`, want: "42"},
		{name: "legacy response field", body: `{"response":"legacy"}`, want: "legacy"},
		{name: "answer preferred over legacy", body: `{"answer":"a","response":"r"}`, want: "a"},
		{name: "neither present", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/query", r.URL.Path)

				var req struct {
					Query        string  `json:"query"`
					SelectedText *string `json:"selected_text"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Equal(t, "what is a servo", req.Query)
				require.Nil(t, req.SelectedText)

				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, testLogger())
			got, err := c.Query(context.Background(), "what is a servo", nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPClient_Query_SelectedTextForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SelectedText *string `json:"selected_text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SelectedText)
		require.Equal(t, "inverse kinematics", *req.SelectedText)
		io.WriteString(w, `{"answer":"ok"}`)
	}))
	defer srv.Close()

	sel := "inverse kinematics"
	c := NewHTTPClient(srv.URL, testLogger())
	_, err := c.Query(context.Background(), "explain", &sel)
	require.NoError(t, err)
}

func TestHTTPClient_Personalize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/personalize", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req struct {
			Content     string      `json:"content"`
			UserProfile UserProfile `json:"user_profile"`
			Title       string      `json:"title"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "chapter text", req.Content)
		require.Equal(t, models.HardwareLaptop, req.UserProfile.Hardware)
		require.Equal(t, "Kinematics", req.Title)

		json.NewEncoder(w).Encode(map[string]string{"personalized_content": "<p>custom</p>"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, testLogger())
	got, err := c.Personalize(context.Background(), "tok", "chapter text", "Kinematics", UserProfile{
		Hardware:   models.HardwareLaptop,
		Experience: models.ExperienceIntermediate,
		Language:   models.LanguageEnglish,
	})
	require.NoError(t, err)
	require.Equal(t, "<p>custom</p>", got)
}

func TestHTTPClient_TranslateUrdu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate_urdu", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"urdu_content": "اردو"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, testLogger())
	got, err := c.TranslateUrdu(context.Background(), "tok", "chapter text", "Kinematics")
	require.NoError(t, err)
	require.Equal(t, "اردو", got)
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPClient(srv.URL, testLogger())
	_, err := c.Query(ctx, "q", nil)
	require.ErrorIs(t, err, context.Canceled)
}
