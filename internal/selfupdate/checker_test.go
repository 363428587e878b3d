package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		tag       string
		available bool
		wantErr   bool
	}{
		{"newer release", "v1.0.0", "v1.1.0", true, false},
		{"same release", "v1.1.0", "v1.1.0", false, false},
		{"older release", "v2.0.0", "v1.9.9", false, false},
		{"missing v prefix", "1.0.0", "v1.0.1", true, false},
		{"unparseable current", "nightly", "v1.0.0", true, false},
		{"bad tag", "v1.0.0", "latest", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/abhisek/speakflow/releases/latest", r.URL.Path)
				_, _ = w.Write([]byte(`{"tag_name":"` + tt.tag + `","html_url":"https://example.com/r"}`))
			}))
			defer server.Close()

			result, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.available, result.UpdateAvailable)
			assert.Equal(t, tt.tag, result.LatestVersion)
			assert.Equal(t, "https://example.com/r", result.ReleaseURL)
		})
	}
}

func TestCheckHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
