package libdaybook_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daybookhq/daybook/pkg/libdaybook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) libdaybook.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := libdaybook.NewDefaultClient(server.URL)
	require.NoError(t, err)
	return client
}

func TestClientLoginStoresSessionCookies(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		http.SetCookie(w, &http.Cookie{Name: libdaybook.CookieAccessToken, Value: "access42", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: libdaybook.CookieRefreshToken, Value: "refresh42", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"user-42","email":"george.abitbol@nowhere.lan"}}`))
	}))

	user, err := client.Login("george.abitbol@nowhere.lan", "password42")
	require.NoError(t, err)
	assert.Equal(t, "user-42", user.ID)

	session := client.Session()
	assert.True(t, session.Defined())
	assert.Equal(t, "access42", session.AccessToken)
	assert.Equal(t, "refresh42", session.RefreshToken)
}

func TestClientSendsSessionCookies(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(libdaybook.CookieAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "access42", cookie.Value)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries":[{"id":"entry-1","user_id":"user-42","title":"Day 1","content":"Hello"}]}`))
	}))
	client.SetSession(libdaybook.Session{AccessToken: "access42", RefreshToken: "refresh42"})

	entries, err := client.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "entry-1", entries[0].ID)
	assert.Equal(t, "Day 1", entries[0].Title)
}

func TestClientEntryRoundTrip(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/entries":
			var params map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			payload := map[string]any{"entry": map[string]string{
				"id":      "entry-1",
				"user_id": "user-42",
				"title":   params["title"],
				"content": params["content"],
			}}
			_ = json.NewEncoder(w).Encode(payload)
		case r.Method == http.MethodPatch && r.URL.Path == "/entries/entry-1":
			var params map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			payload := map[string]any{"entry": map[string]string{
				"id":      "entry-1",
				"user_id": "user-42",
				"title":   params["title"],
				"content": params["content"],
			}}
			_ = json.NewEncoder(w).Encode(payload)
		case r.Method == http.MethodDelete && r.URL.Path == "/entries/entry-1":
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	client.SetSession(libdaybook.Session{AccessToken: "access42", RefreshToken: "refresh42"})

	entry, err := client.CreateEntry("Day 1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "entry-1", entry.ID)
	assert.Equal(t, "Day 1", entry.Title)

	entry, err = client.UpdateEntry("entry-1", "Day 1 (edited)", "Hello again")
	require.NoError(t, err)
	assert.Equal(t, "Day 1 (edited)", entry.Title)
	assert.Equal(t, "Hello again", entry.Content)

	assert.NoError(t, client.DeleteEntry("entry-1"))
}

func TestClientAPIError(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Entry not found"}`))
	}))
	client.SetSession(libdaybook.Session{AccessToken: "access42", RefreshToken: "refresh42"})

	_, err := client.Entry("nonexistent")
	require.Error(t, err)

	apierr, ok := err.(*libdaybook.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apierr.StatusCode)
	assert.Equal(t, "Entry not found", apierr.Error())
}

func TestClientLogoutClearsSession(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	client.SetSession(libdaybook.Session{AccessToken: "access42", RefreshToken: "refresh42"})

	require.NoError(t, client.Logout())
	assert.False(t, client.Session().Defined())
}
