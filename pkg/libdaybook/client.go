package libdaybook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
)

const (
	// CookieAccessToken is the name of the cookie carrying the access token.
	CookieAccessToken = "daybook-access-token"
	// CookieRefreshToken is the name of the cookie carrying the refresh token.
	CookieRefreshToken = "daybook-refresh-token"
)

type (
	// A Client defines all interactions that can be performed on a Daybook server.
	Client interface {
		// SignUp registers a new user on the Daybook server.
		SignUp(email, password string) (*SignUp, error)
		// Login connects the Client to the Daybook server.
		Login(email, password string) (*User, error)
		// Logout disconnects the client.
		Logout() error
		// Me returns the user of the current session, nil without a valid session.
		Me() (*User, error)
		// Entries returns all the entries of the current user, newest first.
		Entries() ([]*Entry, error)
		// Entry returns one entry of the current user.
		Entry(id string) (*Entry, error)
		// CreateEntry creates a new entry for the current user.
		CreateEntry(title, content string) (*Entry, error)
		// UpdateEntry replaces the title and content of one entry of the current user.
		UpdateEntry(id, title, content string) (*Entry, error)
		// DeleteEntry removes one entry of the current user.
		DeleteEntry(id string) error
		// Session returns the session used for authentication.
		Session() Session
		// SetSession sets the session used for authentication.
		SetSession(session Session)
	}

	// A User is the identity of the authenticated user.
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	// A Session holds the tokens issued at sign-up or login.
	Session struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}

	// A SignUp is the outcome of a user registration.
	SignUp struct {
		User                   *User `json:"user"`
		NeedsEmailConfirmation bool  `json:"needsEmailConfirmation"`
	}

	// An Entry is a journal record.
	Entry struct {
		ID        string     `json:"id"`
		UserID    string     `json:"user_id"`
		Title     string     `json:"title"`
		Content   string     `json:"content"`
		CreatedAt *time.Time `json:"created_at"`
		UpdatedAt *time.Time `json:"updated_at"`
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		session  Session
	}
)

// Defined returns true if the session tokens are defined.
func (s Session) Defined() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) SignUp(email, password string) (*SignUp, error) {
	res, err := c.do(http.MethodPost, "/auth/signup", p{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}
	c.storeSession(res)

	var signup SignUp
	dec := json.NewDecoder(res.Body)
	return &signup, errors.Wrap(dec.Decode(&signup), "could not parse response")
}

func (c *client) Login(email, password string) (*User, error) {
	res, err := c.do(http.MethodPost, "/auth/login", p{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}
	c.storeSession(res)

	var login struct {
		User *User `json:"user"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&login); err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}
	return login.User, nil
}

func (c *client) Logout() error {
	res, err := c.do(http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	c.session = Session{}
	return nil
}

func (c *client) Me() (*User, error) {
	res, err := c.do(http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	var me struct {
		User *User `json:"user"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&me); err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}
	return me.User, nil
}

func (c *client) Entries() ([]*Entry, error) {
	res, err := c.do(http.MethodGet, "/entries", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	var list struct {
		Entries []*Entry `json:"entries"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&list); err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}
	return list.Entries, nil
}

func (c *client) Entry(id string) (*Entry, error) {
	res, err := c.do(http.MethodGet, "/entries/"+id, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	return parseEntry(res.Body)
}

func (c *client) CreateEntry(title, content string) (*Entry, error) {
	res, err := c.do(http.MethodPost, "/entries", p{"title": title, "content": content})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	return parseEntry(res.Body)
}

func (c *client) UpdateEntry(id, title, content string) (*Entry, error) {
	res, err := c.do(http.MethodPatch, "/entries/"+id, p{"title": title, "content": content})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, parseAPIError(res.Body, res.StatusCode)
	}

	return parseEntry(res.Body)
}

func (c *client) DeleteEntry(id string) error {
	res, err := c.do(http.MethodDelete, "/entries/"+id, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	return nil
}

func (c *client) Session() Session {
	return c.session
}

func (c *client) SetSession(session Session) {
	c.session = session
}

// storeSession keeps the session cookies set by the server, if any.
func (c *client) storeSession(res *http.Response) {
	for _, cookie := range res.Cookies() {
		switch cookie.Name {
		case CookieAccessToken:
			c.session.AccessToken = cookie.Value
		case CookieRefreshToken:
			c.session.RefreshToken = cookie.Value
		}
	}
}

func parseEntry(r io.Reader) (*Entry, error) {
	var payload struct {
		Entry *Entry `json:"entry"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}
	return payload.Entry, nil
}

func (c *client) do(method, endpoint string, params p) (*http.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)

	//
	// Build request
	var body *bytes.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, errors.Wrap(err, "could not serialize params")
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.session.AccessToken != "" {
		req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: c.session.AccessToken})
		req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: c.session.RefreshToken})
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	return res, errors.Wrap(err, "could not perform request")
}
