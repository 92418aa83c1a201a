package scrape

import (
	"testing"
	"time"

	"gradescope_proxy/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homepage = `<!DOCTYPE html>
<html>
<head>
  <meta name="csrf-token" content="csrf-abc">
</head>
<body>
  <form action="/search"><input name="authenticity_token" value="wrong-form"></form>
  <form action="/login" method="post">
    <input type="hidden" name="authenticity_token" value="login-token-123">
    <input name="session[email]">
  </form>
  <div class="alert alert-error">  Invalid email/password combination.  </div>
</body>
</html>`

func TestFormInput(t *testing.T) {
	token, err := FormInput([]byte(homepage), "/login", "authenticity_token")
	require.NoError(t, err)
	assert.Equal(t, "login-token-123", token)
}

func TestInputReturnsFirstMatch(t *testing.T) {
	token, err := Input([]byte(homepage), "authenticity_token")
	require.NoError(t, err)
	assert.Equal(t, "wrong-form", token)
}

func TestMeta(t *testing.T) {
	csrf, err := Meta([]byte(homepage), "csrf-token")
	require.NoError(t, err)
	assert.Equal(t, "csrf-abc", csrf)
}

func TestTokenNotFound(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		selector string
		attr     string
	}{
		{"element absent", `<html><body></body></html>`, `meta[name="csrf-token"]`, "content"},
		{"attribute absent", `<meta name="csrf-token">`, `meta[name="csrf-token"]`, "content"},
		{"blank value", `<meta name="csrf-token" content="   ">`, `meta[name="csrf-token"]`, "content"},
		{"empty document", ``, `input[name="authenticity_token"]`, "value"},
		{"invalid selector", homepage, `form[action=`, "value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Attr([]byte(tc.html), tc.selector, tc.attr)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrTokenNotFound)
		})
	}
}

func TestText(t *testing.T) {
	text, ok := Text([]byte(homepage), ".alert-error")
	assert.True(t, ok)
	assert.Equal(t, "Invalid email/password combination.", text)

	_, ok = Text([]byte(homepage), ".alert-success")
	assert.False(t, ok)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-04-15T23:59:00-04:00", "2024-04-16T03:59:00Z"},
		{"2024-04-15 23:59:00 -0400", "2024-04-16T03:59:00Z"},
		{"2024-04-15T23:59:00.000-04:00", "2024-04-16T03:59:00Z"},
		{"2024-04-15T23:59", "2024-04-15T23:59:00Z"},
	}
	for _, tc := range tests {
		got := ParseTime(tc.in)
		if assert.NotNil(t, got, tc.in) {
			assert.Equal(t, tc.want, got.UTC().Format(time.RFC3339), tc.in)
		}
	}

	assert.Nil(t, ParseTime(""))
	assert.Nil(t, ParseTime("next tuesday"))
}
