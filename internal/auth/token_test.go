package auth

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"

	"github.com/nurpe/sitetrack/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	c := qt.New(t)

	user := model.User{ID: uuid.New(), Email: "ana@example.com"}
	token, expiresAt, err := NewIssuer("secret", time.Hour).Issue(user)
	c.Assert(err, qt.IsNil)
	c.Assert(expiresAt.After(time.Now()), qt.IsTrue)

	principal, err := NewParser("secret").Parse(token)
	c.Assert(err, qt.IsNil)
	c.Assert(principal.UserID, qt.Equals, user.ID)
	c.Assert(principal.Email, qt.Equals, user.Email)
	c.Assert(principal.IsAuthenticated(), qt.IsTrue)
}

func TestParseRejects(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "ana@example.com"}

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(user)
	qt.Assert(t, err, qt.IsNil)

	validToken, _, err := NewIssuer("secret", time.Hour).Issue(user)
	qt.Assert(t, err, qt.IsNil)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "garbage", token: "not-a-token", secret: "secret"},
		{name: "wrong secret", token: validToken, secret: "other"},
		{name: "expired", token: expiredToken, secret: "secret"},
		{name: "empty", token: "", secret: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			principal, err := NewParser(tt.secret).Parse(tt.token)
			c.Assert(err, qt.ErrorIs, ErrInvalidToken)
			c.Assert(principal.IsAuthenticated(), qt.IsFalse)
		})
	}
}
