package policy

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() *Policy {
	return New([]string{"bad", "worse"}, nil)
}

func TestValidateSubmission_Approved(t *testing.T) {
	p := testPolicy()

	approved, err := p.ValidateSubmission(Draft{Name: "Sam", Icon: "🍕", Message: "hi all"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Sam", approved.Name)
	assert.Equal(t, "hi all", approved.Message)
	assert.Equal(t, "🍕", approved.Icon)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-z]{9}$`), approved.AuthorToken)
}

func TestValidateSubmission_AlreadyPosted(t *testing.T) {
	p := testPolicy()

	session := SessionState{"abc123def"}
	_, err := p.ValidateSubmission(Draft{Name: "Sam", Message: "hi"}, session)
	assert.ErrorIs(t, err, ErrAlreadyPosted)

	// The gate runs first: even a draft that would also trip the filter or
	// the missing-field check reports AlreadyPosted.
	_, err = p.ValidateSubmission(Draft{Name: "", Message: "this is bad"}, session)
	assert.ErrorIs(t, err, ErrAlreadyPosted)
}

func TestValidateSubmission_Profanity(t *testing.T) {
	p := testPolicy()

	cases := []struct {
		name    string
		message string
	}{
		{"ok", "this is bad"},
		{"ok", "b a d"},     // whitespace stripped before matching
		{"so bad", "fine"},  // name is filtered too
		{"ok", "embadded"},  // substring match inside a longer word
		{"ok", "\tba\nd\t"}, // any whitespace kind
	}
	for _, tc := range cases {
		_, err := p.ValidateSubmission(Draft{Name: tc.name, Message: tc.message}, nil)
		assert.ErrorIs(t, err, ErrProfanityDetected, "name=%q message=%q", tc.name, tc.message)
	}

	// Case-sensitive: denylist casing must match exactly.
	_, err := p.ValidateSubmission(Draft{Name: "ok", Message: "this is BAD"}, nil)
	assert.NoError(t, err)
}

func TestValidateSubmission_MissingField(t *testing.T) {
	p := testPolicy()

	for _, d := range []Draft{
		{Name: "", Message: "hi", Icon: "🍕"},
		{Name: "Sam", Message: ""},
		{Name: "   ", Message: "hi"},
		{Name: "Sam", Message: "\n\t "},
	} {
		_, err := p.ValidateSubmission(d, nil)
		assert.ErrorIs(t, err, ErrMissingField, "draft=%+v", d)
	}

	// Profanity wins over missing fields when both apply.
	_, err := p.ValidateSubmission(Draft{Name: "", Message: " bad "}, nil)
	assert.ErrorIs(t, err, ErrProfanityDetected)
}

func TestValidateSubmission_PreservesOriginalText(t *testing.T) {
	p := testPolicy()

	approved, err := p.ValidateSubmission(Draft{Name: " Sam ", Message: "  hi all  "}, nil)
	require.NoError(t, err)
	assert.Equal(t, " Sam ", approved.Name)
	assert.Equal(t, "  hi all  ", approved.Message)
}

func TestResolveIcon(t *testing.T) {
	p := New(nil, nil)

	assert.Equal(t, "🍣", p.ResolveIcon("🍣"))
	assert.Equal(t, DefaultIcons[0], p.ResolveIcon(""))
	assert.Equal(t, DefaultIcons[0], p.ResolveIcon("🚀"))
}

func TestNewAuthorToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-z]{9}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := NewAuthorToken()
		assert.Regexp(t, pattern, tok)
		seen[tok] = true
	}
	// Not a uniqueness guarantee, but 100 draws colliding would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 90)
}

func TestCanDelete(t *testing.T) {
	session := SessionState{"tok123abc"}

	assert.True(t, CanDelete("tok123abc", session, false))
	assert.False(t, CanDelete("other0000", session, false))
	assert.False(t, CanDelete("tok123abc", SessionState{}, false))

	// Admin override ignores ownership entirely.
	assert.True(t, CanDelete("other0000", session, true))
	assert.True(t, CanDelete("other0000", nil, true))
	assert.True(t, CanDelete("", nil, true))
}

func TestAuthorshipRoundTrip(t *testing.T) {
	p := testPolicy()

	approved, err := p.ValidateSubmission(Draft{Name: "Sam", Message: "hi all", Icon: "🍕"}, nil)
	require.NoError(t, err)

	session := RecordAuthorship(nil, approved.AuthorToken)
	assert.True(t, CanDelete(approved.AuthorToken, session, false))

	// A second submission from the same session is gated.
	_, err = p.ValidateSubmission(Draft{Name: "Sam", Message: "again"}, session)
	assert.ErrorIs(t, err, ErrAlreadyPosted)

	// Deleting the tracked post frees the session.
	session = ReleaseAuthorship(session)
	assert.False(t, CanDelete(approved.AuthorToken, session, false))

	_, err = p.ValidateSubmission(Draft{Name: "Sam", Message: "again"}, session)
	assert.NoError(t, err)
}

func TestRecordAuthorshipReplaces(t *testing.T) {
	session := SessionState{"old000000"}
	session = RecordAuthorship(session, "new000000")

	assert.Equal(t, SessionState{"new000000"}, session)
	assert.False(t, session.Contains("old000000"))
}

func TestSessionStateContains(t *testing.T) {
	assert.False(t, SessionState(nil).Contains(""))
	assert.False(t, SessionState{""}.Contains(""))
	assert.True(t, SessionState{"a", "b"}.Contains("b"))
}
