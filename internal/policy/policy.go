// Package policy decides who may put a dish on the table and who may take
// one away. It is deliberately pure: every function computes over the inputs
// it is given and mutates nothing, so the callers own persistence.
package policy

import (
	"errors"
	"math/rand"
	"strings"
	"unicode"
)

var (
	ErrAlreadyPosted     = errors.New("this session already has a dish on the table")
	ErrProfanityDetected = errors.New("message contains a blocked word")
	ErrMissingField      = errors.New("name and message are required")
)

// TokenLength is the length of a minted author token.
const TokenLength = 9

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DefaultIcons is the enumerated set of dish symbols. The first entry is the
// fallback when a draft carries no known icon.
var DefaultIcons = []string{
	"🍗", "🍕", "🍔", "🍣", "🍰", "🍷", "🍝", "🥨", "🍮", "🥗",
	"🥪", "🍩", "🍪", "🦃", "🥧", "🎂", "🧁", "🍫", "🍬", "☕️",
}

// DefaultDenylist is the built-in blocked-substring list; deployments
// override it via configuration.
var DefaultDenylist = []string{"fuck", "shit", "bitch", "asshole"}

// Draft is unvalidated visitor input.
type Draft struct {
	Name    string
	Icon    string
	Message string
}

// ApprovedPost is a draft that passed validation, carrying the freshly
// minted author token and the resolved icon.
type ApprovedPost struct {
	Name        string
	Icon        string
	Message     string
	AuthorToken string
}

// SessionState is the set of author tokens a browser session remembers as
// its own posts.
type SessionState []string

// Contains reports whether token is in the remembered set.
func (s SessionState) Contains(token string) bool {
	if token == "" {
		return false
	}
	for _, t := range s {
		if t == token {
			return true
		}
	}
	return false
}

// Policy evaluates submissions against a denylist and an icon set.
type Policy struct {
	denylist []string
	icons    []string
}

func New(denylist, icons []string) *Policy {
	if len(denylist) == 0 {
		denylist = DefaultDenylist
	}
	if len(icons) == 0 {
		icons = DefaultIcons
	}
	return &Policy{denylist: denylist, icons: icons}
}

// ValidateSubmission applies the submission rules in fixed precedence:
// already-posted, then profanity, then missing fields. The approved post
// carries the visitor's original name and message untouched; only the icon
// is resolved against the enumerated set.
func (p *Policy) ValidateSubmission(draft Draft, session SessionState) (ApprovedPost, error) {
	if len(session) > 0 {
		return ApprovedPost{}, ErrAlreadyPosted
	}

	// The filter runs over whitespace-stripped text so spacing a word out
	// does not slip past it. Matching is case-sensitive substring, same as
	// the denylist entries are written.
	name := stripSpace(draft.Name)
	message := stripSpace(draft.Message)
	for _, word := range p.denylist {
		if strings.Contains(name, word) || strings.Contains(message, word) {
			return ApprovedPost{}, ErrProfanityDetected
		}
	}

	if strings.TrimSpace(draft.Name) == "" || strings.TrimSpace(draft.Message) == "" {
		return ApprovedPost{}, ErrMissingField
	}

	return ApprovedPost{
		Name:        draft.Name,
		Icon:        p.ResolveIcon(draft.Icon),
		Message:     draft.Message,
		AuthorToken: NewAuthorToken(),
	}, nil
}

// ResolveIcon maps a draft icon onto the enumerated set, falling back to the
// first icon for anything unknown or absent.
func (p *Policy) ResolveIcon(icon string) string {
	for _, candidate := range p.icons {
		if candidate == icon {
			return candidate
		}
	}
	return p.icons[0]
}

// Icons returns the enumerated icon set in display order.
func (p *Policy) Icons() []string {
	out := make([]string, len(p.icons))
	copy(out, p.icons)
	return out
}

// NewAuthorToken mints an opaque 9-character base-36 token. Uniqueness is
// probabilistic; a collision only cross-links ownership between two
// unrelated sessions, which this trust model tolerates.
func NewAuthorToken() string {
	var b strings.Builder
	b.Grow(TokenLength)
	for i := 0; i < TokenLength; i++ {
		b.WriteByte(tokenAlphabet[rand.Intn(len(tokenAlphabet))])
	}
	return b.String()
}

// CanDelete reports whether a viewer may remove the post owning authorToken:
// either the session remembers that token, or the viewer carries the admin
// override. The override is an unauthenticated literal flag upstream, kept
// that weak on purpose.
func CanDelete(authorToken string, session SessionState, viewerIsAdmin bool) bool {
	return viewerIsAdmin || session.Contains(authorToken)
}

// RecordAuthorship returns the session state after a successful submission.
// The one-post gate means at most one token is live at a time, so the
// remembered set is replaced rather than appended to.
func RecordAuthorship(_ SessionState, token string) SessionState {
	return SessionState{token}
}

// ReleaseAuthorship clears the remembered set after the tracked post is
// deleted, making the visitor eligible to submit again.
func ReleaseAuthorship(_ SessionState) SessionState {
	return SessionState{}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
