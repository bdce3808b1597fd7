package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/nhle/daedaly/internal/model"
)

// NormalizeKey decomposes accents, drops anything outside ASCII, trims
// and lowercases. "Mário Rossi " and "MARIO ROSSI" share a key.
func NormalizeKey(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// AssigneeLookup maps normalized names, emails, phones and logins to the
// team member they identify. It is built per generation run.
type AssigneeLookup struct {
	keys map[string]model.Member
}

// NewAssigneeLookup indexes the roster. When two members share a key the
// first one registered keeps it.
func NewAssigneeLookup(roster []model.Member) *AssigneeLookup {
	l := &AssigneeLookup{keys: make(map[string]model.Member)}
	for _, m := range roster {
		keys := []string{m.Name, m.DisplayName, m.WorkEmail, m.WorkPhone, m.MobilePhone}
		if m.User != nil {
			keys = append(keys, m.User.Name, m.User.DisplayName, m.User.Login, m.User.Email)
		}
		for _, k := range keys {
			nk := NormalizeKey(k)
			if nk == "" {
				continue
			}
			if _, taken := l.keys[nk]; !taken {
				l.keys[nk] = m
			}
		}
	}
	return l
}

// Match resolves a free-text assignee. Matching is exact on the
// normalized key; empty names never match.
func (l *AssigneeLookup) Match(name string) (model.Member, bool) {
	if l == nil {
		return model.Member{}, false
	}
	nk := NormalizeKey(name)
	if nk == "" {
		return model.Member{}, false
	}
	m, ok := l.keys[nk]
	return m, ok
}

// Len returns the number of registered keys.
func (l *AssigneeLookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}
