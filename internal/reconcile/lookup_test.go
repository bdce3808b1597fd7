package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/daedaly/internal/model"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Mário Rossi ", "mario rossi"},
		{"MARIO ROSSI", "mario rossi"},
		{"  m.rossi@x.com", "m.rossi@x.com"},
		{"Çelik Ünal", "celik unal"},
		{"東京", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "NormalizeKey(%q)", tt.in)
	}
}

func TestAssigneeLookupMatch(t *testing.T) {
	uid := "u1"
	mario := model.Member{
		ID:        "m1",
		Name:      "Mario Rossi",
		WorkEmail: "m.rossi@x.com",
		UserID:    &uid,
		User:      &model.User{ID: uid, Name: "Mario R.", Login: "mrossi", Email: "mario@acme.test"},
	}
	l := NewAssigneeLookup([]model.Member{mario})

	for _, name := range []string{"MARIO ROSSI", "m.rossi@x.com", "mário rossi", "mrossi", "Mario R.", "mario@acme.test"} {
		got, ok := l.Match(name)
		if assert.True(t, ok, "Match(%q)", name) {
			assert.Equal(t, "m1", got.ID)
		}
	}

	_, ok := l.Match("Luigi Verdi")
	assert.False(t, ok)
	_, ok = l.Match("   ")
	assert.False(t, ok)
	_, ok = l.Match("Mario")
	assert.False(t, ok, "no partial matching")
}

func TestAssigneeLookupFirstRegistrationWins(t *testing.T) {
	shared := "+39 02 1234"
	first := model.Member{ID: "first", Name: "Anna", WorkPhone: shared}
	second := model.Member{ID: "second", Name: "Bruno", WorkPhone: shared}
	l := NewAssigneeLookup([]model.Member{first, second})

	got, ok := l.Match(shared)
	assert.True(t, ok)
	assert.Equal(t, "first", got.ID)

	got, ok = l.Match("bruno")
	assert.True(t, ok)
	assert.Equal(t, "second", got.ID)
}

func TestNilLookup(t *testing.T) {
	var l *AssigneeLookup
	_, ok := l.Match("anyone")
	assert.False(t, ok)
	assert.Zero(t, l.Len())
}
