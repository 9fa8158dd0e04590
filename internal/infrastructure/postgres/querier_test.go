package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgs_PlaceholdersConsecutivos(t *testing.T) {
	var a args
	assert.Equal(t, "$1", a.add("x"))
	assert.Equal(t, "$2", a.add(2))
	for i := 3; i <= 11; i++ {
		a.add(i)
	}
	assert.Equal(t, "$12", a.add(nil))
	assert.Len(t, a, 12)
}

func TestWhere(t *testing.T) {
	assert.Equal(t, "", where(nil))
	assert.Equal(t, " WHERE a = $1 AND b = $2", where([]string{"a = $1", "b = $2"}))
}

func TestLikeEscape(t *testing.T) {
	assert.Equal(t, `50\% off`, likeEscape("50% off"))
	assert.Equal(t, `a\_b`, likeEscape("a_b"))
	assert.Equal(t, `c:\\tmp`, likeEscape(`c:\tmp`))
	assert.Equal(t, "milk", likeEscape("milk"))
}
