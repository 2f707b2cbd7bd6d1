package domain_test

import (
	"testing"

	"idea-miner/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestGroupKey(t *testing.T) {
	t.Run("Lower-cases and strips punctuation", func(t *testing.T) {
		assert.Equal(t, "email-inbox-chaos", domain.GroupKey("EMAIL inbox... CHAOS!"))
	})

	t.Run("Drops tokens shorter than four characters", func(t *testing.T) {
		assert.Equal(t, "slow-builds", domain.GroupKey("my ci is so slow builds"))
	})

	t.Run("Drops stop words", func(t *testing.T) {
		assert.Equal(t, "invoices-late", domain.GroupKey("this that with invoices just late them"))
	})

	t.Run("Keeps the first six significant tokens in order", func(t *testing.T) {
		text := "alpha bravo charlie delta echoes foxtrot golfing hotels"
		assert.Equal(t, "alpha-bravo-charlie-delta-echoes-foxtrot", domain.GroupKey(text))
	})

	t.Run("Is order-sensitive", func(t *testing.T) {
		a := domain.GroupKey("slow builds waste time")
		b := domain.GroupKey("waste time slow builds")
		assert.NotEqual(t, a, b)
	})

	t.Run("Numbers survive", func(t *testing.T) {
		assert.Equal(t, "2024-budget", domain.GroupKey("my 2024 budget"))
	})

	t.Run("Falls back to misc sentinel", func(t *testing.T) {
		assert.Equal(t, "misc", domain.GroupKey(""))
		assert.Equal(t, "misc", domain.GroupKey("a to of!!"))
		assert.Equal(t, "misc", domain.GroupKey("this that with from"))
	})

	t.Run("Non-ASCII characters become separators", func(t *testing.T) {
		// "café" splits into "caf" + separator, and "caf" is too short to keep.
		assert.Equal(t, "menus", domain.GroupKey("café menus"))
	})
}
