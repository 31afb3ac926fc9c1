package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContributorRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleComposer.Valid())
	assert.True(t, RoleLyricist.Valid())
	assert.True(t, RoleUnknown.Valid())
	assert.False(t, ContributorRole("conductor").Valid())
	assert.False(t, ContributorRole("").Valid())
}

func TestWorkTitleKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Solveigs sang::3", WorkTitleKey("Solveigs sang", 3))

	categoryID := int64(7)
	w := &Work{Title: "Brudeferden", CategoryID: &categoryID}
	assert.Equal(t, "Brudeferden::7", w.TitleKey())

	// Works without a category fall back to category 0.
	w2 := &Work{Title: "Brudeferden"}
	assert.Equal(t, "Brudeferden::0", w2.TitleKey())
}

func TestNormalizePublisherName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Norsk Musikforlag", NormalizePublisherName("  Norsk Musikforlag  "))
	assert.Equal(t, "", NormalizePublisherName("   "))
	assert.Equal(t, "", NormalizePublisherName(""))
}
