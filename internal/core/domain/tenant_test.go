package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenantScope(t *testing.T) {
	scope, err := NewTenantScope(" practice-a ")
	require.NoError(t, err)
	assert.Equal(t, "practice-a", scope.PracticeID())
	assert.True(t, scope.Owns("practice-a"))
	assert.False(t, scope.Owns("practice-b"))

	_, err = NewTenantScope("   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTenantScope_ZeroValueOwnsNothing(t *testing.T) {
	var scope TenantScope
	assert.True(t, scope.IsZero())
	assert.False(t, scope.Owns(""))
}

func TestPractice_Location(t *testing.T) {
	var nilPractice *Practice
	assert.Equal(t, time.UTC, nilPractice.Location())
	assert.Equal(t, time.UTC, (&Practice{Timezone: "Not/AZone"}).Location())
	assert.Equal(t, "America/New_York", (&Practice{Timezone: "America/New_York"}).Location().String())
}

func TestLifecycleState_IsActive(t *testing.T) {
	assert.True(t, LifecycleActive.IsActive())
	assert.False(t, LifecycleInactive.IsActive())
	assert.False(t, LifecycleDeleted.IsActive())
}
