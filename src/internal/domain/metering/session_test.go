package metering_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/pos_core/src/internal/domain/metering"
	"github.com/jackyeh168/pos_core/src/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Session 測試
// ===========================

// Test 1: NewSession 到期時間 = 現在 + duration
func TestNewSession_SetsExpiry(t *testing.T) {
	// Act
	session, err := metering.NewSession(store.NewStoreID(), "menu_suggestion", mustFee(t, 10), time.Hour)

	// Assert
	require.NoError(t, err)
	assert.True(t, session.IsActive(time.Now()))
	assert.True(t, session.IsActive(session.ExpiresAt().Add(-time.Minute)))
	assert.False(t, session.IsActive(session.ExpiresAt()))
}

// Test 2: NewSession 非正數時長拒絕
func TestNewSession_NonPositiveDuration_ReturnsError(t *testing.T) {
	// Act
	session, err := metering.NewSession(store.NewStoreID(), "menu_suggestion", mustFee(t, 10), 0)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, metering.ErrInvalidSessionDuration)
}

// Test 3: Renew 原地續期
func TestSession_Renew_ExtendsInPlace(t *testing.T) {
	// Arrange
	session, _ := metering.NewSession(store.NewStoreID(), "menu_suggestion", mustFee(t, 10), time.Millisecond)
	originalID := session.SessionID()

	// Act
	err := session.Renew(mustFee(t, 20), time.Hour)

	// Assert - 同一列、同一 ID，費用與到期時間更新
	assert.NoError(t, err)
	assert.Equal(t, originalID, session.SessionID())
	assert.Equal(t, "20", session.Fee().String())
	assert.True(t, session.IsActive(time.Now()))
}

// Test 4: End 立即到期、不退款
func TestSession_End_ExpiresImmediately(t *testing.T) {
	// Arrange
	session, _ := metering.NewSession(store.NewStoreID(), "menu_suggestion", mustFee(t, 10), time.Hour)

	// Act
	session.End()

	// Assert
	assert.False(t, session.IsActive(time.Now()))
}

// Test 5: ReconstructSession 空 feature（損壞資料）
func TestReconstructSession_EmptyFeature_ReturnsError(t *testing.T) {
	// Arrange
	now := time.Now()

	// Act
	session, err := metering.ReconstructSession(
		metering.NewSessionID(), store.NewStoreID(), "", mustFee(t, 10),
		now, now.Add(time.Hour), now, now, 0,
	)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, metering.ErrInvalidFeature)
}
