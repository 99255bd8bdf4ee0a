package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"github.com/jwebster45206/cipher-engine/pkg/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStorage_Progress(t *testing.T) {
	ctx := context.Background()
	m := NewMockStorage()

	p := progress.New()
	p.UnlockCipher(ciphers.Caesar)
	require.NoError(t, m.SaveProgress(ctx, p))

	p.UnlockCipher(ciphers.Vigenere)

	loaded, err := m.LoadProgress(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []ciphers.ID{ciphers.Caesar}, loaded.Unlocked, "stored copy is isolated")

	require.NoError(t, m.DeleteProgress(ctx, p.ID))
	loaded, err = m.LoadProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	assert.Error(t, m.SaveProgress(ctx, nil))
}

func TestMockStorage_Attempts(t *testing.T) {
	ctx := context.Background()
	m := NewMockStorage()
	p := progress.New()

	now := time.Now()
	require.NoError(t, m.AppendAttempt(ctx, p.ID, Attempt{Chapter: 1, Answer: "a", At: now}))
	require.NoError(t, m.AppendAttempt(ctx, p.ID, Attempt{Chapter: 1, Answer: "b", Correct: true, At: now}))

	list, err := m.ListAttempts(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Answer)
	assert.True(t, list[1].Correct)
}

func TestMockStorage_Errors(t *testing.T) {
	ctx := context.Background()
	m := NewMockStorage()

	assert.NoError(t, m.Ping(ctx))
	m.SetPingError(errors.New("down"))
	assert.Error(t, m.Ping(ctx))
	m.SetPingSuccess()
	assert.NoError(t, m.Ping(ctx))

	m.SetSaveError(errors.New("full"))
	assert.Error(t, m.SaveProgress(ctx, progress.New()))
}
