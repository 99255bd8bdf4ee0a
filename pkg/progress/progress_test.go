package progress

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/pkg/chapter"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, DefaultLanguage, p.Language)
	assert.Empty(t, p.Unlocked)
	assert.True(t, p.ChapterAvailable(&chapter.Chapter{Number: 1}))
	assert.False(t, p.ChapterAvailable(&chapter.Chapter{Number: 2, Requires: 1}))
}

func TestChapterAvailable_Gap(t *testing.T) {
	p := New()
	ch2 := &chapter.Chapter{Number: 2, Requires: 1, Cipher: ciphers.Vigenere}
	ch4 := &chapter.Chapter{Number: 4, Requires: 2, Cipher: ciphers.RailFence}

	assert.False(t, p.ChapterAvailable(ch4))

	_, err := p.RecordAttempt(&chapter.Chapter{Number: 1, Cipher: ciphers.Caesar}, true)
	require.NoError(t, err)
	_, err = p.RecordAttempt(ch2, true)
	require.NoError(t, err)

	assert.True(t, p.ChapterAvailable(ch4), "no chapter 3 to wait for")
	phase, err := p.Advance(ch4, chapter.EventBegin)
	require.NoError(t, err)
	assert.Equal(t, chapter.PhaseTutorial, phase)
}

func TestUnlockCipher(t *testing.T) {
	p := New()
	assert.True(t, p.UnlockCipher(ciphers.Caesar))
	assert.False(t, p.UnlockCipher(ciphers.Caesar), "idempotent")
	assert.True(t, p.IsUnlocked(ciphers.Caesar))
	assert.False(t, p.IsUnlocked(ciphers.Playfair))
	assert.Equal(t, []ciphers.ID{ciphers.Caesar}, p.Unlocked)
}

func TestRecordAttempt(t *testing.T) {
	p := New()
	ch1 := &chapter.Chapter{Number: 1, Cipher: ciphers.Caesar}
	ch2 := &chapter.Chapter{Number: 2, Requires: 1, Cipher: ciphers.Vigenere}

	_, err := p.RecordAttempt(ch2, true)
	assert.True(t, errors.Is(err, ErrChapterLocked))

	unlocked, err := p.RecordAttempt(ch1, false)
	require.NoError(t, err)
	assert.False(t, unlocked)
	assert.Equal(t, 1, p.Chapter(1).Failed)
	assert.False(t, p.Solved(1))

	unlocked, err = p.RecordAttempt(ch1, true)
	require.NoError(t, err)
	assert.True(t, unlocked)
	assert.True(t, p.Solved(1))
	assert.Equal(t, chapter.PhaseSolved, p.Chapter(1).Phase)
	assert.Equal(t, 2, p.Chapter(1).Attempts)
	solvedAt := *p.Chapter(1).SolvedAt

	unlocked, err = p.RecordAttempt(ch1, true)
	require.NoError(t, err)
	assert.False(t, unlocked, "already unlocked")
	assert.Equal(t, solvedAt, *p.Chapter(1).SolvedAt, "first solve time kept")

	assert.True(t, p.ChapterAvailable(ch2))
}

func TestAdvance(t *testing.T) {
	p := New()
	ch1 := &chapter.Chapter{Number: 1}

	phase, err := p.Advance(ch1, chapter.EventBegin)
	require.NoError(t, err)
	assert.Equal(t, chapter.PhaseTutorial, phase)

	phase, err = p.Advance(ch1, chapter.EventSolve)
	assert.True(t, errors.Is(err, chapter.ErrInvalidTransition))
	assert.Equal(t, chapter.PhaseTutorial, phase)

	phase, err = p.Advance(ch1, chapter.EventStartPuzzle)
	require.NoError(t, err)
	assert.Equal(t, chapter.PhasePuzzle, phase)

	_, err = p.Advance(&chapter.Chapter{Number: 3, Requires: 2}, chapter.EventBegin)
	assert.True(t, errors.Is(err, ErrChapterLocked))
}

func TestSetLanguage(t *testing.T) {
	p := New()
	require.NoError(t, p.SetLanguage("fil"))
	assert.Equal(t, "fil", p.Language)

	require.NoError(t, p.SetLanguage("en-US"))
	assert.Equal(t, "en-US", p.Language)

	assert.Error(t, p.SetLanguage("not a language!"))
	assert.Equal(t, "en-US", p.Language)
}

func TestChapter_NilMap(t *testing.T) {
	p := &Progress{}
	cp := p.Chapter(1)
	assert.Equal(t, chapter.PhaseIntro, cp.Phase)
}
