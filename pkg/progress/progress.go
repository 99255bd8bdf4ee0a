// Package progress tracks a player's session: which ciphers are unlocked and
// how far they have got in each chapter. The cipher packages know nothing
// about it.
package progress

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/pkg/chapter"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"golang.org/x/text/language"
)

// DefaultLanguage is used for new sessions.
const DefaultLanguage = "en"

// ErrChapterLocked is returned when acting on a chapter whose predecessor is unsolved.
var ErrChapterLocked = errors.New("chapter is locked")

// ChapterProgress is the player's state within one chapter.
type ChapterProgress struct {
	Phase    chapter.Phase `json:"phase"`
	Attempts int           `json:"attempts"`
	Failed   int           `json:"failed"`
	SolvedAt *time.Time    `json:"solved_at,omitempty"`
}

// Progress is one player's session.
type Progress struct {
	ID        uuid.UUID                `json:"id"`
	Language  string                   `json:"language"`
	Unlocked  []ciphers.ID             `json:"unlocked"`
	Chapters  map[int]*ChapterProgress `json:"chapters"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// New starts a session with nothing solved.
func New() *Progress {
	now := time.Now()
	return &Progress{
		ID:        uuid.New(),
		Language:  DefaultLanguage,
		Unlocked:  []ciphers.ID{},
		Chapters:  make(map[int]*ChapterProgress),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Chapter returns the progress for chapter n, creating it in the intro phase.
func (p *Progress) Chapter(n int) *ChapterProgress {
	if p.Chapters == nil {
		p.Chapters = make(map[int]*ChapterProgress)
	}
	cp, ok := p.Chapters[n]
	if !ok {
		cp = &ChapterProgress{Phase: chapter.PhaseIntro}
		p.Chapters[n] = cp
	}
	return cp
}

// Solved reports whether chapter n has been solved.
func (p *Progress) Solved(n int) bool {
	cp, ok := p.Chapters[n]
	return ok && cp.SolvedAt != nil
}

// ChapterAvailable reports whether ch can be played: a chapter with no
// prerequisite always can, others once ch.Requires is solved.
func (p *Progress) ChapterAvailable(ch *chapter.Chapter) bool {
	return ch.Requires == 0 || p.Solved(ch.Requires)
}

// UnlockCipher records that id is unlocked. It reports whether this call
// changed anything.
func (p *Progress) UnlockCipher(id ciphers.ID) bool {
	if p.IsUnlocked(id) {
		return false
	}
	p.Unlocked = append(p.Unlocked, id)
	p.touch()
	return true
}

// IsUnlocked reports whether id has been unlocked.
func (p *Progress) IsUnlocked(id ciphers.ID) bool {
	return slices.Contains(p.Unlocked, id)
}

// Advance applies ev to ch's phase.
func (p *Progress) Advance(ch *chapter.Chapter, ev chapter.Event) (chapter.Phase, error) {
	if !p.ChapterAvailable(ch) {
		return "", fmt.Errorf("%w: %d", ErrChapterLocked, ch.Number)
	}
	cp := p.Chapter(ch.Number)
	next, err := chapter.Transition(cp.Phase, ev)
	if err != nil {
		return cp.Phase, err
	}
	cp.Phase = next
	p.touch()
	return next, nil
}

// RecordAttempt counts an answer to ch. A correct answer moves the chapter to
// solved and unlocks its cipher; it reports whether the cipher was newly
// unlocked.
func (p *Progress) RecordAttempt(ch *chapter.Chapter, correct bool) (bool, error) {
	if !p.ChapterAvailable(ch) {
		return false, fmt.Errorf("%w: %d", ErrChapterLocked, ch.Number)
	}
	cp := p.Chapter(ch.Number)
	cp.Attempts++
	p.touch()

	if !correct {
		cp.Failed++
		return false, nil
	}

	if cp.SolvedAt == nil {
		now := p.UpdatedAt
		cp.SolvedAt = &now
	}
	cp.Phase = chapter.PhaseSolved
	return p.UnlockCipher(ch.Cipher), nil
}

// SetLanguage sets the display language from a BCP 47 tag such as "en" or "fil".
func (p *Progress) SetLanguage(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", tag, err)
	}
	p.Language = t.String()
	p.touch()
	return nil
}

func (p *Progress) touch() {
	p.UpdatedAt = time.Now()
}
