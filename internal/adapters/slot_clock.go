package adapters

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

// Clock yields the present slot. Implementations carry no locking of their
// own; SharedSlotClock provides it.
type Clock interface {
	// PresentSlot fails with domain.ErrSlotUnknowable when "now" falls
	// outside the chain's slot schedule.
	PresentSlot() (domain.Slot, error)
}

// SystemClock derives the slot from wall-clock time, genesis time and slot
// duration.
type SystemClock struct {
	genesisTime  uint64
	slotDuration uint64
	now          func() time.Time
}

func NewSystemClock(genesisTime, slotDuration uint64) *SystemClock {
	return &SystemClock{
		genesisTime:  genesisTime,
		slotDuration: slotDuration,
		now:          time.Now,
	}
}

func (c *SystemClock) PresentSlot() (domain.Slot, error) {
	if c.slotDuration == 0 {
		return 0, errors.New("slot duration is zero")
	}
	now := c.now().Unix()
	if now < 0 || uint64(now) < c.genesisTime {
		return 0, domain.ErrSlotUnknowable
	}
	return domain.Slot((uint64(now) - c.genesisTime) / c.slotDuration), nil
}

// TestingClock is a settable Clock for tests and local runs.
type TestingClock struct {
	slot       domain.Slot
	unknowable bool
}

func NewTestingClock(slot domain.Slot) *TestingClock {
	return &TestingClock{slot: slot}
}

func (c *TestingClock) SetSlot(slot domain.Slot) { c.slot = slot }

// SetUnknowable makes the clock report that the slot cannot be determined.
func (c *TestingClock) SetUnknowable(unknowable bool) { c.unknowable = unknowable }

func (c *TestingClock) PresentSlot() (domain.Slot, error) {
	if c.unknowable {
		return 0, domain.ErrSlotUnknowable
	}
	return c.slot, nil
}

// SharedSlotClock wraps a Clock behind a reader-writer lock shared between
// the producer (reads) and a time-advancing component (writes). A writer that
// panics while holding the lock poisons the clock: every later read fails
// with domain.ErrClockPoisoned.
type SharedSlotClock struct {
	mu       sync.RWMutex
	poisoned bool
	inner    Clock
}

func NewSharedSlotClock(inner Clock) *SharedSlotClock {
	return &SharedSlotClock{inner: inner}
}

// CurrentSlot implements ports.SlotClock.
func (c *SharedSlotClock) CurrentSlot() (domain.Slot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.poisoned {
		return 0, domain.ErrClockPoisoned
	}
	return c.inner.PresentSlot()
}

// Update gives a writer access to the inner clock under the write lock. A
// panic inside fn marks the clock poisoned before propagating.
func (c *SharedSlotClock) Update(fn func(Clock)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			c.poisoned = true
			panic(r)
		}
	}()
	fn(c.inner)
}
