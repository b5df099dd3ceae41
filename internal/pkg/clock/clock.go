package clock

import (
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
)

// Clock is the single time source of the use cases. Order numbers carry the calendar
// date of Now, so implementations report time in the shop's zone.
type Clock interface {
	Now() time.Time
}

type ShopClock struct {
	loc *time.Location
}

func NewShopClock(timeZone string) (*ShopClock, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "load shop time zone %q", timeZone)
	}
	return &ShopClock{loc: loc}, nil
}

func (c *ShopClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// MockClock is a settable clock safe for use from concurrent checkouts in tests.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}
