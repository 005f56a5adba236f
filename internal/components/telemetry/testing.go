package telemetry

import (
	"fmt"
	"sync"
	"testing"
)

// TestingAPI logs every report to the test and keeps them around so tests can
// assert on what a component reported.
type TestingAPI struct {
	t testing.TB

	mutex    *sync.Mutex
	broken   *[]string
	warnings *[]string
	counts   map[string]int64
}

func NewTestingAPI(t testing.TB) TestingAPI {
	return TestingAPI{
		t:        t,
		mutex:    &sync.Mutex{},
		broken:   &[]string{},
		warnings: &[]string{},
		counts:   map[string]int64{},
	}
}

func (a TestingAPI) ReportBroken(id string, params ...any) {
	a.t.Log("BROKEN", id, fmt.Sprint(params...))
	a.mutex.Lock()
	defer a.mutex.Unlock()
	*a.broken = append(*a.broken, id)
}

func (a TestingAPI) ReportWarning(id string, params ...any) {
	a.t.Log("WARN", id, fmt.Sprint(params...))
	a.mutex.Lock()
	defer a.mutex.Unlock()
	*a.warnings = append(*a.warnings, id)
}

func (a TestingAPI) ReportDebug(msg string, params ...any) {
	a.t.Log("DEBUG", msg, fmt.Sprint(params...))
}

func (a TestingAPI) ReportCount(id string, count int64) {
	a.t.Log("COUNT", id, count)
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.counts[id] = count
}

// Count returns the last count reported under id.
func (a TestingAPI) Count(id string) (int64, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	count, ok := a.counts[id]
	return count, ok
}

// Broken returns the ids passed to ReportBroken so far.
func (a TestingAPI) Broken() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return append([]string(nil), *a.broken...)
}

// Warnings returns the ids passed to ReportWarning so far.
func (a TestingAPI) Warnings() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return append([]string(nil), *a.warnings...)
}
