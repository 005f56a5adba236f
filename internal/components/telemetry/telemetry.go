package telemetry

// API is where scrapers, the card cache and the http layer send what happened
// to them. The slog implementation writes logs, tests use TestingAPI.
//
// note: fault injection point
type API interface {
	// ReportBroken is for failures someone has to look at, usually deckbox
	// changing its markup or a database refusing writes.
	//
	// id names the component and method ("client.user-set", "card_cache.put"),
	// the cause goes in params. Ids are lowercase, components use underscores
	// and methods use dashes.
	ReportBroken(id string, params ...any)

	// ReportWarning is for degraded but expected outcomes, such as an upstream
	// 503 or a row skipped for missing markers.
	ReportWarning(id string, params ...any)

	// ReportDebug is dropped unless debug logging is on.
	ReportDebug(msg string, params ...any)

	// ReportCount records a point-in-time count (friends returned, rows
	// evicted). Points are not meant to be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with "<namespace>: ", scopes nest.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scope(id string) string {
	return s.namespace + ": " + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scope(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scope(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scope(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scope(id), count)
}
