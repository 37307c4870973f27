package observability

// Metric name prefixes
const (
	MetricPrefix = "bonusbot"
)

// Metric names
const (
	// Resolver metrics
	ResolutionsTotal = MetricPrefix + ".bonus.resolutions_total"
	TransitionsTotal = MetricPrefix + ".bonus.transitions_total"

	// Roster cache metrics
	RosterRefreshTotal    = MetricPrefix + ".roster.refresh_total"
	RosterRefreshDuration = MetricPrefix + ".roster.refresh_duration"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Discord metrics
	AnnouncementsSentTotal = MetricPrefix + ".discord.announcements_sent_total"

	// Database metrics
	DatabaseQueriesTotal  = MetricPrefix + ".database.queries_total"
	DatabaseQueryDuration = MetricPrefix + ".database.query_duration"
)

// Label keys
const (
	LabelKind      = "kind"
	LabelEventType = "event_type"
	LabelArtist    = "artist"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
