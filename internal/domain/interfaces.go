package domain

// Tables is the read-only view of one loaded dataset snapshot. Implementations
// must never mutate the returned slices; aggregators treat them as immutable.
type Tables interface {
	MetricRows() []MetricRecord
	TopicRows() []TopicRecord
	LeaderRows() []LeaderRecord
}
