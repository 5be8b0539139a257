package idgen

// Generator is the pluggable next_id() contract of §4.6, passed into
// driverutil.PoolOptions by shared ownership per the Design Note "Dynamic
// dispatch". Snowflake is the default implementation; UUIDGenerator is an
// alternative for deployments that would rather avoid configuring a
// worker/datacenter id pair at the cost of losing the snowflake's
// roughly-sortable, collision-free-by-construction ids.
type Generator interface {
	Next() int64
}

var _ Generator = (*Snowflake)(nil)
var _ Generator = UUIDGenerator{}
