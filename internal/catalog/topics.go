package catalog

const (
	TopicNotifications = "dashboard.notifications"
	TopicStoreChanged  = "dashboard.store.changed"
)

// Partition key = entity/correlation id, supaya urutan event per entity terjaga.
func PartitionKey(id string) []byte { return []byte(id) }
