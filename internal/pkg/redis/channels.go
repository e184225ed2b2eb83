package redis

import "fmt"

const (
	// ChannelIndexUpdatesPrefix is the prefix for bucket-specific search index update channels.
	ChannelIndexUpdatesPrefix = "search_index_updates:"
)

// GetIndexUpdatesChannel returns the bucket-specific channel announcing search index swaps.
func GetIndexUpdatesChannel(bucket string) string {
	return fmt.Sprintf("%s%s", ChannelIndexUpdatesPrefix, bucket)
}
