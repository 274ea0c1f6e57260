package config

const (
	// DefaultDatabasePath is the default path for the reading database
	DefaultDatabasePath = "./reader.db"

	// DefaultReviewBatchSize is how many highlights a review round shows
	DefaultReviewBatchSize = 10
)
