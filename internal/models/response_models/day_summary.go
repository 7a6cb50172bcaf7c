package response_models

// Bucket is the aggregate completion level for one calendar day,
// exposed to clients as one of exactly five literals.
type Bucket string

const (
	BucketNone Bucket = "none"
	Bucket25   Bucket = "25%"
	Bucket50   Bucket = "50%"
	Bucket75   Bucket = "75%"
	Bucket100  Bucket = "100%"
)

type DaySummary struct {
	Date   string `json:"date"`
	Bucket Bucket `json:"bucket"`
}
