package domain

// ProductRecord is the canonical output unit for one product URL.
// Empty string means unknown for every field except URL, which is the
// input identity and always set.
type ProductRecord struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"` // pipe-joined single line
	Price       string `json:"price"`       // decimal with two fraction digits, or empty
	Seller      string `json:"seller"`
	Rating      string `json:"rating"`
}

// BlankRecord returns a record with every field empty except the URL.
func BlankRecord(url string) *ProductRecord {
	return &ProductRecord{URL: url}
}

// Usable reports whether the record is complete enough to stop the
// fallback chain. Title is the deciding field; price and seller are
// filled opportunistically afterwards.
func (r *ProductRecord) Usable() bool {
	return r != nil && r.Title != ""
}

// Status identifies which source (if any) produced a usable record.
type Status string

const (
	StatusRealtime  Status = "ok-realtime"
	StatusCompare   Status = "ok-compare"
	StatusAutoparse Status = "ok-autoparse"
	StatusBadURL    Status = "bad-url"
	StatusEmpty     Status = "empty"
)

// Outcome is the terminal result of resolving one URL.
type Outcome struct {
	Status Status         `json:"status"`
	Record *ProductRecord `json:"record"`
}

// Failed reports whether the outcome carries no usable data and the URL
// should be surfaced for manual retry.
func (o *Outcome) Failed() bool {
	return o.Status == StatusBadURL || o.Status == StatusEmpty
}

// ResolveRequest is an inbound request to resolve a single product URL.
type ResolveRequest struct {
	URL string `json:"url" binding:"required"`
}

// BatchRequest is an inbound request to resolve several URLs at once.
type BatchRequest struct {
	URLs []string `json:"urls" binding:"required"`
}
