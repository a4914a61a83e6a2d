package models

// Record is one product listing extracted from a results page.
// Records are immutable once created; the controller owns the
// accumulated slice and the report reads it in order.
type Record struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Link  string `json:"link"`
	Image []byte `json:"-"`
	Page  int    `json:"page"`
}

// Complete reports whether the record carries every required text field.
// The image is optional; the report renders placeholder space without it.
func (r Record) Complete() bool {
	return r.Title != "" && r.Price != "" && r.Link != ""
}
