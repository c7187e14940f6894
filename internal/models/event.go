package models

// SchoolEvent is a calendar entry shown on the dashboard and announced to
// guardians. Color and Bg are display styling tokens carried verbatim.
type SchoolEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Bg          string `json:"bg"`
}
