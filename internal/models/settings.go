package models

// ReportSettings is the single global record stamped onto generated report
// cards. AuthPrefix seeds the printed authentication code.
type ReportSettings struct {
	HeadOfSchool string `json:"headOfSchool"`
	Signature    string `json:"signature"`
	AuthPrefix   string `json:"authPrefix"`
}
