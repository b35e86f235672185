package payroll

// Period is the (month, year) pair a payroll run applies to.
//
// FromSource records whether the pair was read out of the imported file or
// defaulted by the system; the distinction is user-visible and persisted
// alongside the period itself.
type Period struct {
	Month      string `json:"month"`
	Year       string `json:"year"`
	FromSource bool   `json:"from_source"`
}

// String renders "Month Year" for subjects, folder names, and logs.
func (p Period) String() string { return p.Month + " " + p.Year }
