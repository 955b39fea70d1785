package models

import (
	"fmt"
	"time"
)

type Period struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PeriodType struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Periods []Period `json:"periods"`
}

// PeriodCatalog lists the reporting periods an import can be tagged with.
func PeriodCatalog() []PeriodType {
	monthly := make([]Period, 0, 12)
	for m := time.January; m <= time.December; m++ {
		monthly = append(monthly, Period{ID: fmt.Sprintf("M%d", int(m)), Name: m.String()})
	}

	quarterly := make([]Period, 0, 4)
	for q := 1; q <= 4; q++ {
		quarterly = append(quarterly, Period{ID: fmt.Sprintf("Q%d", q), Name: fmt.Sprintf("Quarter %d", q)})
	}

	return []PeriodType{
		{ID: "monthly", Name: "Monthly Results", Periods: monthly},
		{ID: "quarterly", Name: "Quarterly Results", Periods: quarterly},
		{ID: "yearly", Name: "Yearly Results", Periods: []Period{{ID: "Y1", Name: "Full Year"}}},
	}
}

func IsValidPeriod(id string) bool {
	for _, pt := range PeriodCatalog() {
		for _, p := range pt.Periods {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

// PeriodName returns the display name of a catalog period, or id itself.
func PeriodName(id string) string {
	for _, pt := range PeriodCatalog() {
		for _, p := range pt.Periods {
			if p.ID == id {
				return p.Name
			}
		}
	}
	return id
}
