package domain

import "time"

// TaxRate maps a (country, state) jurisdiction to a rate for one workspace.
// A state-level row takes precedence over the country-level row (State = "").
type TaxRate struct {
	ID             uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID    uint64    `json:"workspaceId" gorm:"not null;uniqueIndex:ux_tax_rates_jurisdiction,priority:1"`
	Country        string    `json:"country" gorm:"size:2;not null;uniqueIndex:ux_tax_rates_jurisdiction,priority:2"`
	State          string    `json:"state" gorm:"size:32;not null;default:'';uniqueIndex:ux_tax_rates_jurisdiction,priority:3"`
	Rate           float64   `json:"rate" gorm:"not null"`
	Classification string    `json:"classification,omitempty" gorm:"size:64"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TaxableItem is one line submitted to the tax engine.
type TaxableItem struct {
	Amount   int64 `json:"amount"`
	Quantity int64 `json:"quantity"`
	Taxable  bool  `json:"taxable"`
}

// TaxBreakdown is the deterministic result of a tax calculation.
type TaxBreakdown struct {
	PerItemTax   []int64 `json:"perItemTax"`
	TotalTax     int64   `json:"totalTax"`
	Rate         float64 `json:"rate"`
	Jurisdiction string  `json:"jurisdiction,omitempty"`
}

// TaxIDValidation is the outcome of a tax identifier check. Valid false with
// no error means the country scheme is unsupported or the checksum failed.
type TaxIDValidation struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
}
