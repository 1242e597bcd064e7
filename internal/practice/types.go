package practice

// Practice is a GP practice row from the address table.
type Practice struct {
	ID       string `json:"practice_id"`
	Name     string `json:"name"`
	Street   string `json:"street"`
	Area     string `json:"area"`
	PostTown string `json:"posttown"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
}

// PrescriptionRecord is one prescribing line for a practice and period.
type PrescriptionRecord struct {
	PracticeID string
	BNFCode    string
	BNFName    string
	Items      int64
	NIC        float64
	ActCost    float64
	Quantity   int64
	Period     int
}

// AchievementRecord is a QOF indicator value for a practice.
type AchievementRecord struct {
	OrgCode     string
	Indicator   string
	Numerator   float64
	Denominator float64
	Ratio       float64
	Centile     float64
}

// QOF indicators used by the analyses.
const (
	IndicatorHypertension = "HYP001"
	IndicatorObesity      = "OB001W"
	IndicatorCHD          = "CHD001"
)
