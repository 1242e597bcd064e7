package analysis

// bnfChapters names the two-digit BNF chapters. 16 and 17 are unused.
var bnfChapters = map[string]string{
	"01": "Gastro-Intestinal System",
	"02": "Cardiovascular System",
	"03": "Respiratory System",
	"04": "Central Nervous System",
	"05": "Infections",
	"06": "Endocrine System",
	"07": "Obstetrics, Gynaecology and Urinary-Tract Disorders",
	"08": "Malignant Disease and Immunosuppression",
	"09": "Nutrition and Blood",
	"10": "Musculoskeletal and Joint Diseases",
	"11": "Eye",
	"12": "Ear, Nose and Oropharynx",
	"13": "Skin",
	"14": "Immunological Products and Vaccines",
	"15": "Anaesthesia",
	"18": "Preparations used in Diagnosis",
	"19": "Other Drugs and Preparations",
	"20": "Dressings",
	"21": "Appliances",
	"22": "Incontinence Appliances",
	"23": "Stoma Appliances",
}

// AntihypertensiveSection is BNF 2.5, hypertension and heart failure.
const AntihypertensiveSection = "0205"

// ChapterName returns the BNF chapter title for a two-digit code.
func ChapterName(code string) string {
	if name, ok := bnfChapters[code]; ok {
		return name
	}
	return "Unclassified"
}
