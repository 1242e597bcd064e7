// Package county maps the free-text county and post-town fields of the
// practice address table, and the practice postcode, onto the 22 unitary
// authorities of Wales.
package county

import (
	"strings"
)

// County is a canonical unitary-authority name. The zero value is Unknown.
type County string

// Unknown means no authority could be determined. It is a value, not an error.
const Unknown County = ""

// The 22 unitary authorities.
const (
	IsleOfAnglesey  County = "Isle of Anglesey"
	Gwynedd         County = "Gwynedd"
	Conwy           County = "Conwy"
	Denbighshire    County = "Denbighshire"
	Flintshire      County = "Flintshire"
	Wrexham         County = "Wrexham"
	Powys           County = "Powys"
	Ceredigion      County = "Ceredigion"
	Pembrokeshire   County = "Pembrokeshire"
	Carmarthenshire County = "Carmarthenshire"
	Swansea         County = "Swansea"
	NeathPortTalbot County = "Neath Port Talbot"
	Bridgend        County = "Bridgend"
	ValeOfGlamorgan County = "Vale of Glamorgan"
	Cardiff         County = "Cardiff"
	RhonddaCynonTaf County = "Rhondda Cynon Taf"
	MerthyrTydfil   County = "Merthyr Tydfil"
	Caerphilly      County = "Caerphilly"
	BlaenauGwent    County = "Blaenau Gwent"
	Torfaen         County = "Torfaen"
	Monmouthshire   County = "Monmouthshire"
	Newport         County = "Newport"
)

var all = []County{
	IsleOfAnglesey, Gwynedd, Conwy, Denbighshire, Flintshire, Wrexham,
	Powys, Ceredigion, Pembrokeshire, Carmarthenshire, Swansea,
	NeathPortTalbot, Bridgend, ValeOfGlamorgan, Cardiff, RhonddaCynonTaf,
	MerthyrTydfil, Caerphilly, BlaenauGwent, Torfaen, Monmouthshire, Newport,
}

// Names returns the 22 authorities, north to south-east.
func Names() []County {
	out := make([]County, len(all))
	copy(out, all)
	return out
}

// Parse matches a canonical name case-insensitively.
func Parse(name string) (County, bool) {
	name = strings.TrimSpace(name)
	for _, c := range all {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return Unknown, false
}

// IsUnknown reports whether c is the Unknown sentinel.
func (c County) IsUnknown() bool {
	return c == Unknown
}

func (c County) String() string {
	if c == Unknown {
		return "Unknown"
	}
	return string(c)
}
