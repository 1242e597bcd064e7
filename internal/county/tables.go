package county

// townRule maps a lower-case post-town substring to an authority.
type townRule struct {
	town   string
	county County
}

// towns is scanned in order and the first substring contained in the
// post-town wins. Compound names sit above any shorter name they contain
// ("porthcawl" above "porth", "new tredegar" above "tredegar").
var towns = []townRule{
	// Cardiff
	{"cardiff", Cardiff},
	{"llandaff", Cardiff},
	{"whitchurch", Cardiff},
	{"llanishen", Cardiff},
	{"rhiwbina", Cardiff},
	{"radyr", Cardiff},
	{"pentyrch", Cardiff},
	{"creigiau", Cardiff},
	{"st mellons", Cardiff},
	{"llanrumney", Cardiff},
	{"rumney", Cardiff},
	{"pontprennau", Cardiff},
	{"pentwyn", Cardiff},
	{"llanedeyrn", Cardiff},
	{"fairwater", Cardiff},
	{"grangetown", Cardiff},
	{"butetown", Cardiff},
	{"cathays", Cardiff},
	{"gabalfa", Cardiff},
	{"tongwynlais", Cardiff},
	{"st fagans", Cardiff},

	// Vale of Glamorgan
	{"barry", ValeOfGlamorgan},
	{"penarth", ValeOfGlamorgan},
	{"dinas powys", ValeOfGlamorgan},
	{"cowbridge", ValeOfGlamorgan},
	{"llantwit major", ValeOfGlamorgan},
	{"sully", ValeOfGlamorgan},
	{"rhoose", ValeOfGlamorgan},
	{"wenvoe", ValeOfGlamorgan},
	{"st athan", ValeOfGlamorgan},
	{"llandough", ValeOfGlamorgan},

	// Bridgend
	{"porthcawl", Bridgend},
	{"bridgend", Bridgend},
	{"maesteg", Bridgend},
	{"pencoed", Bridgend},
	{"pyle", Bridgend},
	{"kenfig hill", Bridgend},
	{"cefn cribwr", Bridgend},
	{"nantymoel", Bridgend},
	{"ogmore vale", Bridgend},
	{"blackmill", Bridgend},
	{"aberkenfig", Bridgend},
	{"bryncethin", Bridgend},
	{"caerau", Bridgend},
	{"tondu", Bridgend},
	{"pontycymer", Bridgend},
	{"cornelly", Bridgend},

	// Caerphilly
	{"ystrad mynach", Caerphilly},
	{"new tredegar", Caerphilly},
	{"caerphilly", Caerphilly},
	{"blackwood", Caerphilly},
	{"aberbargoed", Caerphilly},
	{"bargoed", Caerphilly},
	{"risca", Caerphilly},
	{"newbridge", Caerphilly},
	{"rhymney", Caerphilly},
	{"abercarn", Caerphilly},
	{"crosskeys", Caerphilly},
	{"cross keys", Caerphilly},
	{"hengoed", Caerphilly},
	{"nelson", Caerphilly},
	{"pontllanfraith", Caerphilly},
	{"oakdale", Caerphilly},
	{"llanbradach", Caerphilly},
	{"bedwas", Caerphilly},
	{"trethomas", Caerphilly},
	{"machen", Caerphilly},
	{"abertridwr", Caerphilly},
	{"senghenydd", Caerphilly},
	{"gelligaer", Caerphilly},
	{"pengam", Caerphilly},
	{"ynysddu", Caerphilly},

	// Merthyr Tydfil
	{"merthyr", MerthyrTydfil},
	{"treharris", MerthyrTydfil},
	{"troedyrhiw", MerthyrTydfil},
	{"aberfan", MerthyrTydfil},
	{"dowlais", MerthyrTydfil},
	{"pentrebach", MerthyrTydfil},
	{"quakers yard", MerthyrTydfil},
	{"bedlinog", MerthyrTydfil},

	// Rhondda Cynon Taf
	{"pontypridd", RhonddaCynonTaf},
	{"aberdare", RhonddaCynonTaf},
	{"mountain ash", RhonddaCynonTaf},
	{"tonypandy", RhonddaCynonTaf},
	{"treorchy", RhonddaCynonTaf},
	{"ferndale", RhonddaCynonTaf},
	{"tonyrefail", RhonddaCynonTaf},
	{"llantrisant", RhonddaCynonTaf},
	{"pontyclun", RhonddaCynonTaf},
	{"talbot green", RhonddaCynonTaf},
	{"church village", RhonddaCynonTaf},
	{"llantwit fardre", RhonddaCynonTaf},
	{"beddau", RhonddaCynonTaf},
	{"hirwaun", RhonddaCynonTaf},
	{"abercynon", RhonddaCynonTaf},
	{"ynysybwl", RhonddaCynonTaf},
	{"tylorstown", RhonddaCynonTaf},
	{"maerdy", RhonddaCynonTaf},
	{"treherbert", RhonddaCynonTaf},
	{"gilfach goch", RhonddaCynonTaf},
	{"penrhiwceiber", RhonddaCynonTaf},
	{"clydach vale", RhonddaCynonTaf},
	{"llwynypia", RhonddaCynonTaf},
	{"penygraig", RhonddaCynonTaf},
	{"taffs well", RhonddaCynonTaf},
	{"rhondda", RhonddaCynonTaf},

	// Blaenau Gwent
	{"ebbw vale", BlaenauGwent},
	{"tredegar", BlaenauGwent},
	{"abertillery", BlaenauGwent},
	{"brynmawr", BlaenauGwent},
	{"blaina", BlaenauGwent},
	{"nantyglo", BlaenauGwent},
	{"beaufort", BlaenauGwent},
	{"llanhilleth", BlaenauGwent},

	// Torfaen
	{"cwmbran", Torfaen},
	{"pontypool", Torfaen},
	{"blaenavon", Torfaen},
	{"abersychan", Torfaen},
	{"griffithstown", Torfaen},
	{"sebastopol", Torfaen},
	{"pontnewydd", Torfaen},
	{"croesyceiliog", Torfaen},

	// Monmouthshire
	{"abergavenny", Monmouthshire},
	{"monmouth", Monmouthshire},
	{"chepstow", Monmouthshire},
	{"caldicot", Monmouthshire},
	{"usk", Monmouthshire},
	{"magor", Monmouthshire},
	{"raglan", Monmouthshire},
	{"portskewett", Monmouthshire},
	{"gilwern", Monmouthshire},
	{"tintern", Monmouthshire},

	// Newport
	{"newport", Newport},
	{"caerleon", Newport},
	{"rogerstone", Newport},
	{"bassaleg", Newport},
	{"langstone", Newport},
	{"marshfield", Newport},
	{"pillgwenlly", Newport},
	{"maindee", Newport},

	// Neath Port Talbot
	{"glynneath", NeathPortTalbot},
	{"neath", NeathPortTalbot},
	{"port talbot", NeathPortTalbot},
	{"briton ferry", NeathPortTalbot},
	{"pontardawe", NeathPortTalbot},
	{"ystalyfera", NeathPortTalbot},
	{"skewen", NeathPortTalbot},
	{"aberavon", NeathPortTalbot},
	{"baglan", NeathPortTalbot},
	{"seven sisters", NeathPortTalbot},
	{"resolven", NeathPortTalbot},
	{"crynant", NeathPortTalbot},
	{"gwaun cae gurwen", NeathPortTalbot},
	{"margam", NeathPortTalbot},

	// Swansea
	{"swansea", Swansea},
	{"gorseinon", Swansea},
	{"pontarddulais", Swansea},
	{"morriston", Swansea},
	{"clydach", Swansea},
	{"gowerton", Swansea},
	{"mumbles", Swansea},
	{"sketty", Swansea},
	{"killay", Swansea},
	{"penclawdd", Swansea},
	{"loughor", Swansea},
	{"fforestfach", Swansea},
	{"bishopston", Swansea},

	// Carmarthenshire
	{"carmarthen", Carmarthenshire},
	{"llanelli", Carmarthenshire},
	{"ammanford", Carmarthenshire},
	{"burry port", Carmarthenshire},
	{"kidwelly", Carmarthenshire},
	{"llandeilo", Carmarthenshire},
	{"llandovery", Carmarthenshire},
	{"newcastle emlyn", Carmarthenshire},
	{"st clears", Carmarthenshire},
	{"whitland", Carmarthenshire},
	{"pembrey", Carmarthenshire},
	{"cross hands", Carmarthenshire},
	{"tumble", Carmarthenshire},
	{"garnant", Carmarthenshire},
	{"glanamman", Carmarthenshire},
	{"brynamman", Carmarthenshire},
	{"pontyberem", Carmarthenshire},
	{"llangennech", Carmarthenshire},
	{"laugharne", Carmarthenshire},

	// Pembrokeshire
	{"haverfordwest", Pembrokeshire},
	{"pembroke", Pembrokeshire},
	{"milford haven", Pembrokeshire},
	{"tenby", Pembrokeshire},
	{"fishguard", Pembrokeshire},
	{"goodwick", Pembrokeshire},
	{"narberth", Pembrokeshire},
	{"saundersfoot", Pembrokeshire},
	{"neyland", Pembrokeshire},
	{"st davids", Pembrokeshire},
	{"crymych", Pembrokeshire},
	{"letterston", Pembrokeshire},
	{"kilgetty", Pembrokeshire},
	{"solva", Pembrokeshire},

	// Ceredigion
	{"aberystwyth", Ceredigion},
	{"cardigan", Ceredigion},
	{"lampeter", Ceredigion},
	{"aberaeron", Ceredigion},
	{"new quay", Ceredigion},
	{"tregaron", Ceredigion},
	{"llandysul", Ceredigion},
	{"bow street", Ceredigion},
	{"aberporth", Ceredigion},
	{"penparcau", Ceredigion},

	// Powys
	{"brecon", Powys},
	{"newtown", Powys},
	{"welshpool", Powys},
	{"llandrindod", Powys},
	{"builth wells", Powys},
	{"machynlleth", Powys},
	{"llanidloes", Powys},
	{"knighton", Powys},
	{"presteigne", Powys},
	{"rhayader", Powys},
	{"hay on wye", Powys},
	{"crickhowell", Powys},
	{"ystradgynlais", Powys},
	{"talgarth", Powys},
	{"llanfair caereinion", Powys},
	{"llanfyllin", Powys},
	{"montgomery", Powys},
	{"llanwrtyd", Powys},
	{"caersws", Powys},

	// Wrexham
	{"bangor on dee", Wrexham},
	{"wrexham", Wrexham},
	{"chirk", Wrexham},
	{"ruabon", Wrexham},
	{"rhosllanerchrugog", Wrexham},
	{"gresford", Wrexham},
	{"brymbo", Wrexham},
	{"coedpoeth", Wrexham},
	{"overton", Wrexham},
	{"cefn mawr", Wrexham},
	{"johnstown", Wrexham},
	{"rossett", Wrexham},
	{"gwersyllt", Wrexham},

	// Flintshire
	{"mold", Flintshire},
	{"flint", Flintshire},
	{"holywell", Flintshire},
	{"buckley", Flintshire},
	{"connahs quay", Flintshire},
	{"connah s quay", Flintshire},
	{"shotton", Flintshire},
	{"queensferry", Flintshire},
	{"saltney", Flintshire},
	{"hawarden", Flintshire},
	{"deeside", Flintshire},
	{"caergwrle", Flintshire},
	{"mostyn", Flintshire},
	{"bagillt", Flintshire},
	{"penyffordd", Flintshire},
	{"mynydd isa", Flintshire},

	// Denbighshire
	{"rhyl", Denbighshire},
	{"prestatyn", Denbighshire},
	{"denbigh", Denbighshire},
	{"ruthin", Denbighshire},
	{"llangollen", Denbighshire},
	{"corwen", Denbighshire},
	{"st asaph", Denbighshire},
	{"rhuddlan", Denbighshire},
	{"dyserth", Denbighshire},
	{"bodelwyddan", Denbighshire},

	// Conwy
	{"colwyn bay", Conwy},
	{"llandudno", Conwy},
	{"conwy", Conwy},
	{"abergele", Conwy},
	{"llanrwst", Conwy},
	{"betws y coed", Conwy},
	{"penmaenmawr", Conwy},
	{"llanfairfechan", Conwy},
	{"kinmel bay", Conwy},
	{"towyn", Conwy},
	{"deganwy", Conwy},
	{"rhos on sea", Conwy},
	{"cerrigydrudion", Conwy},

	// Gwynedd
	{"porthmadog", Gwynedd},
	{"caernarfon", Gwynedd},
	{"bangor", Gwynedd},
	{"pwllheli", Gwynedd},
	{"blaenau ffestiniog", Gwynedd},
	{"dolgellau", Gwynedd},
	{"bala", Gwynedd},
	{"barmouth", Gwynedd},
	{"tywyn", Gwynedd},
	{"criccieth", Gwynedd},
	{"bethesda", Gwynedd},
	{"llanberis", Gwynedd},
	{"penrhyndeudraeth", Gwynedd},
	{"harlech", Gwynedd},
	{"nefyn", Gwynedd},
	{"abersoch", Gwynedd},
	{"aberdyfi", Gwynedd},
	{"aberdovey", Gwynedd},

	// Isle of Anglesey
	{"porthaethwy", IsleOfAnglesey},
	{"holyhead", IsleOfAnglesey},
	{"llangefni", IsleOfAnglesey},
	{"menai bridge", IsleOfAnglesey},
	{"beaumaris", IsleOfAnglesey},
	{"amlwch", IsleOfAnglesey},
	{"benllech", IsleOfAnglesey},
	{"llanfairpwll", IsleOfAnglesey},
	{"rhosneigr", IsleOfAnglesey},
	{"gaerwen", IsleOfAnglesey},
	{"cemaes", IsleOfAnglesey},
	{"moelfre", IsleOfAnglesey},

	// Short names that are contained in longer ones above.
	{"porth", RhonddaCynonTaf},
}

// countyRule maps an upper-case county substring to an authority.
type countyRule struct {
	keyword string
	county  County
}

// countyRules is tested in order against the upper-cased county field.
// Historic names that span several authorities (Gwent, Dyfed, Clwyd,
// Glamorgan) deliberately have no rule.
var countyRules = []countyRule{
	{"NEW TREDEGAR", Caerphilly},
	{"EBBW VALE", BlaenauGwent},
	{"OGMORE VALE", Bridgend},
	{"MERTHYR VALE", MerthyrTydfil},
	{"CLYDACH VALE", RhonddaCynonTaf},
	{"NEATH PORT TALBOT", NeathPortTalbot},
	{"VALE OF GLAMORGAN", ValeOfGlamorgan},
	{"BLAENAU GWENT", BlaenauGwent},
	{"RHONDDA", RhonddaCynonTaf},
	{"CYNON", RhonddaCynonTaf},
	{"PONTYPRIDD", RhonddaCynonTaf},
	{"ABERDARE", RhonddaCynonTaf},
	{"ANGLESEY", IsleOfAnglesey},
	{"YNYS MON", IsleOfAnglesey},
	{"YNYS MÔN", IsleOfAnglesey},
	{"GWYNEDD", Gwynedd},
	{"CAERNARFON", Gwynedd},
	{"MERIONETH", Gwynedd},
	{"MEIRIONNYDD", Gwynedd},
	{"CONWY", Conwy},
	{"CONWAY", Conwy},
	{"DENBIGH", Denbighshire},
	{"FLINT", Flintshire},
	{"WREXHAM", Wrexham},
	{"POWYS", Powys},
	{"BRECKNOCK", Powys},
	{"BRECON", Powys},
	{"RADNOR", Powys},
	{"MONTGOMERY", Powys},
	{"CEREDIGION", Ceredigion},
	{"CARDIGAN", Ceredigion},
	{"PEMBROKE", Pembrokeshire},
	{"PEMBS", Pembrokeshire},
	{"CARMARTHEN", Carmarthenshire},
	{"CARMS", Carmarthenshire},
	{"LLANELLI", Carmarthenshire},
	{"NEATH", NeathPortTalbot},
	{"PORT TALBOT", NeathPortTalbot},
	{"SWANSEA", Swansea},
	{"BRIDGEND", Bridgend},
	{"OGWR", Bridgend},
	{"TREDEGAR", BlaenauGwent},
	{"ABERTILLERY", BlaenauGwent},
	{"MERTHYR", MerthyrTydfil},
	{"CAERPHILLY", Caerphilly},
	{"YSTRAD MYNACH", Caerphilly},
	{"BLACKWOOD", Caerphilly},
	{"BARGOED", Caerphilly},
	{"TORFAEN", Torfaen},
	{"CWMBRAN", Torfaen},
	{"PONTYPOOL", Torfaen},
	{"BLAENAVON", Torfaen},
	{"MONMOUTH", Monmouthshire},
	{"ABERGAVENNY", Monmouthshire},
	{"CHEPSTOW", Monmouthshire},
	{"NEWPORT", Newport},
	{"CARDIFF", Cardiff},
	{"BARRY", ValeOfGlamorgan},
	{"PENARTH", ValeOfGlamorgan},
	{"VALE", ValeOfGlamorgan},
}

// postcodeRange lists the postcode districts an authority covers. Ranges
// overlap across authorities; lookups take the first match in table order.
type postcodeRange struct {
	county    County
	districts []string
}

var postcodeRanges = []postcodeRange{
	{Cardiff, []string{"CF3", "CF5", "CF10", "CF11", "CF14", "CF15", "CF23", "CF24"}},
	{ValeOfGlamorgan, []string{"CF5", "CF61", "CF62", "CF63", "CF64", "CF71"}},
	{Bridgend, []string{"CF31", "CF32", "CF33", "CF34", "CF35"}},
	{RhonddaCynonTaf, []string{"CF37", "CF38", "CF39", "CF40", "CF41", "CF42", "CF43", "CF44", "CF45", "CF72"}},
	{MerthyrTydfil, []string{"CF46", "CF47", "CF48"}},
	{Caerphilly, []string{"CF81", "CF82", "CF83", "NP11", "NP12", "NP24"}},
	{BlaenauGwent, []string{"NP13", "NP22", "NP23"}},
	{Torfaen, []string{"NP4", "NP44"}},
	{Monmouthshire, []string{"NP7", "NP15", "NP16", "NP25", "NP26"}},
	{Newport, []string{"NP10", "NP18", "NP19", "NP20"}},
	{Swansea, []string{"SA1", "SA2", "SA3", "SA4", "SA5", "SA6", "SA7"}},
	{NeathPortTalbot, []string{"SA8", "SA10", "SA11", "SA12", "SA13"}},
	{Carmarthenshire, []string{"SA14", "SA15", "SA16", "SA17", "SA18", "SA19", "SA20", "SA31", "SA32", "SA33", "SA34", "SA39", "SA40", "SA44", "SA48"}},
	{Ceredigion, []string{"SA38", "SA43", "SA44", "SA45", "SA46", "SA47", "SA48", "SY23", "SY24", "SY25"}},
	{Pembrokeshire, []string{"SA35", "SA36", "SA37", "SA41", "SA42", "SA61", "SA62", "SA63", "SA64", "SA65", "SA66", "SA67", "SA68", "SA69", "SA70", "SA71", "SA72", "SA73"}},
	{Powys, []string{"LD1", "LD2", "LD3", "LD4", "LD5", "LD6", "LD7", "LD8", "NP7", "NP8", "SA9", "SY5", "SY10", "SY15", "SY16", "SY17", "SY18", "SY19", "SY21", "SY22", "HR3", "HR5"}},
	{Wrexham, []string{"LL11", "LL12", "LL13", "LL14", "LL20", "SY13", "SY14"}},
	{Flintshire, []string{"CH4", "CH5", "CH6", "CH7", "CH8", "LL12"}},
	{Denbighshire, []string{"LL15", "LL16", "LL17", "LL18", "LL19", "LL20", "LL21"}},
	{Conwy, []string{"LL21", "LL22", "LL24", "LL25", "LL26", "LL27", "LL28", "LL29", "LL30", "LL31", "LL32", "LL34"}},
	{Gwynedd, []string{"LL23", "LL33", "LL35", "LL36", "LL37", "LL38", "LL39", "LL40", "LL41", "LL42", "LL43", "LL44", "LL45", "LL46", "LL47", "LL48", "LL49", "LL51", "LL52", "LL53", "LL54", "LL55", "LL56", "LL57", "SY20"}},
	{IsleOfAnglesey, []string{"LL58", "LL59", "LL60", "LL61", "LL62", "LL63", "LL64", "LL65", "LL66", "LL67", "LL68", "LL69", "LL70", "LL71", "LL72", "LL73", "LL74", "LL75", "LL76", "LL77", "LL78"}},
}
