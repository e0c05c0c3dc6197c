package offline

// wmiBrands maps world manufacturer identifiers to brand names
// Curated subset of the SAE WMI registry covering the volume makes seen
// in registration workflows; unknown WMIs fall through to empty
var wmiBrands = map[string]string{
	// North America
	"1HG": "HONDA",
	"2HG": "HONDA",
	"1HF": "HONDA",
	"5FN": "HONDA",
	"19X": "HONDA",
	"1FA": "FORD",
	"1FT": "FORD",
	"1FM": "FORD",
	"3FA": "FORD",
	"1G1": "CHEVROLET",
	"1GC": "CHEVROLET",
	"2G1": "CHEVROLET",
	"3GC": "CHEVROLET",
	"1G6": "CADILLAC",
	"1GM": "PONTIAC",
	"1GT": "GMC",
	"1C3": "CHRYSLER",
	"2C3": "CHRYSLER",
	"1C4": "JEEP",
	"1J4": "JEEP",
	"1B3": "DODGE",
	"2B3": "DODGE",
	"3D7": "DODGE",
	"1N4": "NISSAN",
	"1N6": "NISSAN",
	"4T1": "TOYOTA",
	"2T1": "TOYOTA",
	"5TD": "TOYOTA",
	"5TF": "TOYOTA",
	"5YJ": "TESLA",
	"7SA": "TESLA",
	"4S3": "SUBARU",
	"4S4": "SUBARU",
	"3VW": "VOLKSWAGEN",
	"1VW": "VOLKSWAGEN",
	"5NP": "HYUNDAI",
	"KM8": "HYUNDAI",
	"5XY": "KIA",
	"3KP": "KIA",

	// Asia
	"JHM": "HONDA",
	"JH4": "ACURA",
	"JT2": "TOYOTA",
	"JTD": "TOYOTA",
	"JTM": "TOYOTA",
	"JTH": "LEXUS",
	"JN1": "NISSAN",
	"JN8": "NISSAN",
	"JM1": "MAZDA",
	"JF1": "SUBARU",
	"JF2": "SUBARU",
	"JA3": "MITSUBISHI",
	"JA4": "MITSUBISHI",
	"JS1": "SUZUKI",
	"KMH": "HYUNDAI",
	"KNA": "KIA",
	"KND": "KIA",
	"KL4": "BUICK",

	// Europe
	"WAU": "AUDI",
	"TRU": "AUDI",
	"WBA": "BMW",
	"WBS": "BMW",
	"WBX": "BMW",
	"WDB": "MERCEDES-BENZ",
	"WDD": "MERCEDES-BENZ",
	"WDC": "MERCEDES-BENZ",
	"WVW": "VOLKSWAGEN",
	"WV1": "VOLKSWAGEN",
	"WV2": "VOLKSWAGEN",
	"WP0": "PORSCHE",
	"WP1": "PORSCHE",
	"W0L": "OPEL",
	"YV1": "VOLVO",
	"YV4": "VOLVO",
	"VF1": "RENAULT",
	"VF3": "PEUGEOT",
	"VF7": "CITROEN",
	"ZFA": "FIAT",
	"ZFF": "FERRARI",
	"ZAM": "MASERATI",
	"ZAR": "ALFA ROMEO",
	"SAJ": "JAGUAR",
	"SAL": "LAND ROVER",
	"SCC": "LOTUS",
	"SCF": "ASTON MARTIN",
	"VS6": "FORD",
}

// BrandForWMI returns the brand for a 3-character WMI, empty when unknown
func BrandForWMI(wmi string) string { return wmiBrands[wmi] }
