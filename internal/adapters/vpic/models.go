package vpic

// FailureKind classifies why a fetch produced no usable data
type FailureKind string

// Failure kinds reported by Fetch
const (
	KindTimeout      FailureKind = "timeout"
	KindRequestError FailureKind = "request_error"
	KindHTTPError    FailureKind = "http_error"
	KindBadResponse  FailureKind = "bad_response"
	KindNoData       FailureKind = "no_data"
	KindCircuitOpen  FailureKind = "circuit_open"
	// KindDisabled means the caller opted out of remote lookups entirely
	KindDisabled FailureKind = "disabled"
)

// Fields carries the vehicle attributes a usable upstream record yields
type Fields struct {
	Brand        string
	Model        string
	Year         string
	Trim         string
	Engine       string
	VehicleType  string
	BodyClass    string
	PlantCountry string
	CurbWeight   string
	GVWR         string
}

// Outcome is the result of one logical fetch, success or classified failure
// Status and the upstream error fields are diagnostics carried through to
// the fallback path for traceability
type Outcome struct {
	OK     bool
	Fields Fields

	Kind      FailureKind
	Status    int
	Detail    string
	ErrorText string
	ErrorCode string
}

func success(f Fields, errText, errCode string) Outcome {
	return Outcome{OK: true, Fields: f, ErrorText: errText, ErrorCode: errCode}
}

func failure(kind FailureKind, status int, detail string) Outcome {
	return Outcome{Kind: kind, Status: status, Detail: detail}
}

// envelope mirrors the upstream wire shape: a Results array of flat
// string-typed records
type envelope struct {
	Results []record `json:"Results"`
}

// record is the typed first-result projection. The upstream schema has
// drifted across deployments, so optional attributes carry every accepted
// alias as its own field and firstNonEmpty picks the survivor
type record struct {
	Make      string `json:"Make"`
	Model     string `json:"Model"`
	ModelYear string `json:"ModelYear"`

	Trim   string `json:"Trim"`
	Series string `json:"Series"`

	EngineModel         string `json:"EngineModel"`
	EngineConfiguration string `json:"EngineConfiguration"`

	VehicleType  string `json:"VehicleType"`
	BodyClass    string `json:"BodyClass"`
	PlantCountry string `json:"PlantCountry"`

	CurbWeight    string `json:"CurbWeight"`
	CurbWt        string `json:"CurbWt"`
	CurbWeightAlt string `json:"Curb Weight"`

	GVWR     string `json:"GVWR"`
	GVWRFrom string `json:"GVWRFrom"`
	GVWRTo   string `json:"GVWRTo"`

	ErrorText string `json:"ErrorText"`
	ErrorCode string `json:"ErrorCode"`
}

func (r record) fields() Fields {
	return Fields{
		Brand:        r.Make,
		Model:        r.Model,
		Year:         r.ModelYear,
		Trim:         firstNonEmpty(r.Trim, r.Series),
		Engine:       firstNonEmpty(r.EngineModel, r.EngineConfiguration),
		VehicleType:  r.VehicleType,
		BodyClass:    r.BodyClass,
		PlantCountry: r.PlantCountry,
		CurbWeight:   firstNonEmpty(r.CurbWeight, r.CurbWt, r.CurbWeightAlt),
		GVWR:         firstNonEmpty(r.GVWR, r.GVWRFrom, r.GVWRTo),
	}
}

// empty reports whether the record decodes nothing usable
// (absent Results is treated identically to an empty first record)
func (r record) empty() bool {
	return r.Make == "" && r.Model == "" && r.ModelYear == ""
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if x != "" {
			return x
		}
	}
	return ""
}
