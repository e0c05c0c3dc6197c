package service

import (
	"strconv"

	"vindex/internal/adapters/vpic"
	"vindex/internal/core/offline"
	"vindex/internal/core/vin"
	dom "vindex/internal/services/decode/domain"
)

// noteFallback flags that the result is a partial inference from the VIN
// alone, not an authoritative decode
const noteFallback = "inferred offline from WMI and model-year tables; verify before relying on it"

// fromRemote maps a successful upstream outcome onto the canonical result
func (s *Service) fromRemote(v string, out vpic.Outcome) dom.Result {
	f := out.Fields
	return dom.Result{
		Source:          dom.SourceRemote,
		Brand:           f.Brand,
		Model:           f.Model,
		Year:            f.Year,
		Trim:            f.Trim,
		Engine:          f.Engine,
		VehicleType:     f.VehicleType,
		BodyClass:       f.BodyClass,
		PlantCountry:    f.PlantCountry,
		CurbWeight:      f.CurbWeight,
		GVWR:            f.GVWR,
		WMI:             vin.WMI(v),
		RemoteErrorText: out.ErrorText,
		RemoteErrorCode: out.ErrorCode,
		Version:         dom.Version,
	}
}

// fromFallback runs the offline decoder after a classified remote failure
// The remote diagnostics ride along either way so operators can see what
// drove the degradation
func (s *Service) fromFallback(v string, out vpic.Outcome) dom.Result {
	res := dom.Result{
		WMI:             vin.WMI(v),
		RemoteStatus:    out.Status,
		RemoteErrorText: out.ErrorText,
		RemoteErrorCode: remoteErrorCode(out),
		Version:         dom.Version,
	}

	inf := offline.Decode(v)
	if !inf.Sufficient() {
		res.Source = dom.SourceError
		res.Note = "offline tables know neither the manufacturer nor the model year"
		return res
	}

	res.Source = dom.SourceOfflineFallback
	res.Brand = inf.Brand
	if inf.Year != 0 {
		res.Year = strconv.Itoa(inf.Year)
	}
	res.YearCandidates = inf.YearCandidates
	res.Note = noteFallback
	return res
}

// remoteErrorCode prefers the upstream error code and falls back to the
// client's failure classification
func remoteErrorCode(out vpic.Outcome) string {
	if out.ErrorCode != "" {
		return out.ErrorCode
	}
	return string(out.Kind)
}
