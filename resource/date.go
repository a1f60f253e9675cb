package resource

// ResourceDate is either a single date value or a start/end range, plus a
// DataCite dateType and optional free-text dateInformation.
type ResourceDate struct {
	Value       string // set for single-value dates
	StartValue  string // set for ranges
	EndValue    string
	Type        string
	Information string
}

// IsRange reports whether the date carries range bounds instead of a
// single value.
func (d ResourceDate) IsRange() bool {
	return d.StartValue != "" || d.EndValue != ""
}

// String renders the date the way DataCite expects: the bare value, or
// "start/end" for ranges. Open-ended ranges keep the slash.
func (d ResourceDate) String() string {
	if d.IsRange() {
		return d.StartValue + "/" + d.EndValue
	}
	return d.Value
}
