// Package catalog defines the catalog record type and reads and writes the
// CSV files around the cleaning pipeline: the raw catalog, the two variable
// lookup tables, and the cleaned output.
package catalog

// Input column names.
const (
	ColFilename      = "filename"
	ColVersion       = "version"
	ColLocalFile     = "local_file"
	ColVariable      = "variable"
	ColModel         = "model"
	ColExperiment    = "experiment"
	ColDomain        = "domain"
	ColInstitute     = "institute"
	ColEnsemble      = "ensemble"
	ColTimeFrequency = "time_frequency"
	ColTime          = "time"
	ColSize          = "size"
	ColChecksumType  = "checksum_type"
	ColChecksum      = "checksum"
	ColProject       = "project"
	ColRealm         = "realm"
)

// Derived and joined column names.
const (
	ColStandardName    = "variable_standard_name"
	ColLongName        = "variable_long_name"
	ColDimensions      = "dimensions"
	ColSchoonerPath    = "OSCER_schooner_path"
	ColClimatedataPath = "SCCASC_climatedata_path"
)

// RequiredColumns lists the catalog columns a Record is built from.
var RequiredColumns = []string{
	ColFilename, ColVersion, ColLocalFile, ColVariable, ColModel,
	ColExperiment, ColDomain, ColInstitute, ColEnsemble, ColTimeFrequency,
	ColTime, ColSize, ColChecksumType, ColChecksum, ColProject, ColRealm,
}

// OutputColumns is the fixed, ordered projection of the cleaned catalog.
var OutputColumns = []string{
	ColVariable, ColStandardName, ColLongName, ColInstitute, ColModel,
	ColDomain, ColDimensions, ColProject, ColRealm, ColEnsemble,
	ColExperiment, ColTimeFrequency, ColTime, ColVersion, ColFilename,
	ColSize, ColSchoonerPath, ColClimatedataPath, ColChecksumType, ColChecksum,
}

// Record is one catalog row. Only Version, LocalFile and the derived fields
// are ever modified after loading.
type Record struct {
	Line int // 1-based CSV line, for diagnostics.

	Filename      string
	Version       string
	LocalFile     string
	Variable      string
	Model         string
	Experiment    string
	Domain        string
	Institute     string
	Ensemble      string
	TimeFrequency string
	Time          string
	Size          string
	ChecksumType  string
	Checksum      string
	Project       string
	Realm         string

	// Derived during processing.
	ClimatedataPath      string
	SchoonerPath         string
	FileExists           bool
	BegYear              int
	VariableStandardName string
	VariableLongName     string
	Dimensions           string
}

// Field returns the value of an output column. Unknown names yield "".
func (r *Record) Field(col string) string {
	switch col {
	case ColFilename:
		return r.Filename
	case ColVersion:
		return r.Version
	case ColLocalFile:
		return r.LocalFile
	case ColVariable:
		return r.Variable
	case ColModel:
		return r.Model
	case ColExperiment:
		return r.Experiment
	case ColDomain:
		return r.Domain
	case ColInstitute:
		return r.Institute
	case ColEnsemble:
		return r.Ensemble
	case ColTimeFrequency:
		return r.TimeFrequency
	case ColTime:
		return r.Time
	case ColSize:
		return r.Size
	case ColChecksumType:
		return r.ChecksumType
	case ColChecksum:
		return r.Checksum
	case ColProject:
		return r.Project
	case ColRealm:
		return r.Realm
	case ColStandardName:
		return r.VariableStandardName
	case ColLongName:
		return r.VariableLongName
	case ColDimensions:
		return r.Dimensions
	case ColSchoonerPath:
		return r.SchoonerPath
	case ColClimatedataPath:
		return r.ClimatedataPath
	}
	return ""
}

// OutputRow returns the OutputColumns values of r in order.
func (r *Record) OutputRow() []string {
	row := make([]string, len(OutputColumns))
	for i, col := range OutputColumns {
		row[i] = r.Field(col)
	}
	return row
}
