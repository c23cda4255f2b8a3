package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `filename,version,local_file,variable,model,experiment,domain,institute,ensemble,ensemble,time_frequency,time,size,checksum_type,checksum,project,realm,extra
tas_Amon_CCSM4_historical_r1i1p1_185001-200512.nc,v20120101,/data/cmip5/output1/NCAR/CCSM4/historical/mon/atmos/Amon/r1i1p1/v20120101/tas/tas_Amon_CCSM4_historical_r1i1p1_185001-200512.nc,tas,CCSM4,historical,,NCAR,r1i1p1,r9i9p9,mon,185001-200512,1024,SHA256,abc,CMIP5,atmos,ignored
pr_day_CCSM4_rcp85_r1i1p1_20060101-21001231.nc,1,/data/cmip5/pr/1/pr_day.nc,pr,CCSM4,rcp85,,NCAR,r1i1p1,r1i1p1,day,20060101-21001231,2048,SHA256,def,CMIP5,atmos,
`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, 2, r.Line)
	assert.Equal(t, "tas_Amon_CCSM4_historical_r1i1p1_185001-200512.nc", r.Filename)
	assert.Equal(t, "v20120101", r.Version)
	assert.Equal(t, "tas", r.Variable)
	assert.Equal(t, "r1i1p1", r.Ensemble, "first ensemble column wins")
	assert.Equal(t, "185001-200512", r.Time)
	assert.Equal(t, "atmos", r.Realm)

	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, "1", records[1].Version)
}

func TestRead_BOMHeader(t *testing.T) {
	records, err := Read(strings.NewReader("\ufeff" + sampleCatalog))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("filename,version\nx,v1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "local_file")
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestRead_HeaderOnly(t *testing.T) {
	records, err := Read(strings.NewReader(strings.SplitN(sampleCatalog, "\n", 2)[0] + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTable(t *testing.T) {
	data := "variable,variable_standard_name,variable_long_name\n" +
		"tas,air_temperature,Near-Surface Air Temperature\n" +
		"pr,precipitation_flux,Precipitation\n" +
		"tas,duplicate,Duplicate\n"
	tbl, err := ReadTable(strings.NewReader(data), "names", ColVariable, NameColumns...)
	require.NoError(t, err)

	v, ok := tbl.Lookup("tas")
	require.True(t, ok)
	assert.Equal(t, []string{"air_temperature", "Near-Surface Air Temperature"}, v)
	assert.Equal(t, []string{"tas"}, tbl.Duplicates)

	_, ok = tbl.Lookup("huss")
	assert.False(t, ok)
}

func TestReadTable_MissingColumn(t *testing.T) {
	_, err := ReadTable(strings.NewReader("variable,units\ntas,K\n"), "dims", ColVariable, DimensionColumns...)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadNamesAndDimensions(t *testing.T) {
	dir := t.TempDir()
	names := filepath.Join(dir, "names.csv")
	dims := filepath.Join(dir, "dims.csv")
	require.NoError(t, os.WriteFile(names, []byte("variable,variable_standard_name,variable_long_name\ntas,air_temperature,Air\n"), 0o644))
	require.NoError(t, os.WriteFile(dims, []byte("variable,dimensions\ntas,longitude latitude time\n"), 0o644))

	nt, err := LoadNames(names)
	require.NoError(t, err)
	dt, err := LoadDimensions(dims)
	require.NoError(t, err)

	v, _ := nt.Lookup("tas")
	assert.Equal(t, "air_temperature", v[0])
	d, _ := dt.Lookup("tas")
	assert.Equal(t, []string{"longitude latitude time"}, d)
}

func TestOutputRow(t *testing.T) {
	r := &Record{
		Variable:             "tas",
		VariableStandardName: "air_temperature",
		Filename:             "f.nc",
		SchoonerPath:         "/condo/climatedata3/f.nc",
		ClimatedataPath:      "/data/f.nc",
		Checksum:             "abc",
	}
	row := r.OutputRow()
	require.Len(t, row, len(OutputColumns))
	assert.Equal(t, "tas", row[0])
	assert.Equal(t, "air_temperature", row[1])
	assert.Equal(t, "f.nc", row[14])
	assert.Equal(t, "/condo/climatedata3/f.nc", row[16])
	assert.Equal(t, "/data/f.nc", row[17])
	assert.Equal(t, "abc", row[19])
}

func TestOutputColumns_Order(t *testing.T) {
	want := "variable,variable_standard_name,variable_long_name,institute,model,domain,dimensions,project,realm,ensemble,experiment,time_frequency,time,version,filename,size,OSCER_schooner_path,SCCASC_climatedata_path,checksum_type,checksum"
	assert.Equal(t, want, strings.Join(OutputColumns, ","))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	recs := []*Record{
		{Variable: "tas", Filename: "a.nc", Time: "185001-200512"},
		{Variable: "pr", Filename: "b,with,commas.nc"},
	}
	require.NoError(t, Write(path, recs))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, OutputColumns, rows[0])
	assert.Equal(t, "b,with,commas.nc", rows[2][14])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWrite_MissingDirectory(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	assert.Error(t, err)
}

func TestWriteTo_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, nil))
	assert.Equal(t, strings.Join(OutputColumns, ",")+"\n", buf.String())
}
