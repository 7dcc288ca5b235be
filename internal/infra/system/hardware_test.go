package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const systemProfilerOutput = `Hardware:

    Hardware Overview:

      Model Name: MacBook Pro
      Model Identifier: MacBookPro18,3
      Chip: Apple M1 Pro
      Total Number of Cores: 10 (8 performance and 2 efficiency)
      Memory: 16 GB
      System Firmware Version: 10151.101.3
      Serial Number (system): C02FX1Y2Q6L4
      Hardware UUID: 5B2C1C3E-0000-0000-0000-000000000000
`

func TestParseSystemProfiler(t *testing.T) {
	hw := parseSystemProfiler(systemProfilerOutput)
	require.NotNil(t, hw.SerialNumber)
	require.NotNil(t, hw.Model)
	require.NotNil(t, hw.Manufacturer)
	assert.Equal(t, "C02FX1Y2Q6L4", *hw.SerialNumber)
	assert.Equal(t, "MacBook Pro", *hw.Model)
	assert.Equal(t, appleManufacturer, *hw.Manufacturer)
}

func TestParseSystemProfilerFallsBackToIdentifier(t *testing.T) {
	hw := parseSystemProfiler("      Model Identifier: Macmini9,1\n")
	require.NotNil(t, hw.Model)
	assert.Equal(t, "Macmini9,1", *hw.Model)
	assert.Nil(t, hw.SerialNumber)
}

func TestParseSystemProfilerEmpty(t *testing.T) {
	hw := parseSystemProfiler("")
	assert.Nil(t, hw.SerialNumber)
	assert.Nil(t, hw.Model)
	assert.Nil(t, hw.Manufacturer)
}

func TestParseWMICProduct(t *testing.T) {
	out := "\r\r\nNode,IdentifyingNumber,Name,Vendor\r\r\nDESKTOP-1,5CG1234XYZ,HP EliteBook 840 G8 Notebook PC,HP\r\r\n"

	hw := parseWMICProduct(out)
	require.NotNil(t, hw.SerialNumber)
	assert.Equal(t, "5CG1234XYZ", *hw.SerialNumber)
	assert.Equal(t, "HP EliteBook 840 G8 Notebook PC", *hw.Model)
	assert.Equal(t, "HP", *hw.Manufacturer)
}

func TestParseWMICProductPlaceholders(t *testing.T) {
	out := "Node,IdentifyingNumber,Name,Vendor\nPC,To Be Filled By O.E.M.,System Product Name,ASUS"

	hw := parseWMICProduct(out)
	assert.Nil(t, hw.SerialNumber)
	assert.Nil(t, hw.Model)
	require.NotNil(t, hw.Manufacturer)
	assert.Equal(t, "ASUS", *hw.Manufacturer)
}

func TestReadDMI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sys_vendor"), []byte("LENOVO\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "product_name"), []byte("20XW0055US\n"), 0o644))

	hw := readDMI(dir)
	assert.Nil(t, hw.SerialNumber)
	require.NotNil(t, hw.Manufacturer)
	assert.Equal(t, "LENOVO", *hw.Manufacturer)
	assert.Equal(t, "20XW0055US", *hw.Model)
}

func TestHardwareUnsupportedPlatform(t *testing.T) {
	p := newPlatform("plan9", &fakeRunner{}, &fakeSource{}, nil)

	hw := p.Hardware(t.Context())
	assert.Nil(t, hw.SerialNumber)
	assert.Nil(t, hw.Manufacturer)
	assert.Nil(t, hw.Model)
}
