package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/charlesren/netcli/driver"
)

func TestDeviceLookup(t *testing.T) {
	cfg := &Config{Devices: []Device{
		{Name: "core-sw-01", Host: "10.0.0.1", Platform: driver.PlatformCiscoIOS},
		{Name: "agg-sw-02", Host: "10.0.0.2", Platform: driver.PlatformHuaweiVRP},
	}}

	d, err := cfg.Device("agg-sw-02")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", d.Host)

	_, err = cfg.Device("missing")
	assert.Error(t, err)

	// empty name is ambiguous with more than one device
	_, err = cfg.Device("")
	assert.Error(t, err)

	single := &Config{Devices: []Device{{Name: "only", Host: "10.0.0.9"}}}
	d, err = single.Device("")
	require.NoError(t, err)
	assert.Equal(t, "only", d.Name)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "enable_password", normalizeHeader(" Enable Password "))
	assert.Equal(t, "host", normalizeHeader("Host"))
}

func writeInventory(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadInventoryXLSX(t *testing.T) {
	path := writeInventory(t, [][]interface{}{
		{"Name", "Host", "Port", "Platform", "Username", "Password", "Enable Password"},
		{"core-sw-01", "10.0.0.1", "2222", "cisco_ios", "ops", "pw", "enpw"},
		{"", "10.0.0.2", "", "huawei_vrp", "ops", "pw", ""},
	})

	devices, err := LoadInventoryXLSX(path, "Sheet1")
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "core-sw-01", devices[0].Name)
	assert.Equal(t, 2222, devices[0].Port)
	assert.Equal(t, driver.PlatformCiscoIOS, devices[0].Platform)
	assert.Equal(t, "enpw", devices[0].EnablePassword)

	// name defaults to host, port defaults to 22
	assert.Equal(t, "10.0.0.2", devices[1].Name)
	assert.Equal(t, 22, devices[1].Port)
}

func TestLoadInventoryXLSXUnknownPlatform(t *testing.T) {
	path := writeInventory(t, [][]interface{}{
		{"Host", "Platform", "Username"},
		{"10.0.0.1", "junos", "ops"},
	})
	_, err := LoadInventoryXLSX(path, "Sheet1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown platform")
}

func TestLoadInventoryXLSXMissingColumn(t *testing.T) {
	path := writeInventory(t, [][]interface{}{
		{"Host", "Username"},
		{"10.0.0.1", "ops"},
	})
	_, err := LoadInventoryXLSX(path, "Sheet1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}
