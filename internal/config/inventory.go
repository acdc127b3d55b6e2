package config

import (
	"fmt"
	"strconv"

	"github.com/charlesren/netcli/driver"
	"github.com/charlesren/ylog"
	"github.com/xuri/excelize/v2"
)

// LoadInventoryXLSX 从运维资产表导入设备清单。第一行为表头，按列名
// 取值：name/host/port/platform/username/password/enable_password。
func LoadInventoryXLSX(path, sheet string) ([]Device, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[normalizeHeader(h)] = i
	}
	for _, required := range []string{"host", "platform", "username"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("sheet %s: missing column %q", sheet, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	catalog := driver.Default()
	devices := make([]Device, 0, len(rows)-1)
	for n, row := range rows[1:] {
		host := cell(row, "host")
		if host == "" {
			continue
		}
		d := Device{
			Name:           cell(row, "name"),
			Host:           host,
			Platform:       driver.Platform(cell(row, "platform")),
			Username:       cell(row, "username"),
			Password:       cell(row, "password"),
			EnablePassword: cell(row, "enable_password"),
			Port:           22,
		}
		if p := cell(row, "port"); p != "" {
			port, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: bad port %q", sheet, n+2, p)
			}
			d.Port = port
		}
		if d.Name == "" {
			d.Name = host
		}
		if _, ok := catalog.Lookup(d.Platform); !ok {
			return nil, fmt.Errorf("sheet %s row %d: unknown platform %q", sheet, n+2, d.Platform)
		}
		devices = append(devices, d)
	}

	ylog.Infof("Config", "inventory %s: %d devices", path, len(devices))
	return devices, nil
}
