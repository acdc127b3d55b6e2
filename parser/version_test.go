package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlesren/netcli/driver"
)

func TestParseVersionCiscoIOS(t *testing.T) {
	output := `Cisco IOS Software, C2960 Software (C2960-LANBASEK9-M), Version 15.0(2)SE11, RELEASE SOFTWARE (fc3)
Technical Support: http://www.cisco.com/techsupport
Copyright (c) 1986-2017 by Cisco Systems, Inc.

Switch uptime is 2 years, 33 weeks, 4 days, 1 hour, 39 minutes
System image file is "flash:c2960-lanbasek9-mz.150-2.SE11.bin"

cisco WS-C2960-24TT-L (PowerPC405) processor (revision B0) with 65536K bytes of memory.

Model number                    : WS-C2960-24TT-L
System serial number            : FOC1010X0XX`

	v, err := ParseVersion(driver.PlatformCiscoIOS, output)
	require.NoError(t, err)
	assert.Equal(t, "15.0(2)SE11", v.OSVersion)
	assert.Equal(t, "WS-C2960-24TT-L", v.Model)
	assert.Equal(t, "2 years, 33 weeks, 4 days, 1 hour, 39 minutes", v.Uptime)
}

func TestParseVersionCiscoIOSModelFromProcessorLine(t *testing.T) {
	output := `Cisco IOS Software, 3700 Software (C3725-ADVENTERPRISEK9-M), Version 12.4(15)T14, RELEASE SOFTWARE (fc2)

Router uptime is 1 hour, 2 minutes

cisco 3725 (R7000) processor (revision 0.1) with 249856K/12288K bytes of memory.`

	v, err := ParseVersion(driver.PlatformCiscoIOS, output)
	require.NoError(t, err)
	assert.Equal(t, "12.4(15)T14", v.OSVersion)
	assert.Equal(t, "3725", v.Model)
}

func TestParseVersionHuaweiVRP(t *testing.T) {
	output := `Huawei Versatile Routing Platform Software
VRP (R) software, Version 8.180 (CE6850EI V200R005C10SPC800)
Copyright (C) 2012-2018 Huawei Technologies Co., Ltd.
HUAWEI CE6850-48S4Q-EI uptime is 147 days, 6 hours, 57 minutes`

	v, err := ParseVersion(driver.PlatformHuaweiVRP, output)
	require.NoError(t, err)
	assert.Equal(t, "8.180 (CE6850EI V200R005C10SPC800)", v.OSVersion)
	assert.Equal(t, "CE6850-48S4Q-EI", v.Model)
	assert.Equal(t, "147 days, 6 hours, 57 minutes", v.Uptime)
}

func TestParseVersionH3CComware(t *testing.T) {
	output := `H3C Comware Software, Version 7.1.070, Release 6127P20
Copyright (c) 2004-2019 New H3C Technologies Co., Ltd. All rights reserved.
H3C S6520X-54QC-EI uptime is 21 weeks, 2 days, 4 hours, 55 minutes`

	v, err := ParseVersion(driver.PlatformH3CComware, output)
	require.NoError(t, err)
	assert.Equal(t, "7.1.070, Release 6127P20", v.OSVersion)
	assert.Equal(t, "S6520X-54QC-EI", v.Model)
}

func TestParseVersionRuijieOS(t *testing.T) {
	output := `System description      : Ruijie Full 10G Routing Switch(S6120-20XS4VS2QXS) By Ruijie Networks
System start time       : 2024-01-02 10:20:30
System uptime           : 30:01:23:10
System hardware version : 1.00
System software version : S6120_RGOS 11.4(1)B70P20`

	v, err := ParseVersion(driver.PlatformRuijieOS, output)
	require.NoError(t, err)
	assert.Equal(t, "S6120_RGOS 11.4(1)B70P20", v.OSVersion)
	assert.Equal(t, "S6120-20XS4VS2QXS", v.Model)
	assert.Equal(t, "30:01:23:10", v.Uptime)
}

func TestParseVersionArubaOS(t *testing.T) {
	output := `ArubaOS (MODEL: Aruba7010), Version 8.6.0.4
Website: http://www.arubanetworks.com
(c) Copyright 2020 Hewlett Packard Enterprise Development LP.

Switch uptime is 100 days 3 hours 20 minutes 10 seconds`

	v, err := ParseVersion(driver.PlatformArubaOS, output)
	require.NoError(t, err)
	assert.Equal(t, "8.6.0.4", v.OSVersion)
	assert.Equal(t, "Aruba7010", v.Model)
	assert.Equal(t, "100 days 3 hours 20 minutes 10 seconds", v.Uptime)
}

func TestParseVersionMalformed(t *testing.T) {
	_, err := ParseVersion(driver.PlatformCiscoIOS, "Connection refused by remote host")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "version", perr.Family)
	assert.Equal(t, driver.PlatformCiscoIOS, perr.Platform)
}

func TestParseVersionUnknownPlatform(t *testing.T) {
	_, err := ParseVersion(driver.Platform("junos"), "anything")
	require.Error(t, err)
}
