package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t Target) map[string]string {
	m := make(map[string]string, t.Len())
	for _, k := range t.Keys() {
		m[k], _ = t.Get(k)
	}
	return m
}

func TestParseTargets_Basic(t *testing.T) {
	got := ParseTargets("id: 1\nName: Foo\n----------\nid: 2\nName: Bar\n")
	require.Len(t, got, 2)
	assert.Equal(t, map[string]string{"id": "1", "Name": "Foo"}, fields(got[0]))
	assert.Equal(t, map[string]string{"id": "2", "Name": "Bar"}, fields(got[1]))
}

func TestParseTargets_TrailingSeparator(t *testing.T) {
	got := ParseTargets("id: 1\nName: Foo\n----------\nid: 2\nName: Bar\n----------\n")
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[1].ID())
	assert.Equal(t, 0, got[2].Len())
}

func TestParseTargets_Empty(t *testing.T) {
	got := ParseTargets("")
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Len())
}

func TestParseTargets_RealListing(t *testing.T) {
	raw := `Available Android targets:
----------
id: 1 or "android-8"
     Name: Android 2.2
     Type: Platform
     API level: 8
     Revision: 3
     Skins: HVGA, QVGA, WQVGA400, WQVGA432, WVGA800 (default), WVGA854
 Tag/ABIs : default/armeabi
----------
id: 2 or "Google Inc.:Google APIs:8"
     Name: Google APIs
     Type: Add-On
     Vendor: Google Inc.
     Revision: 2
     Description: Android + Google APIs
     Based on Android 2.2 (API level 8)
     Libraries:
      * com.google.android.maps (maps.jar)
          API for Google Maps
     Skins: WVGA854, WQVGA400, HVGA, WQVGA432, WVGA800 (default), QVGA
`
	got := ParseTargets(raw)
	require.Len(t, got, 3)

	// header record never saw an id
	assert.Equal(t, 0, got[0].Len())

	android := got[1]
	assert.Equal(t, "1", android.ID())
	assert.Equal(t, "Android 2.2", android.Name())
	api, ok := android.Get(KeyAPILevel)
	require.True(t, ok)
	assert.Equal(t, "8", api)
	tag, _ := android.Get("Tag/ABIs")
	assert.Equal(t, "default/armeabi", tag)
	assert.Equal(t, []string{"id", "Name", "Type", "API level", "Revision", "Skins", "Tag/ABIs"}, android.Keys())
	assert.Equal(t, "Android 2.2 (API Level 8)", android.Label())

	addon := got[2]
	assert.Equal(t, "2", addon.ID())
	vendor, _ := addon.Get(KeyVendor)
	assert.Equal(t, "Google Inc.", vendor)
	// lines without a colon are dropped
	assert.False(t, addon.Has("Based on Android 2.2 (API level 8)"))
	libs, ok := addon.Get("Libraries")
	require.True(t, ok)
	assert.Equal(t, "", libs)
	assert.Equal(t, "Google APIs", addon.Label())

	valid := ValidTargets(got)
	require.Len(t, valid, 2)
	assert.Equal(t, "1", valid[0].ID())
}

func TestParseTargets_LinesBeforeIDIgnored(t *testing.T) {
	got := ParseTargets("Name: Orphan\nid: 7\nName: Real\n")
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"id": "7", "Name": "Real"}, fields(got[0]))
}

func TestParseTargets_OverwriteKeepsOrder(t *testing.T) {
	got := ParseTargets("id: 3\nName: A\nType: Platform\nName: B\n")
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name())
	assert.Equal(t, []string{"id", "Name", "Type"}, got[0].Keys())
}

func TestParseTargets_BareIDLine(t *testing.T) {
	got := ParseTargets("id:\nName: NoID\n")
	require.Len(t, got, 1)
	assert.True(t, got[0].Has(KeyID))
	assert.Equal(t, "", got[0].ID())
	assert.Equal(t, "NoID", got[0].Name())
}

func TestParseTargets_Idempotent(t *testing.T) {
	raw := "id: 1\nName: Foo\n----------\nid: 2\n"
	assert.Equal(t, ParseTargets(raw), ParseTargets(raw))
}

func TestParseDevices(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "emulator and device",
			raw:  "List of devices attached\nemulator-5554\tdevice\n0123ABC\tdevice\n",
			want: []string{"emulator-5554", "0123ABC"},
		},
		{
			name: "header only",
			raw:  "header\n",
			want: nil,
		},
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "no tab skipped",
			raw:  "List of devices attached\n* daemon started successfully *\nABC\toffline\n\n",
			want: []string{"ABC"},
		},
		{
			name: "crlf and padding",
			raw:  "List of devices attached\r\n  emulator-5556 \tdevice\r\n",
			want: []string{"emulator-5556"},
		},
		{
			name: "first line dropped even if it is a device",
			raw:  "emulator-5554\tdevice\nemulator-5556\tdevice\n",
			want: []string{"emulator-5556"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDevices(tt.raw))
		})
	}
}
