package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "lowercase word", input: "nfs", want: "Nfs"},
		{name: "uppercase word", input: "NDMP", want: "Ndmp"},
		{name: "hyphenated", input: "nfs-exports", want: "NfsExports"},
		{name: "snake case", input: "snapshot_aliases", want: "SnapshotAliases"},
		{name: "placeholder", input: "<LNN>", want: "Lnn"},
		{name: "starred placeholder", input: "<NFS_ALIAS_ID*>", want: "NfsAliasId"},
		{name: "leading digit", input: "2fa_keys", want: "2FaKeys"},
		{name: "digits inside", input: "ipv6", want: "Ipv6"},
		{name: "mixed case", input: "fcPorts", want: "Fcports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.input))
		})
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		postfix  string
		want     string
		wantUsed bool
	}{
		{name: "already singular", input: "FirmwareStatus", postfix: "Item", want: "FirmwareStatusItem", wantUsed: true},
		{name: "iases", input: "Aliases", postfix: "Item", want: "Alias"},
		{name: "plain s", input: "Phases", postfix: "Item", want: "Phase"},
		{name: "ies", input: "Policies", postfix: "Item", want: "Policy"},
		{name: "ches", input: "Patches", postfix: "Item", want: "Patch"},
		{name: "double s", input: "Address", postfix: "Item", want: "AddressItem", wantUsed: true},
		{name: "tus", input: "Status", postfix: "Item", want: "StatusItem", wantUsed: true},
		{name: "acronym ads", input: "Ads", postfix: "Item", want: "AdsItem", wantUsed: true},
		{name: "acronym nis", input: "Nis", postfix: "", want: "Nis", wantUsed: true},
		{name: "single letter", input: "s", postfix: "Item", want: "sItem", wantUsed: true},
		{name: "empty postfix", input: "Settings", postfix: "", want: "Setting"},
		{name: "underscores removed", input: "Export_rules", postfix: "Item", want: "Exportrule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, used := Singular(tt.input, tt.postfix)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUsed, used)
		})
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		api      string
		ns       string
		obj      string
	}{
		{name: "single segment", segments: []string{"cluster"}, api: "Cluster", ns: "", obj: "Cluster"},
		{name: "two segments", segments: []string{"quota", "quotas"}, api: "Quota", ns: "Quota", obj: "Quotas"},
		{name: "three segments", segments: []string{"protocols", "nfs", "exports"}, api: "Protocols", ns: "Nfs", obj: "Exports"},
		{
			name:     "lnn identifier",
			segments: []string{"cluster", "nodes", "<LNN>", "drives"},
			api:      "ClusterNodes", ns: "Node", obj: "Drives",
		},
		{
			name:     "identifier after acronym",
			segments: []string{"auth", "providers", "ads", "<ID>", "domains"},
			api:      "AuthProviders", ns: "Ads", obj: "ProviderDomains",
		},
		{
			name:     "identifier without singular predecessor",
			segments: []string{"a", "b", "c", "<ID>", "d"},
			api:      "AB", ns: "C", obj: "ItemD",
		},
		{name: "empty", segments: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, ns, obj := Names(tt.segments)
			assert.Equal(t, tt.api, api)
			assert.Equal(t, tt.ns, ns)
			assert.Equal(t, tt.obj, obj)
		})
	}
}

func TestSplit(t *testing.T) {
	version, segs := Split("/3/protocols/nfs/exports")
	assert.Equal(t, "3", version)
	assert.Equal(t, []string{"protocols", "nfs", "exports"}, segs)

	version, segs = Split("/3")
	assert.Equal(t, "3", version)
	assert.Empty(t, segs)

	version, segs = Split("")
	assert.Empty(t, version)
	assert.Nil(t, segs)
}

func TestParent(t *testing.T) {
	assert.Equal(t, "/3/protocols/nfs", Parent("/3/protocols/nfs/exports"))
	assert.Equal(t, "", Parent("/3"))
	assert.Equal(t, "", Parent("exports"))
}

func TestPathParams(t *testing.T) {
	got := PathParams("/3/cluster/nodes/<LNN>/drives/<LNNDRIVEID>")
	assert.Equal(t, []PathParam{
		{Name: "Lnn", Type: "integer"},
		{Name: "Lnndriveid", Type: "string"},
	}, got)

	assert.Nil(t, PathParams("/3/cluster/config"))
}

func TestSwaggerPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "/3/cluster/nodes/<LNN>/drives", want: "/3/cluster/nodes/{Lnn}/drives"},
		{input: "/3/protocols/nfs/aliases/<NFS_ALIAS_ID*>", want: "/3/protocols/nfs/aliases/{NfsAliasId}"},
		{input: "/3/cluster/config", want: "/3/cluster/config"},
		{input: "3/zones/<ZONE>", want: "/3/zones/{Zone}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SwaggerPath(tt.input))
		})
	}
}

func TestOperationID(t *testing.T) {
	assert.Equal(t, "createNfsExport", OperationID("create", "Nfs", "Export"))
	assert.Equal(t, "getNfsAliasById", OperationID("get", "Nfs", "AliasId"))
	assert.Equal(t, "listClusterNodes", OperationID("list", "", "ClusterNodes"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Create", Capitalize("create"))
	assert.Equal(t, "", Capitalize(""))
}
