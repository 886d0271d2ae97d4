package resolver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isilon/isilon-sdk/internal/severity"
	"github.com/Isilon/isilon-sdk/oaserrors"
)

func TestResolveVersionSelection(t *testing.T) {
	res := Resolve([]string{"/3/x", "/10/x", "/9/x"}, nil)
	assert.Equal(t, []Pair{{Base: "/10/x"}}, res.Pairs)
	assert.Empty(t, res.Errors)
}

func TestResolvePairing(t *testing.T) {
	tests := []struct {
		name string
		uris []string
		want []Pair
	}{
		{
			name: "base and item",
			uris: []string{"/1/quota/quotas", "/1/quota/quotas/<QID>"},
			want: []Pair{{Base: "/1/quota/quotas", Item: "/1/quota/quotas/<QID>"}},
		},
		{
			name: "item without base",
			uris: []string{"/1/quota/quotas/<QID>"},
			want: []Pair{{Item: "/1/quota/quotas/<QID>"}},
		},
		{
			name: "base and item at different versions",
			uris: []string{
				"/1/protocols/nfs/exports",
				"/3/protocols/nfs/exports",
				"/1/protocols/nfs/exports/<EID>",
				"/2/protocols/nfs/exports/<EID>",
			},
			want: []Pair{{Base: "/3/protocols/nfs/exports", Item: "/2/protocols/nfs/exports/<EID>"}},
		},
		{
			name: "each base pairs once",
			uris: []string{
				"/3/zones",
				"/3/zones/<ZONE>",
				"/3/zones/<ZID>",
			},
			want: []Pair{
				{Base: "/3/zones", Item: "/3/zones/<ZONE>"},
				{Item: "/3/zones/<ZID>"},
			},
		},
		{
			name: "nested resources",
			uris: []string{
				"/3/cluster/nodes",
				"/3/cluster/nodes/<LNN>",
				"/3/cluster/nodes/<LNN>/drives",
				"/3/cluster/nodes/<LNN>/drives/<DRIVEID>",
				"/3/cluster/config",
			},
			want: []Pair{
				{Base: "/3/cluster/config"},
				{Base: "/3/cluster/nodes", Item: "/3/cluster/nodes/<LNN>"},
				{Base: "/3/cluster/nodes/<LNN>/drives", Item: "/3/cluster/nodes/<LNN>/drives/<DRIVEID>"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.uris, nil)
			if diff := cmp.Diff(tt.want, res.Pairs); diff != "" {
				t.Errorf("Resolve() pairs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveExclusions(t *testing.T) {
	res := Resolve([]string{
		"/1/license/eula",
		"/1/quota/quotas",
		"/3/local/cluster/version",
	}, DefaultExclusions(5))

	assert.Equal(t, []Pair{{Base: "/1/quota/quotas"}}, res.Pairs)
	assert.Equal(t, []string{"/1/license/eula", "/3/local/cluster/version"}, res.Excluded)
}

func TestResolveExclusionAppliesAfterSelection(t *testing.T) {
	// only the winning version is compared against the exclusion set
	res := Resolve([]string{"/1/fsa/path", "/3/fsa/path"}, []string{"/1/fsa/path"})
	assert.Equal(t, []Pair{{Base: "/3/fsa/path"}}, res.Pairs)
	assert.Empty(t, res.Excluded)
}

func TestResolveFloatVersion(t *testing.T) {
	res := Resolve([]string{"/2.1/cluster/config", "/1/cluster/config"}, nil)
	assert.Equal(t, []Pair{{Base: "/1/cluster/config"}}, res.Pairs)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, severity.SeverityInfo, res.Issues[0].Severity)
	assert.Empty(t, res.Errors)
}

func TestResolveBadVersion(t *testing.T) {
	res := Resolve([]string{"/v1/cluster/config", "/platform/3/x", "/3/x"}, nil)

	assert.Equal(t, []Pair{{Base: "/3/x"}}, res.Pairs)
	require.Len(t, res.Errors, 2)
	assert.True(t, errors.Is(res.Errors[0], oaserrors.ErrVersion))

	var verr *oaserrors.VersionError
	require.True(t, errors.As(res.Errors[0], &verr))
	assert.Equal(t, "/v1/cluster/config", verr.Endpoint)
	assert.Equal(t, "v1", verr.Segment)
	assert.Equal(t, 2, res.Issues.Count(severity.SeverityError))
}

func TestResolveEmpty(t *testing.T) {
	res := Resolve(nil, nil)
	assert.Empty(t, res.Pairs)
	assert.Empty(t, res.Issues)
}

func TestLess(t *testing.T) {
	assert.True(t, Less("/a/b", "/a/b/c"))
	assert.False(t, Less("/a/b/c", "/a/b"))
	assert.True(t, Less("/a/b", "/a/c"))
	assert.False(t, Less("/a/b", "/a/b"))
}

func TestSortPrefixRule(t *testing.T) {
	pairs := []Pair{{Base: "/a/b/c"}, {Base: "/a/b"}, {Item: "/a/a/<ID>"}}
	Sort(pairs)
	assert.Equal(t, []Pair{{Item: "/a/a/<ID>"}, {Base: "/a/b"}, {Base: "/a/b/c"}}, pairs)
}

func TestPair(t *testing.T) {
	p := Pair{Item: "/3/x/<ID>"}
	assert.True(t, p.IsOrphan())
	assert.Equal(t, "/3/x/<ID>", p.Key())
	assert.Equal(t, "- /3/x/<ID>", p.String())

	p = Pair{Base: "/3/x"}
	assert.False(t, p.IsOrphan())
	assert.Equal(t, "/3/x -", p.String())
}

func TestDefaultExclusions(t *testing.T) {
	legacy := DefaultExclusions(1)
	assert.Contains(t, legacy, "/1/protocols/nfs/exports")
	assert.NotContains(t, legacy, "/3/local/cluster/version")

	current := DefaultExclusions(3)
	assert.Contains(t, current, "/3/local/cluster/version")
	assert.NotContains(t, current, "/1/protocols/nfs/exports")

	current[0] = "changed"
	assert.NotEqual(t, "changed", DefaultExclusions(3)[0])
}
