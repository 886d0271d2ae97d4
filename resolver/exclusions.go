package resolver

// legacyExclusions apply to PAPI generations before 3 (OneFS 7.x).
var legacyExclusions = []string{
	"/1/cluster/external-ips",
	"/1/debug/echo/<TOKEN>",
	"/1/event/events",
	"/1/event/events/<ID>",
	"/1/fsa/path",
	"/1/license/eula",
	"/1/protocols/nfs/aliases",
	"/1/protocols/nfs/aliases/<AID>",
	"/1/protocols/nfs/check",
	"/1/protocols/nfs/exports",
	"/1/protocols/nfs/exports-summary",
	"/1/protocols/nfs/exports/<EID>",
	"/1/protocols/nfs/nlm/locks",
	"/1/protocols/nfs/nlm/sessions",
	"/1/protocols/nfs/nlm/sessions/<ID>",
	"/1/protocols/nfs/nlm/waiters",
	"/1/protocols/nfs/reload",
	"/1/protocols/nfs/settings/export",
	"/1/protocols/nfs/settings/global",
	"/1/protocols/nfs/settings/zone",
}

// currentExclusions apply to PAPI generation 3 and later (OneFS 8+). Several
// entries have replacements under /3 with hyphenated names.
var currentExclusions = []string{
	"/1/auth/users/<USER>/change_password",
	"/1/auth/users/<USER>/member_of",
	"/1/auth/users/<USER>/member_of/<MEMBER_OF>",
	"/1/debug/echo/<TOKEN>",
	"/1/debug/echo/<LNN>/<TOKEN>",
	"/1/fsa/path",
	"/1/license/eula",
	"/1/local/debug/echo/<LNN>/<TOKEN>",
	"/1/storagepool/suggested_protection/<NID>",
	"/3/cluster/email/default-template",
	"/3/local/cluster/version",
}

// DefaultExclusions returns the URIs known to be unusable for the given PAPI
// generation. The returned slice is a copy.
func DefaultExclusions(papiVersion int) []string {
	src := currentExclusions
	if papiVersion < 3 {
		src = legacyExclusions
	}
	return append([]string(nil), src...)
}
