package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// acronyms end in "s" but are never plurals.
var acronyms = map[string]bool{"Ads": true, "Nis": true}

// numericParams are path parameters that carry integers.
var numericParams = map[string]bool{"Lnn": true, "Zone": true, "Port": true, "Lin": true}

// Title upper-cases the first letter of every run of letters and lower-cases
// the rest, then drops everything that is not a letter or digit:
// "nfs-exports" -> "NfsExports", "<LNN>" -> "Lnn", "2fa_keys" -> "2FaKeys".
func Title(s string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			if isASCIIAlnum(runes[i]) {
				b.WriteRune(runes[i])
			}
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		word := caser.String(string(runes[i:j]))
		for _, r := range word {
			if isASCIIAlnum(r) {
				b.WriteRune(r)
			}
		}
		i = j
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Singular converts a plural object name to its singular form. When the name
// does not look plural, postfix is appended instead and used is true; callers
// use that flag to decide how to name the item identifier.
func Singular(name, postfix string) (singular string, used bool) {
	n := len(name)
	if !acronyms[name] && n >= 2 && name[n-1] == 's' && name[n-2] != 's' && !strings.HasSuffix(name, "tus") {
		switch {
		case strings.HasSuffix(name, "ies"):
			singular = name[:n-3] + "y"
		case strings.HasSuffix(name, "ches"), strings.HasSuffix(name, "iases"):
			singular = name[:n-2]
		default:
			singular = name[:n-1]
		}
		return strings.ReplaceAll(singular, "_", ""), false
	}
	return strings.ReplaceAll(name, "_", "") + postfix, true
}

// IsParam reports whether a URI segment is a parameter placeholder.
func IsParam(segment string) bool {
	return len(segment) >= 2 && segment[0] == '<' && segment[len(segment)-1] == '>'
}

// isIdentifier reports whether a parameter segment names an item identifier
// whose meaning comes from the segment before it.
func isIdentifier(segment string) bool {
	return strings.HasSuffix(segment, "ID>") || segment == "<LNN>"
}

// join builds a name from segments[start:end]. Identifier placeholders are
// replaced with the singular form of the nearest preceding segment that
// singularizes without a postfix, falling back to "Item".
func join(segments []string, start, end int, omitParams bool) string {
	var b strings.Builder
	for i := start; i < end; i++ {
		seg := segments[i]
		if omitParams && IsParam(seg) {
			continue
		}
		next := Title(seg)
		if isIdentifier(seg) {
			next = "Item"
			for j := i - 1; j >= 0; j-- {
				if one, used := Singular(Title(segments[j]), ""); !used {
					next = one
					break
				}
			}
		}
		b.WriteString(next)
	}
	return b.String()
}

// apiName uses the first segment, or everything up to the last parameter that
// is not the final segment.
func apiName(segments []string) (string, int) {
	end := 1
	for i := len(segments) - 2; i >= 0; i-- {
		if IsParam(segments[i]) {
			end = i
			if i > 2 {
				end = i - 1
			}
			break
		}
	}
	return join(segments, 0, end, true), end
}

// Names maps the segments of an endpoint (version already stripped) to the
// API name used for tags, the namespace and the object name.
//
// An empty segment list is a caller error; Names returns empty strings for it.
func Names(segments []string) (api, namespace, object string) {
	switch len(segments) {
	case 0:
		return "", "", ""
	case 1:
		api = Title(segments[0])
		return api, "", api
	case 2:
		api = Title(segments[0])
		return api, api, Title(segments[1])
	}

	api, next := apiName(segments)
	if next == len(segments)-1 {
		return api, "", join(segments, next, len(segments), false)
	}
	return api, join(segments, next, next+1, false), join(segments, next+1, len(segments), false)
}

// Split separates an endpoint URI into its version segment and the remaining
// path segments: "/3/protocols/nfs/exports" -> "3", [protocols nfs exports].
func Split(uri string) (version string, segments []string) {
	parts := strings.Split(strings.Trim(uri, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", nil
	}
	return parts[0], parts[1:]
}

// Parent drops the final segment of a URI.
func Parent(uri string) string {
	if i := strings.LastIndexByte(uri, '/'); i > 0 {
		return uri[:i]
	}
	return ""
}

// PathParam is a path parameter derived from a URI placeholder.
type PathParam struct {
	Name string
	Type string
}

// ParamName converts a placeholder to a parameter name: "<LNN>" -> "Lnn",
// "<USER_ID*>" -> "UserId".
func ParamName(segment string) string {
	return Title(strings.TrimSuffix(strings.TrimPrefix(segment, "<"), ">"))
}

// PathParams lists the parameters of every placeholder in uri, in order.
func PathParams(uri string) []PathParam {
	var params []PathParam
	for _, seg := range strings.Split(uri, "/") {
		if !IsParam(seg) {
			continue
		}
		name := ParamName(seg)
		typ := "string"
		if numericParams[name] {
			typ = "integer"
		}
		params = append(params, PathParam{Name: name, Type: typ})
	}
	return params
}

// SwaggerPath rewrites placeholders as path templates:
// "/3/cluster/nodes/<LNN>/drives" -> "/3/cluster/nodes/{Lnn}/drives".
func SwaggerPath(uri string) string {
	segs := strings.Split(uri, "/")
	for i, seg := range segs {
		if IsParam(seg) {
			segs[i] = "{" + ParamName(seg) + "}"
		}
	}
	out := strings.Join(segs, "/")
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}

// OperationID composes an operation name. When the object name ends in a
// synthetic "Id", the suffix reads as "ById": getNfsAliasId -> getNfsAliasById.
func OperationID(operation, namespace, object string) string {
	if strings.HasSuffix(object, "Id") {
		return operation + namespace + strings.TrimSuffix(object, "Id") + "ById"
	}
	return operation + namespace + object
}

// Capitalize upper-cases the first byte of an ASCII word.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
