package descriptor

import "strings"

// Kind classifies connect-string text so the caller can dispatch the right
// sub-grammar.
type Kind int

const (
	// KindDescriptor is nested (KEY=value) text.
	KindDescriptor Kind = iota
	// KindEasyConnect is host:port/service style text.
	KindEasyConnect
	// KindBareName has no recognizable structure: either a tnsnames alias or
	// a bare hostname.
	KindBareName
)

// Classify inspects connect-string text and picks its sub-grammar. Descriptor
// text always opens with a paren; anything else with URL-ish punctuation is
// Easy Connect, even when its query parameters carry '='. A leftover '=' with
// no structure at all is still descriptor-shaped ("HOST=x"); a bare word is an
// alias or host.
func Classify(text string) Kind {
	if strings.HasPrefix(text, "(") {
		return KindDescriptor
	}
	if strings.ContainsAny(text, "/:,?") {
		return KindEasyConnect
	}
	if strings.ContainsAny(text, "(=") {
		return KindDescriptor
	}
	return KindBareName
}

// SplitDSN splits "user/password@connect_string" into its three components.
// The credentials portion is everything before the last '@'; user and
// password split at the first '/'. Missing components come back as "";
// there is no distinction between an absent component and a present-but-empty
// one, matching "scott/" yielding an absent password.
//
//	SplitDSN("scott/tiger@orclpdb") = ("scott", "tiger", "orclpdb")
//	SplitDSN("scott/")              = ("scott", "", "")
//	SplitDSN("/@orclpdb")           = ("", "", "orclpdb")
func SplitDSN(dsn string) (user, password, connectString string) {
	credentials := dsn
	if at := strings.LastIndexByte(dsn, '@'); at >= 0 {
		credentials, connectString = dsn[:at], dsn[at+1:]
	}
	user = credentials
	if slash := strings.IndexByte(credentials, '/'); slash >= 0 {
		user, password = credentials[:slash], credentials[slash+1:]
	}
	return user, password, connectString
}
