package domain

// IdentityKind tells which like set an identity belongs to
type IdentityKind int

const (
	IdentityAuthenticated IdentityKind = iota + 1
	IdentityAnonymous
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityAuthenticated:
		return "authenticated"
	case IdentityAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Identity is either Authenticated(userID) or Anonymous(fingerprint).
// The zero value is invalid; build one with AuthenticatedIdentity or AnonymousIdentity.
type Identity struct {
	kind IdentityKind
	key  string
}

// AuthenticatedIdentity identifies a caller with a valid session
func AuthenticatedIdentity(userID string) Identity {
	return Identity{kind: IdentityAuthenticated, key: userID}
}

// AnonymousIdentity identifies a caller by request header fingerprint
func AnonymousIdentity(fingerprint string) Identity {
	return Identity{kind: IdentityAnonymous, key: fingerprint}
}

func (i Identity) Kind() IdentityKind { return i.kind }

// Key is the user id or the fingerprint, depending on Kind
func (i Identity) Key() string { return i.key }

func (i Identity) IsAuthenticated() bool { return i.kind == IdentityAuthenticated }

func (i Identity) Valid() bool {
	return (i.kind == IdentityAuthenticated || i.kind == IdentityAnonymous) && i.key != ""
}
