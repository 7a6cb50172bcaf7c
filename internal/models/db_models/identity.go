package db_models

// SelfAliasID is the placeholder id an owner's partition uses for the
// owner's own member record. It never identifies anyone outside that
// partition and must be resolved before rosters are merged.
const SelfAliasID = "current-user"

// SelfLabel is the generic display name paired with the self alias.
const SelfLabel = "You"

// UserRef is a member identity as found in a partition: either a
// canonical user id or the partition owner's self alias. Resolution
// happens once, at the store boundary; downstream code never compares
// raw strings against the alias literal.
type UserRef struct {
	raw string
}

func CanonicalRef(id string) UserRef { return UserRef{raw: id} }

func SelfRef() UserRef { return UserRef{raw: SelfAliasID} }

// ParseUserRef wraps an id string read from a partition.
func ParseUserRef(raw string) UserRef { return UserRef{raw: raw} }

func (r UserRef) IsSelf() bool { return r.raw == SelfAliasID }

// Resolve returns the canonical user id given the owner of the
// partition the ref was read from.
func (r UserRef) Resolve(partitionOwnerID string) string {
	if r.IsSelf() {
		return partitionOwnerID
	}
	return r.raw
}

func (r UserRef) String() string { return r.raw }

func (r UserRef) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.raw + `"`), nil
}

func (r *UserRef) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	r.raw = s
	return nil
}
