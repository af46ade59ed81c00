package sdfile

import "net/netip"

// Family is the address family of a target file variant.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyIPv4
	FamilyIPv6
)

// String returns string representation of Family
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// FamilyOf reports the address family of an IP literal, or FamilyUnknown when
// the string is not a valid address.
func FamilyOf(addr string) Family {
	parsed, err := netip.ParseAddr(addr)
	if err != nil {
		return FamilyUnknown
	}
	if parsed.Is4() {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// Family reports the address family of the group. Groups are built
// single-family, so the first target decides.
func (tg TargetGroup) Family() Family {
	if len(tg.Targets) == 0 {
		return FamilyUnknown
	}
	return FamilyOf(tg.Targets[0])
}

// Partition splits groups into the per-family file variants, preserving
// order. Groups that are not IPv6 go into the IPv4 variant.
func Partition(groups []TargetGroup) (ipv4, ipv6 []TargetGroup) {
	for _, g := range groups {
		if g.Family() == FamilyIPv6 {
			ipv6 = append(ipv6, g)
		} else {
			ipv4 = append(ipv4, g)
		}
	}
	return ipv4, ipv6
}
