package gatewayderive

import "crypto/sha256"

// Discriminator is the stable 8-byte prefix identifying which entrypoint an
// instruction payload invokes (spec.md §6). Computed the same way Anchor
// computes account/instruction discriminators: the first 8 bytes of
// sha256("global:<name>"). No third-party library in the retrieval pack
// implements this Anchor-specific hashing scheme, so it is hand-rolled over
// stdlib crypto/sha256 (see DESIGN.md).
type Discriminator [8]byte

func discriminatorFor(name string) Discriminator {
	sum := sha256.Sum256([]byte("global:" + name))
	var d Discriminator
	copy(d[:], sum[:8])
	return d
}

var (
	DiscriminatorInitialize = discriminatorFor("initialize")
	DiscriminatorIssue      = discriminatorFor("issue")
	DiscriminatorRefresh    = discriminatorFor("refresh")
	DiscriminatorCreateFee  = discriminatorFor("create_fee")
	DiscriminatorUpdateFee  = discriminatorFor("update_fee")
	DiscriminatorRemoveFee  = discriminatorFor("remove_fee")
)

var discriminatorNames = map[Discriminator]string{
	DiscriminatorInitialize: "initialize",
	DiscriminatorIssue:      "issue",
	DiscriminatorRefresh:    "refresh",
	DiscriminatorCreateFee:  "create_fee",
	DiscriminatorUpdateFee:  "update_fee",
	DiscriminatorRemoveFee:  "remove_fee",
}

// NameOf returns the entrypoint name a discriminator identifies, or "" if
// unrecognized.
func (d Discriminator) NameOf() string {
	return discriminatorNames[d]
}
