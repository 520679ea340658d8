package gatewayderive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	gd "github.com/civicteam/gateway-derive/internal/core/gatewayderive"
)

func TestDiscriminatorsAreDistinctAndNamed(t *testing.T) {
	all := map[gd.Discriminator]string{
		gd.DiscriminatorInitialize: "initialize",
		gd.DiscriminatorIssue:      "issue",
		gd.DiscriminatorRefresh:    "refresh",
		gd.DiscriminatorCreateFee:  "create_fee",
		gd.DiscriminatorUpdateFee:  "update_fee",
		gd.DiscriminatorRemoveFee:  "remove_fee",
	}
	require.Len(t, all, 6) // every discriminator is pairwise distinct

	for disc, name := range all {
		require.Equal(t, name, disc.NameOf())
	}
}

func TestUnrecognizedDiscriminatorNameOfIsEmpty(t *testing.T) {
	var d gd.Discriminator
	require.Equal(t, "", d.NameOf())
}
