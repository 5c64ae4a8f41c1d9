package memory

import (
	"testing"

	"restaurantcore/testutil"
)

func TestImportsAreDomainOrStdlib(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.Any(testutil.InternalImportForbidden, testutil.ThirdPartyImportForbidden("github.com/lucsky/cuid")),
		"every durable backend embeds the memory store, so it may only depend on the domain model")
}
