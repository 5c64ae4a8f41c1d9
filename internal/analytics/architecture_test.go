package analytics_test

import (
	"testing"

	"restaurantcore/testutil"
)

func TestAnalyticsStaysPure(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.Any(testutil.InfraImportForbidden, testutil.ThirdPartyImportForbidden()),
		"derived computations work on plain records, not on storage or brokers")
}
