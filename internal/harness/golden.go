package harness

import (
	"testing"

	"github.com/roach88/fbxport/internal/testutil"
)

// RunWithGolden runs a scenario, fails the test on any error it reports,
// and compares the written bytes against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		t.Error(e)
	}

	testutil.AssertGoldenHex(t, scenario.Name, result.Data)
	return nil
}
