package skeleton

// Test Plan:
// 1. Manifest names classify as Config anywhere in the tree
// 2. Config extensions, with the json-under-tests exception
// 3. Test directories and file name patterns
// 4. Core source directories
// 5. Everything else is Other
// 6. Precedence: config beats tests beats core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want FileTier
	}{
		{"Cargo.toml", TierConfig},
		{"frontend/package.json", TierConfig},
		{"go.mod", TierConfig},
		{"config/settings.yaml", TierConfig},
		{"deploy.yml", TierConfig},
		{"data.toml", TierConfig},

		{"tests/integration.rs", TierTests},
		{"src/parser/test_helpers.py", TierTests},
		{"internal/cli/root_test.go", TierTests},
		{"web/app.spec.ts", TierTests},
		{"web/app.test.js", TierTests},
		{"examples/demo.rs", TierTests},

		{"src/main.rs", TierCore},
		{"lib/util.py", TierCore},
		{"internal/server/server.go", TierCore},
		{"pkg/api/api.go", TierCore},

		{"README.md", TierOther},
		{"scripts/deploy.sh", TierOther},
		{"main.go", TierOther},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyTier(tc.path), tc.path)
	}
}

func TestClassifyTierPrecedence(t *testing.T) {
	t.Parallel()

	// A manifest inside a tests directory is still config
	assert.Equal(t, TierConfig, ClassifyTier("tests/fixtures/Cargo.toml"))
	// Plain json under a test directory is test data, not config
	assert.Equal(t, TierTests, ClassifyTier("src/test/data.json"))
	// A test file under src classifies as tests, not core
	assert.Equal(t, TierTests, ClassifyTier("src/parser_test.go"))
}

func TestTierStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "core", TierCore.String())
	assert.Equal(t, "config", TierConfig.String())
	assert.Equal(t, "tests", TierTests.String())
	assert.Equal(t, "other", TierOther.String())
}
