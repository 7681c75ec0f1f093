package media

import (
	"os"
	"testing"

	"github.com/writespace/writespace/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
