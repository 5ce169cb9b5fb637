package jvm

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// BridgeClass is the main class of the embedded bridge program.
const BridgeClass = "XnodeBridge"

//go:embed bridge/XnodeBridge.java
var bridgeSource []byte

// writeBridge places the bridge source in dir and returns its path. The JVM
// runs it in source-file mode (Java 11+), so no separate compile step is
// needed.
func writeBridge(dir string) (string, error) {
	path := filepath.Join(dir, BridgeClass+".java")
	if err := os.WriteFile(path, bridgeSource, 0o644); err != nil {
		return "", fmt.Errorf("jvm: failed to write bridge: %w", err)
	}
	return path, nil
}
