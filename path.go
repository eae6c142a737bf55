package imgcodecs

import (
	"fmt"
	"strings"

	"github.com/vk/imgcodecs/internal/platform"
)

// MetadataSuffix is the fixed suffix convention that marks a file as a codec
// metadata file.
const MetadataSuffix = ".codec.info"

// DeriveModulePath builds the path of a codec's loadable binary module from
// the path of its metadata file: "/x/jpeg.codec.info" becomes "/x/jpeg.so"
// (or the platform's module suffix). A path that does not contain the
// metadata suffix fails with ErrPathBuild rather than producing a malformed
// result.
func DeriveModulePath(infoPath string) (string, error) {
	idx := strings.Index(infoPath, MetadataSuffix)
	if idx < 0 {
		return "", fmt.Errorf("%w: %q does not contain %q", ErrPathBuild, infoPath, MetadataSuffix)
	}

	return infoPath[:idx] + "." + platform.ModuleSuffix, nil
}
