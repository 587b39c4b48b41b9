package pipeline

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the destination file for a conversion: the source's
// base name with its extension replaced by newExt (leading dot included),
// joined to outputDir. Pure — no filesystem access.
func OutputPath(sourcePath, outputDir, newExt string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+newExt)
}
