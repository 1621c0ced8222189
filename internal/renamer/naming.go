package renamer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/model"
)

// fieldReplacer maps path separators and NUL to underscores.
var fieldReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// TargetName builds "<seq>. <design>_<article>_<quality>_<qty>.<ext>".
// Path separators and NUL inside the fields are replaced with "_".
func TargetName(seq int, rec model.Record, ext string) string {
	return fmt.Sprintf("%d. %s_%s_%s_%s.%s", seq,
		cleanField(rec.Design),
		cleanField(rec.Article),
		cleanField(rec.Quality),
		cleanField(rec.Quantity),
		cleanField(ext))
}

func cleanField(s string) string {
	return fieldReplacer.Replace(s)
}

// targetPath joins name onto outputDir and refuses any result that does not
// sit directly inside outputDir.
func targetPath(outputDir, name string) (string, error) {
	dst := filepath.Join(outputDir, name)
	if name == "." || name == ".." || filepath.Dir(dst) != filepath.Clean(outputDir) {
		return "", fmt.Errorf("%w: target %q leaves %s", common.ErrImageSave, name, outputDir)
	}
	return dst, nil
}
