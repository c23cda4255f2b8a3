package display

import (
	"fmt"
	"io"
	"os"

	"github.com/sccasc/cmipclean/internal/term"
)

const banner = `      _           _
  ___| |_ __  ___| |__ _ _ _
 / __| | '  \/ -_) / _` + "`" + ` | ' \
 \__ \_|_|_|_\___|_\__,_|_||_|
 cmip catalog dedup
`

// PrintBanner prints the ASCII art banner to stdout; magenta when colors are
// enabled.
func PrintBanner() {
	writeBanner(os.Stdout)
}

func writeBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.Magenta, banner))
}
